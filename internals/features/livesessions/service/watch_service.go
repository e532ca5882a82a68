package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"

	database "speaksy_backend/internals/databases"
	"speaksy_backend/internals/features/livesessions/model"
)

// WatchSession subscribes to changes on a single session row and invokes
// onChange with the new row image (or, on delete, the last known one). The
// returned unsubscribe func is idempotent and never panics.
func WatchSession(n *database.Notifier, id uuid.UUID, onChange func(model.LiveSession)) func() {
	want := id.String()

	return n.Subscribe(model.LiveSession{}.TableName(),
		func(e database.ChangeEvent) bool {
			var row struct {
				ID string `json:"live_session_id"`
			}
			if err := json.Unmarshal(e.Row(), &row); err != nil {
				return false
			}
			return row.ID == want
		},
		func(e database.ChangeEvent) {
			var row model.LiveSession
			if err := json.Unmarshal(e.Row(), &row); err != nil {
				log.Printf("[ERROR] session watch decode: %v", err)
				return
			}
			onChange(row)
		},
	)
}
