package service

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	database "speaksy_backend/internals/databases"
	"speaksy_backend/internals/features/livesessions/model"
)

func sessionNotification(t *testing.T, action string, row map[string]interface{}) *pq.Notification {
	t.Helper()
	event := map[string]interface{}{"table": "live_sessions", "action": action}
	if action == "DELETE" {
		event["old"] = row
	} else {
		event["new"] = row
	}
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return &pq.Notification{Channel: database.ChangeChannel, Extra: string(payload)}
}

func TestWatchSession_OnlySeesOwnRow(t *testing.T) {
	n := database.NewNotifier()
	events := make(chan *pq.Notification, 4)
	go n.Run(events)
	defer n.Close()

	watched := uuid.New()
	other := uuid.New()

	var mu sync.Mutex
	var got []model.LiveSession
	unsub := WatchSession(n, watched, func(row model.LiveSession) {
		mu.Lock()
		got = append(got, row)
		mu.Unlock()
	})
	defer unsub()

	events <- sessionNotification(t, "UPDATE", map[string]interface{}{
		"live_session_id": other.String(), "live_session_viewers": 9,
	})
	events <- sessionNotification(t, "UPDATE", map[string]interface{}{
		"live_session_id": watched.String(), "live_session_viewers": 3,
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		done := len(got) >= 1
		mu.Unlock()
		if done || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].LiveSessionID != watched {
		t.Errorf("row id = %s, want %s", got[0].LiveSessionID, watched)
	}
	if got[0].LiveSessionViewers != 3 {
		t.Errorf("viewers = %d, want 3", got[0].LiveSessionViewers)
	}
}

func TestWatchSession_DeleteDeliversOldRow(t *testing.T) {
	n := database.NewNotifier()
	events := make(chan *pq.Notification, 1)
	go n.Run(events)
	defer n.Close()

	id := uuid.New()
	delivered := make(chan model.LiveSession, 1)
	unsub := WatchSession(n, id, func(row model.LiveSession) {
		delivered <- row
	})
	defer unsub()

	events <- sessionNotification(t, "DELETE", map[string]interface{}{
		"live_session_id": id.String(), "live_session_status": "ended",
	})

	select {
	case row := <-delivered:
		if row.LiveSessionStatus != model.StatusEnded {
			t.Errorf("status = %q, want ended", row.LiveSessionStatus)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delete event never delivered")
	}
}

func TestWatchSession_DoubleUnsubscribeDoesNotPanic(t *testing.T) {
	n := database.NewNotifier()
	events := make(chan *pq.Notification, 1)
	go n.Run(events)

	unsub := WatchSession(n, uuid.New(), func(model.LiveSession) {})
	unsub()
	unsub()

	// Also after the notifier itself is closed.
	n.Close()
	unsub()
}
