package database

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
)

func notification(t *testing.T, event ChangeEvent) *pq.Notification {
	t.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &pq.Notification{Channel: ChangeChannel, Extra: string(payload)}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNotifier_DispatchesToMatchingTable(t *testing.T) {
	n := NewNotifier()
	events := make(chan *pq.Notification, 4)
	go n.Run(events)
	defer n.Close()

	var mu sync.Mutex
	var sessions, rosters []ChangeEvent

	n.Subscribe("live_sessions", nil, func(e ChangeEvent) {
		mu.Lock()
		sessions = append(sessions, e)
		mu.Unlock()
	})
	n.Subscribe("teacher_students", nil, func(e ChangeEvent) {
		mu.Lock()
		rosters = append(rosters, e)
		mu.Unlock()
	})

	events <- notification(t, ChangeEvent{Table: "live_sessions", Action: "UPDATE", New: json.RawMessage(`{"live_session_viewers":3}`)})
	events <- notification(t, ChangeEvent{Table: "student_progress", Action: "INSERT"})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sessions) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if len(rosters) != 0 {
		t.Errorf("teacher_students handler got %d events, want 0", len(rosters))
	}
	if sessions[0].Action != "UPDATE" {
		t.Errorf("action = %q, want UPDATE", sessions[0].Action)
	}
}

func TestNotifier_FilterNarrowsEvents(t *testing.T) {
	n := NewNotifier()
	events := make(chan *pq.Notification, 4)
	go n.Run(events)
	defer n.Close()

	var mu sync.Mutex
	var got []ChangeEvent

	n.Subscribe("live_sessions", func(e ChangeEvent) bool {
		var row struct {
			ID string `json:"live_session_id"`
		}
		_ = json.Unmarshal(e.Row(), &row)
		return row.ID == "keep"
	}, func(e ChangeEvent) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})

	events <- notification(t, ChangeEvent{Table: "live_sessions", Action: "UPDATE", New: json.RawMessage(`{"live_session_id":"drop"}`)})
	events <- notification(t, ChangeEvent{Table: "live_sessions", Action: "UPDATE", New: json.RawMessage(`{"live_session_id":"keep"}`)})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	})
}

func TestNotifier_RowPrefersNewFallsBackToOld(t *testing.T) {
	update := ChangeEvent{New: json.RawMessage(`{"a":1}`), Old: json.RawMessage(`{"a":0}`)}
	if string(update.Row()) != `{"a":1}` {
		t.Errorf("Row() on update = %s, want new image", update.Row())
	}
	del := ChangeEvent{Action: "DELETE", Old: json.RawMessage(`{"a":0}`)}
	if string(del.Row()) != `{"a":0}` {
		t.Errorf("Row() on delete = %s, want old image", del.Row())
	}
}

func TestNotifier_UnsubscribeIsIdempotent(t *testing.T) {
	n := NewNotifier()
	events := make(chan *pq.Notification, 4)
	go n.Run(events)

	var mu sync.Mutex
	count := 0
	unsub := n.Subscribe("live_sessions", nil, func(ChangeEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	unsub()
	unsub() // second call must not panic

	events <- notification(t, ChangeEvent{Table: "live_sessions", Action: "INSERT"})

	// Close and call once more after the notifier is gone.
	n.Close()
	unsub()

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("handler ran %d times after unsubscribe, want 0", count)
	}
}

func TestNotifier_IgnoresMalformedAndNilPayloads(t *testing.T) {
	n := NewNotifier()
	events := make(chan *pq.Notification, 4)
	go n.Run(events)
	defer n.Close()

	var mu sync.Mutex
	count := 0
	n.Subscribe("live_sessions", nil, func(ChangeEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	events <- nil // pq emits nil after reconnect
	events <- &pq.Notification{Channel: ChangeChannel, Extra: "not-json"}
	events <- notification(t, ChangeEvent{Table: "live_sessions", Action: "INSERT"})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	})
}
