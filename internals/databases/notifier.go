package database

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

// ChangeEvent is one decoded row change published by the notify triggers.
// New is nil for DELETE, Old is nil for INSERT.
type ChangeEvent struct {
	Table  string          `json:"table"`
	Action string          `json:"action"` // INSERT | UPDATE | DELETE
	New    json.RawMessage `json:"new"`
	Old    json.RawMessage `json:"old"`
}

// Row returns the most relevant row image: the new row, or on delete the old.
func (e ChangeEvent) Row() json.RawMessage {
	if e.New != nil {
		return e.New
	}
	return e.Old
}

type subscription struct {
	table   string
	filter  func(ChangeEvent) bool
	handler func(ChangeEvent)
}

// Notifier fans LISTEN/NOTIFY payloads out to registered subscriptions.
// Handlers run on the dispatch goroutine and must not block.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	nextID uint64

	done      chan struct{}
	closeOnce sync.Once
	listener  *pq.Listener
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[uint64]*subscription),
		done: make(chan struct{}),
	}
}

// OpenNotifier connects a lib/pq listener to the change channel and starts
// dispatching. Reconnects are handled inside pq.Listener; events raised while
// the connection is down are lost, matching the upstream realtime semantics.
func OpenNotifier(dsn string) (*Notifier, error) {
	l := pq.NewListener(dsn, 2*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("[ERROR] pq listener: %v", err)
		}
	})
	if err := l.Listen(ChangeChannel); err != nil {
		_ = l.Close()
		return nil, err
	}

	n := NewNotifier()
	n.listener = l
	go n.Run(l.Notify)
	log.Println("✅ Change listener attached.")
	return n, nil
}

// Run consumes notifications until the source channel closes or Close is
// called. Split from OpenNotifier so tests can feed a plain channel.
func (n *Notifier) Run(events <-chan *pq.Notification) {
	for {
		select {
		case <-n.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev == nil {
				// pq sends nil after a reconnect; nothing to dispatch
				continue
			}
			n.dispatch(ev.Extra)
		}
	}
}

func (n *Notifier) dispatch(payload string) {
	var event ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("[ERROR] bad change payload: %v", err)
		return
	}

	n.mu.RLock()
	matched := make([]*subscription, 0, 4)
	for _, s := range n.subs {
		if s.table != event.Table {
			continue
		}
		if s.filter != nil && !s.filter(event) {
			continue
		}
		matched = append(matched, s)
	}
	n.mu.RUnlock()

	for _, s := range matched {
		s.handler(event)
	}
}

// Subscribe registers a handler for changes on one table, optionally narrowed
// by a filter predicate. The returned unsubscribe func is idempotent: calling
// it again after the subscription (or the whole notifier) is gone is a no-op.
func (n *Notifier) Subscribe(table string, filter func(ChangeEvent) bool, handler func(ChangeEvent)) func() {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs[id] = &subscription{table: table, filter: filter, handler: handler}
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Close stops dispatching and detaches the underlying listener, if any.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.done)
		if n.listener != nil {
			_ = n.listener.Close()
		}
	})
}
