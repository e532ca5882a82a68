package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	database "speaksy_backend/internals/databases"
	rosterModel "speaksy_backend/internals/features/roster/model"
)

// RosterLoader is what the syncer refetches through; RosterService satisfies it.
type RosterLoader interface {
	Load(ctx context.Context, teacherID uuid.UUID) RosterResult
}

// Syncer keeps one teacher's joined roster fresh by re-running the full load
// whenever the assignment or progress tables change. Every reload carries a
// sequence number; a completion is applied only if it is still the most
// recently issued one, so stale in-flight results are discarded.
type Syncer struct {
	loader    RosterLoader
	notifier  *database.Notifier
	teacherID uuid.UUID

	// OnUpdate, when set before Start, is invoked after each applied reload.
	OnUpdate func(RosterResult)

	mu     sync.Mutex
	seq    uint64
	result RosterResult
	known  map[uuid.UUID]struct{}

	unsubs    []func()
	closeOnce sync.Once
}

func NewSyncer(loader RosterLoader, notifier *database.Notifier, teacherID uuid.UUID) *Syncer {
	return &Syncer{
		loader:    loader,
		notifier:  notifier,
		teacherID: teacherID,
		result:    RosterResult{State: StateEmpty},
		known:     make(map[uuid.UUID]struct{}),
	}
}

// Start performs the initial load and registers both change subscriptions:
// assignments scoped to this teacher, progress narrowed to known student ids.
func (s *Syncer) Start(ctx context.Context) {
	s.refresh(ctx)

	if s.notifier == nil {
		return
	}

	teacher := s.teacherID.String()
	unsubAssignments := s.notifier.Subscribe(rosterModel.TeacherStudent{}.TableName(),
		func(e database.ChangeEvent) bool {
			var row struct {
				TeacherID string `json:"teacher_student_teacher_id"`
			}
			if err := json.Unmarshal(e.Row(), &row); err != nil {
				return false
			}
			return row.TeacherID == teacher
		},
		func(database.ChangeEvent) {
			go s.refresh(context.Background())
		},
	)

	unsubProgress := s.notifier.Subscribe(rosterModel.StudentProgress{}.TableName(),
		func(e database.ChangeEvent) bool {
			var row struct {
				StudentID uuid.UUID `json:"student_progress_student_id"`
			}
			if err := json.Unmarshal(e.Row(), &row); err != nil {
				return false
			}
			return s.isKnown(row.StudentID)
		},
		func(database.ChangeEvent) {
			go s.refresh(context.Background())
		},
	)

	s.mu.Lock()
	s.unsubs = append(s.unsubs, unsubAssignments, unsubProgress)
	s.mu.Unlock()
}

// refresh issues a sequenced reload. Handlers only spawn refresh goroutines,
// so overlapping notifications cannot wedge the dispatch loop.
func (s *Syncer) refresh(ctx context.Context) {
	seq := s.begin()
	result := s.loader.Load(ctx, s.teacherID)
	s.commit(seq, result)
}

func (s *Syncer) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// commit applies a completed reload unless a newer one has been issued since.
func (s *Syncer) commit(seq uint64, result RosterResult) bool {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return false
	}
	s.result = result
	s.known = make(map[uuid.UUID]struct{}, len(result.Students))
	for _, st := range result.Students {
		s.known[st.StudentID] = struct{}{}
	}
	hook := s.OnUpdate
	s.mu.Unlock()

	if hook != nil {
		hook(result)
	}
	return true
}

func (s *Syncer) isKnown(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.known[id]
	return ok
}

// Result returns the last applied load result.
func (s *Syncer) Result() RosterResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Snapshot filters the current roster by status in memory. Switching between
// active and inactive never touches the loader.
func (s *Syncer) Snapshot(status string) []StudentEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterByStatus(s.result.Students, status)
}

// Close releases both subscriptions. Safe to call more than once; release
// never panics even if the notifier is already gone.
func (s *Syncer) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		unsubs := s.unsubs
		s.unsubs = nil
		s.mu.Unlock()
		for _, unsub := range unsubs {
			unsub()
		}
	})
}
