package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	rosterModel "speaksy_backend/internals/features/roster/model"
	userModel "speaksy_backend/internals/features/users/model"
)

// memoryRosterStore is a RosterStore double with per-call counters and
// injectable failures.
type memoryRosterStore struct {
	mu          sync.Mutex
	assignments []rosterModel.TeacherStudent
	profiles    []userModel.Profile
	progress    []rosterModel.StudentProgress

	assignmentErr error
	profileErr    error
	progressErr   error

	calls int
}

func (m *memoryRosterStore) FindAssignments(_ context.Context, teacherID uuid.UUID) ([]rosterModel.TeacherStudent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.assignmentErr != nil {
		return nil, m.assignmentErr
	}
	var rows []rosterModel.TeacherStudent
	for _, a := range m.assignments {
		if a.TeacherStudentTeacherID == teacherID {
			rows = append(rows, a)
		}
	}
	return rows, nil
}

func (m *memoryRosterStore) FindProfiles(_ context.Context, ids []uuid.UUID) ([]userModel.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var rows []userModel.Profile
	for _, p := range m.profiles {
		if _, ok := want[p.ProfileID]; ok {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (m *memoryRosterStore) FindProgress(_ context.Context, ids []uuid.UUID) ([]rosterModel.StudentProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.progressErr != nil {
		return nil, m.progressErr
	}
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var rows []rosterModel.StudentProgress
	for _, p := range m.progress {
		if _, ok := want[p.StudentProgressStudentID]; ok {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (m *memoryRosterStore) loadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func assignment(teacherID, studentID uuid.UUID, status string) rosterModel.TeacherStudent {
	return rosterModel.TeacherStudent{
		TeacherStudentTeacherID:  teacherID,
		TeacherStudentStudentID:  studentID,
		TeacherStudentGradeLevel: "11",
		TeacherStudentStrand:     "STEM",
		TeacherStudentStatus:     status,
	}
}

func TestLoad_JoinsProfilesAndProgress(t *testing.T) {
	teacher := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	store := &memoryRosterStore{
		assignments: []rosterModel.TeacherStudent{
			assignment(teacher, a, "active"), // profile + progress
			assignment(teacher, b, "active"), // profile only
			assignment(teacher, c, "active"), // neither
		},
		profiles: []userModel.Profile{
			{ProfileID: a, ProfileName: "Maria Santos"},
			{ProfileID: b, ProfileName: "Cher"},
		},
		progress: []rosterModel.StudentProgress{
			{StudentProgressStudentID: a, StudentProgressProgress: 75},
		},
	}

	result := NewRosterService(store).Load(context.Background(), teacher)
	if result.State != StateLoaded {
		t.Fatalf("state = %v, want StateLoaded", result.State)
	}
	if len(result.Students) != 3 {
		t.Fatalf("len = %d, want 3", len(result.Students))
	}

	byID := make(map[uuid.UUID]StudentEntry)
	for _, s := range result.Students {
		byID[s.StudentID] = s
	}

	if got := byID[a]; got.Name != "Maria Santos" || got.Initials != "MS" || got.Progress != 75 {
		t.Errorf("student A = %+v", got)
	}
	if got := byID[b]; got.Name != "Cher" || got.Initials != "C" || got.Progress != 0 {
		t.Errorf("student B = %+v, want progress 0 default", got)
	}
	if got := byID[c]; got.Name != "Unknown Student" || got.Initials != "?" {
		t.Errorf("student C = %+v, want Unknown Student / ?", got)
	}
}

func TestLoad_DuplicateAssignmentsAreKept(t *testing.T) {
	teacher := uuid.New()
	student := uuid.New()

	store := &memoryRosterStore{
		assignments: []rosterModel.TeacherStudent{
			assignment(teacher, student, "active"),
			assignment(teacher, student, "inactive"),
		},
		profiles: []userModel.Profile{{ProfileID: student, ProfileName: "Juan Cruz"}},
	}

	result := NewRosterService(store).Load(context.Background(), teacher)
	if len(result.Students) != 2 {
		t.Fatalf("len = %d, want 2 (no dedup of assignment rows)", len(result.Students))
	}
}

func TestLoad_NoAssignmentsIsEmptyNotFailed(t *testing.T) {
	store := &memoryRosterStore{}
	result := NewRosterService(store).Load(context.Background(), uuid.New())
	if result.State != StateEmpty {
		t.Errorf("state = %v, want StateEmpty", result.State)
	}
	if result.Err != nil {
		t.Errorf("err = %v, want nil", result.Err)
	}
}

func TestLoad_FetchErrorIsFailedNotEmpty(t *testing.T) {
	boom := errors.New("connection refused")
	cases := []struct {
		name  string
		store *memoryRosterStore
	}{
		{"assignments", &memoryRosterStore{assignmentErr: boom}},
		{"profiles", func() *memoryRosterStore {
			s := &memoryRosterStore{profileErr: boom}
			s.assignments = []rosterModel.TeacherStudent{assignment(uuid.Nil, uuid.New(), "active")}
			return s
		}()},
		{"progress", func() *memoryRosterStore {
			s := &memoryRosterStore{progressErr: boom}
			s.assignments = []rosterModel.TeacherStudent{assignment(uuid.Nil, uuid.New(), "active")}
			return s
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NewRosterService(tc.store).Load(context.Background(), uuid.Nil)
			if result.State != StateFailed {
				t.Errorf("state = %v, want StateFailed", result.State)
			}
			if !errors.Is(result.Err, boom) {
				t.Errorf("err = %v, want wrapped %v", result.Err, boom)
			}
		})
	}
}

func TestInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Maria Santos", "MS"},
		{"Cher", "C"},
		{"", "?"},
		{"   ", "?"},
		{"ana lopez reyes", "AL"},
	}
	for _, tc := range cases {
		if got := Initials(tc.name); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFilterByStatus_IsPure(t *testing.T) {
	students := []StudentEntry{
		{Name: "A", Status: "active"},
		{Name: "B", Status: "inactive"},
		{Name: "C", Status: "active"},
	}

	active := FilterByStatus(students, "active")
	inactive := FilterByStatus(students, "inactive")

	if len(active) != 2 || len(inactive) != 1 {
		t.Errorf("active=%d inactive=%d, want 2/1", len(active), len(inactive))
	}
	if len(students) != 3 {
		t.Error("input slice must not be mutated")
	}
}
