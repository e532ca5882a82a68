package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	rosterModel "speaksy_backend/internals/features/roster/model"
	userModel "speaksy_backend/internals/features/users/model"
)

// RosterStore is the read surface for the three relations joined client-side.
type RosterStore interface {
	FindAssignments(ctx context.Context, teacherID uuid.UUID) ([]rosterModel.TeacherStudent, error)
	FindProfiles(ctx context.Context, ids []uuid.UUID) ([]userModel.Profile, error)
	FindProgress(ctx context.Context, ids []uuid.UUID) ([]rosterModel.StudentProgress, error)
}

// LoadState tags a roster result so callers can tell "no students" from
// "the fetch failed" instead of collapsing both to an empty list.
type LoadState int

const (
	StateLoaded LoadState = iota
	StateEmpty
	StateFailed
)

type StudentEntry struct {
	StudentID uuid.UUID `json:"student_id"`
	Name      string    `json:"name"`
	Initials  string    `json:"initials"`
	Grade     string    `json:"grade"`
	Strand    string    `json:"strand"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
}

type RosterResult struct {
	State    LoadState
	Students []StudentEntry
	Err      error
}

const unknownStudentName = "Unknown Student"

type RosterService struct {
	Store RosterStore
}

func NewRosterService(store RosterStore) *RosterService {
	return &RosterService{Store: store}
}

// Load fetches a teacher's assignment rows, then the matching profiles and
// progress rows, and joins them in memory. One entry per assignment row;
// duplicate assignments for the same student are kept as-is.
func (s *RosterService) Load(ctx context.Context, teacherID uuid.UUID) RosterResult {
	assignments, err := s.Store.FindAssignments(ctx, teacherID)
	if err != nil {
		return RosterResult{State: StateFailed, Err: err}
	}
	if len(assignments) == 0 {
		return RosterResult{State: StateEmpty}
	}

	seen := make(map[uuid.UUID]struct{}, len(assignments))
	ids := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		if a.TeacherStudentStudentID == uuid.Nil {
			continue
		}
		if _, ok := seen[a.TeacherStudentStudentID]; ok {
			continue
		}
		seen[a.TeacherStudentStudentID] = struct{}{}
		ids = append(ids, a.TeacherStudentStudentID)
	}

	profiles, err := s.Store.FindProfiles(ctx, ids)
	if err != nil {
		return RosterResult{State: StateFailed, Err: err}
	}
	progress, err := s.Store.FindProgress(ctx, ids)
	if err != nil {
		return RosterResult{State: StateFailed, Err: err}
	}

	byProfile := make(map[uuid.UUID]userModel.Profile, len(profiles))
	for _, p := range profiles {
		byProfile[p.ProfileID] = p
	}
	byProgress := make(map[uuid.UUID]rosterModel.StudentProgress, len(progress))
	for _, p := range progress {
		byProgress[p.StudentProgressStudentID] = p
	}

	students := make([]StudentEntry, 0, len(assignments))
	for _, a := range assignments {
		rawName := ""
		if prof, ok := byProfile[a.TeacherStudentStudentID]; ok {
			rawName = strings.TrimSpace(prof.ProfileName)
		}
		name := rawName
		if name == "" {
			name = unknownStudentName
		}

		prog := 0
		if pv, ok := byProgress[a.TeacherStudentStudentID]; ok {
			prog = pv.StudentProgressProgress
		}

		status := a.TeacherStudentStatus
		if status == "" {
			status = rosterModel.StudentStatusActive
		}

		students = append(students, StudentEntry{
			StudentID: a.TeacherStudentStudentID,
			Name:      name,
			Initials:  Initials(rawName),
			Grade:     a.TeacherStudentGradeLevel,
			Strand:    a.TeacherStudentStrand,
			Status:    status,
			Progress:  prog,
		})
	}

	return RosterResult{State: StateLoaded, Students: students}
}

// Initials derives an avatar label from the first letters of the first two
// whitespace-separated name tokens: "Maria Santos" -> "MS", "Cher" -> "C".
// A name with no tokens (missing profile, blank name) yields "?".
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "?"
	}
	initials := string([]rune(parts[0])[0])
	if len(parts) > 1 {
		initials += string([]rune(parts[1])[0])
	}
	return strings.ToUpper(initials)
}

// FilterByStatus is the active/inactive tab predicate. Pure and local: it
// never triggers a fetch.
func FilterByStatus(students []StudentEntry, status string) []StudentEntry {
	filtered := make([]StudentEntry, 0, len(students))
	for _, s := range students {
		if s.Status == status {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
