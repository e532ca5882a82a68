package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"speaksy_backend/internals/features/livesessions/model"
)

// SessionStore is the narrow persistence surface the lifecycle logic needs.
// The GORM implementation lives in gorm_store.go; tests use a memory double.
type SessionStore interface {
	InsertSession(ctx context.Context, s *model.LiveSession) error
	UpdateSession(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	BumpViewers(ctx context.Context, id uuid.UUID, delta int) error
	FindSession(ctx context.Context, id uuid.UUID) (*model.LiveSession, error)
	FindLiveSessions(ctx context.Context, limit int) ([]model.LiveSession, error)
	UpsertAttendance(ctx context.Context, a *model.LiveAttendance) error
	CloseAttendance(ctx context.Context, sessionID, userID uuid.UUID, leftAt time.Time) error
	CountAttendance(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

const (
	DefaultTitle     = "Live Session"
	DefaultListLimit = 50
)

// CreateSessionInput carries optional overrides; nil means "use the default".
type CreateSessionInput struct {
	Status       *model.LiveSessionStatus
	Slug         *string
	Link         *string
	Token        *string
	Participants *int
	Duration     *int
}

// EndSessionInput mirrors the original "end" patch: only non-nil numeric
// fields make it into the update, so existing values are never clobbered.
type EndSessionInput struct {
	Status       *model.LiveSessionStatus
	Link         *string
	Duration     *int
	Participants *int
}

// JoinOutcome distinguishes a recorded join/leave from one skipped because no
// authenticated user could be resolved, so callers can tell the two apart.
type JoinOutcome int

const (
	JoinRecorded JoinOutcome = iota
	JoinSkippedNoUser
)

type LifecycleService struct {
	Store SessionStore
}

func NewLifecycleService(store SessionStore) *LifecycleService {
	return &LifecycleService{Store: store}
}

// Create inserts a new session owned by hostID (nil for anonymous hosts).
// Status defaults to "live". The returned row is fully populated by the store.
func (s *LifecycleService) Create(ctx context.Context, hostID *uuid.UUID, title string, in CreateSessionInput) (*model.LiveSession, error) {
	if title == "" {
		title = DefaultTitle
	}
	status := model.StatusLive
	if in.Status != nil {
		parsed, err := model.ParseLiveSessionStatus(string(*in.Status))
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	row := &model.LiveSession{
		LiveSessionHostID:       hostID,
		LiveSessionTitle:        title,
		LiveSessionStatus:       status,
		LiveSessionSlug:         in.Slug,
		LiveSessionLink:         in.Link,
		LiveSessionToken:        in.Token,
		LiveSessionParticipants: in.Participants,
		LiveSessionDuration:     in.Duration,
	}
	if err := s.Store.InsertSession(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// End patches one session; status defaults to "ended".
func (s *LifecycleService) End(ctx context.Context, id uuid.UUID, in EndSessionInput) error {
	status := model.StatusEnded
	if in.Status != nil {
		parsed, err := model.ParseLiveSessionStatus(string(*in.Status))
		if err != nil {
			return err
		}
		status = parsed
	}

	patch := map[string]interface{}{
		"live_session_status": status,
	}
	if in.Link != nil {
		patch["live_session_link"] = *in.Link
	}
	if in.Duration != nil {
		patch["live_session_duration"] = *in.Duration
	}
	if in.Participants != nil {
		patch["live_session_participants"] = *in.Participants
	}
	return s.Store.UpdateSession(ctx, id, patch)
}

// BumpViewers adjusts the viewer counter by delta. The adjustment runs
// server-side so concurrent joins never lose updates.
func (s *LifecycleService) BumpViewers(ctx context.Context, id uuid.UUID, delta int) error {
	return s.Store.BumpViewers(ctx, id, delta)
}

// ListLiveNow returns up to limit sessions with status=live, newest first.
func (s *LifecycleService) ListLiveNow(ctx context.Context, limit int) ([]model.LiveSession, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.Store.FindLiveSessions(ctx, limit)
}

// GetByID returns (nil, nil) when no session matches; errors are transport only.
func (s *LifecycleService) GetByID(ctx context.Context, id uuid.UUID) (*model.LiveSession, error) {
	return s.Store.FindSession(ctx, id)
}

// MarkJoined upserts the caller's attendance row and bumps viewers by +1.
// A zero userID reports JoinSkippedNoUser instead of failing silently.
func (s *LifecycleService) MarkJoined(ctx context.Context, sessionID, userID uuid.UUID) (JoinOutcome, error) {
	if userID == uuid.Nil {
		return JoinSkippedNoUser, nil
	}

	att := &model.LiveAttendance{
		LiveAttendanceSessionID: sessionID,
		LiveAttendanceUserID:    userID,
		LiveAttendanceJoinedAt:  time.Now().UTC(),
		LiveAttendanceLeftAt:    nil,
	}
	if err := s.Store.UpsertAttendance(ctx, att); err != nil {
		return JoinRecorded, err
	}
	if err := s.Store.BumpViewers(ctx, sessionID, +1); err != nil {
		return JoinRecorded, err
	}
	return JoinRecorded, nil
}

// MarkLeft closes the caller's attendance row and bumps viewers by -1.
func (s *LifecycleService) MarkLeft(ctx context.Context, sessionID, userID uuid.UUID) (JoinOutcome, error) {
	if userID == uuid.Nil {
		return JoinSkippedNoUser, nil
	}

	if err := s.Store.CloseAttendance(ctx, sessionID, userID, time.Now().UTC()); err != nil {
		return JoinRecorded, err
	}
	if err := s.Store.BumpViewers(ctx, sessionID, -1); err != nil {
		return JoinRecorded, err
	}
	return JoinRecorded, nil
}

// CountParticipants counts attendance rows for a session, used to finalize
// the participant count when ending a broadcast.
func (s *LifecycleService) CountParticipants(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	return s.Store.CountAttendance(ctx, sessionID)
}
