package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"speaksy_backend/internals/features/livesessions/model"
)

// GormSessionStore is the production SessionStore backed by Postgres.
type GormSessionStore struct {
	DB *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{DB: db}
}

func (s *GormSessionStore) InsertSession(ctx context.Context, row *model.LiveSession) error {
	return s.DB.WithContext(ctx).Create(row).Error
}

func (s *GormSessionStore) UpdateSession(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return s.DB.WithContext(ctx).
		Model(&model.LiveSession{}).
		Where("live_session_id = ?", id).
		Updates(patch).Error
}

// BumpViewers calls the SQL function installed by the migrations; the counter
// moves inside one UPDATE on the server, so concurrent deltas never race.
func (s *GormSessionStore) BumpViewers(ctx context.Context, id uuid.UUID, delta int) error {
	return s.DB.WithContext(ctx).
		Exec("SELECT live_sessions_bump_viewers(?, ?)", id, delta).Error
}

func (s *GormSessionStore) FindSession(ctx context.Context, id uuid.UUID) (*model.LiveSession, error) {
	var row model.LiveSession
	err := s.DB.WithContext(ctx).
		Where("live_session_id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormSessionStore) FindLiveSessions(ctx context.Context, limit int) ([]model.LiveSession, error) {
	var rows []model.LiveSession
	err := s.DB.WithContext(ctx).
		Where("live_session_status = ?", model.StatusLive).
		Order("live_session_created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (s *GormSessionStore) UpsertAttendance(ctx context.Context, a *model.LiveAttendance) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "live_attendance_session_id"},
			{Name: "live_attendance_user_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"live_attendance_joined_at": a.LiveAttendanceJoinedAt,
			"live_attendance_left_at":   nil,
		}),
	}).Create(a).Error
}

func (s *GormSessionStore) CloseAttendance(ctx context.Context, sessionID, userID uuid.UUID, leftAt time.Time) error {
	return s.DB.WithContext(ctx).
		Model(&model.LiveAttendance{}).
		Where("live_attendance_session_id = ? AND live_attendance_user_id = ?", sessionID, userID).
		Update("live_attendance_left_at", leftAt).Error
}

func (s *GormSessionStore) CountAttendance(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&model.LiveAttendance{}).
		Where("live_attendance_session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
