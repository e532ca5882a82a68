package model

import (
	"time"

	"github.com/google/uuid"
)

// LiveAttendance records one user's presence in one session. The composite
// unique index makes joins an upsert: a repeated join refreshes the same row.
type LiveAttendance struct {
	LiveAttendanceID        uint       `gorm:"column:live_attendance_id;primaryKey" json:"live_attendance_id"`
	LiveAttendanceSessionID uuid.UUID  `gorm:"column:live_attendance_session_id;type:uuid;not null;uniqueIndex:idx_live_attendances_session_user" json:"live_attendance_session_id"`
	LiveAttendanceUserID    uuid.UUID  `gorm:"column:live_attendance_user_id;type:uuid;not null;uniqueIndex:idx_live_attendances_session_user" json:"live_attendance_user_id"`
	LiveAttendanceJoinedAt  time.Time  `gorm:"column:live_attendance_joined_at;not null" json:"live_attendance_joined_at"`
	LiveAttendanceLeftAt    *time.Time `gorm:"column:live_attendance_left_at" json:"live_attendance_left_at"`
}

func (LiveAttendance) TableName() string {
	return "live_attendances"
}
