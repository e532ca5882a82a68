package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LiveSessionStatus is a closed set; anything else is rejected at the boundary.
type LiveSessionStatus string

const (
	StatusLive      LiveSessionStatus = "live"
	StatusScheduled LiveSessionStatus = "scheduled"
	StatusEnded     LiveSessionStatus = "ended"
	StatusHidden    LiveSessionStatus = "hidden"
)

func ParseLiveSessionStatus(s string) (LiveSessionStatus, error) {
	switch LiveSessionStatus(s) {
	case StatusLive, StatusScheduled, StatusEnded, StatusHidden:
		return LiveSessionStatus(s), nil
	}
	return "", fmt.Errorf("invalid live session status %q", s)
}

type LiveSession struct {
	LiveSessionID           uuid.UUID         `gorm:"column:live_session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"live_session_id"`
	LiveSessionHostID       *uuid.UUID        `gorm:"column:live_session_host_id;type:uuid" json:"live_session_host_id"`
	LiveSessionTitle        string            `gorm:"column:live_session_title;not null" json:"live_session_title"`
	LiveSessionSlug         *string           `gorm:"column:live_session_slug" json:"live_session_slug"`
	LiveSessionLink         *string           `gorm:"column:live_session_link" json:"live_session_link"`
	LiveSessionToken        *string           `gorm:"column:live_session_token" json:"live_session_token"`
	LiveSessionStatus       LiveSessionStatus `gorm:"column:live_session_status;not null;default:live;index" json:"live_session_status"`
	LiveSessionViewers      int               `gorm:"column:live_session_viewers;not null;default:0" json:"live_session_viewers"`
	LiveSessionDuration     *int              `gorm:"column:live_session_duration" json:"live_session_duration"`
	LiveSessionParticipants *int              `gorm:"column:live_session_participants" json:"live_session_participants"`
	LiveSessionCreatedAt    time.Time         `gorm:"column:live_session_created_at;autoCreateTime" json:"live_session_created_at"`
}

func (LiveSession) TableName() string {
	return "live_sessions"
}
