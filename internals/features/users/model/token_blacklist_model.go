package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist holds revoked JWTs (logout) until they expire.
type TokenBlacklist struct {
	TokenBlacklistID        uint           `gorm:"column:token_blacklist_id;primaryKey" json:"token_blacklist_id"`
	TokenBlacklistToken     string         `gorm:"column:token_blacklist_token;not null;index" json:"token_blacklist_token"`
	TokenBlacklistExpiredAt time.Time      `gorm:"column:token_blacklist_expired_at;not null" json:"token_blacklist_expired_at"`
	DeletedAt               gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
