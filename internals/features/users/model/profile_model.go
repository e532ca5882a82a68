package model

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ProfileID        uuid.UUID `gorm:"column:profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"profile_id"`
	ProfileName      string    `gorm:"column:profile_name;not null" json:"profile_name"`
	ProfileEmail     string    `gorm:"column:profile_email;not null;unique" json:"profile_email"`
	ProfilePassword  string    `gorm:"column:profile_password;not null" json:"-"`
	ProfileRole      string    `gorm:"column:profile_role;not null;default:student" json:"profile_role"`
	ProfileCreatedAt time.Time `gorm:"column:profile_created_at;autoCreateTime" json:"profile_created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
