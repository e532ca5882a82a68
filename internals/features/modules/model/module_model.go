package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategorySpeaking = "speaking"
	CategoryReading  = "reading"

	LevelBasic    = "basic"
	LevelAdvanced = "advanced"
)

// LearningModule is one read-only catalog entry (a lesson).
type LearningModule struct {
	ModuleID          uuid.UUID `gorm:"column:module_id;type:uuid;default:gen_random_uuid();primaryKey" json:"module_id"`
	ModuleTitle       string    `gorm:"column:module_title;not null" json:"module_title"`
	ModuleDescription *string   `gorm:"column:module_description" json:"module_description"`
	ModuleCategory    string    `gorm:"column:module_category;not null;index" json:"module_category"`
	ModuleLevel       string    `gorm:"column:module_level;not null" json:"module_level"`
	ModuleOrderIndex  *int      `gorm:"column:module_order_index" json:"module_order_index"`
	ModuleActive      bool      `gorm:"column:module_active;not null;default:true" json:"module_active"`
	ModuleCreatedAt   time.Time `gorm:"column:module_created_at;autoCreateTime" json:"module_created_at"`
}

func (LearningModule) TableName() string {
	return "modules"
}
