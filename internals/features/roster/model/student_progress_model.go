package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentProgress struct {
	StudentProgressID           uint      `gorm:"column:student_progress_id;primaryKey" json:"student_progress_id"`
	StudentProgressStudentID    uuid.UUID `gorm:"column:student_progress_student_id;type:uuid;not null;unique" json:"student_progress_student_id"`
	StudentProgressProgress     int       `gorm:"column:student_progress_progress;not null;default:0" json:"student_progress_progress"`
	StudentProgressSatisfaction int       `gorm:"column:student_progress_satisfaction;not null;default:0" json:"student_progress_satisfaction"`
	StudentProgressConfidence   *int      `gorm:"column:student_progress_confidence" json:"student_progress_confidence"`
	StudentProgressAnxiety      *int      `gorm:"column:student_progress_anxiety" json:"student_progress_anxiety"`
	LastUpdated                 time.Time `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}
