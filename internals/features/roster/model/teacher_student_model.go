package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StudentStatusActive   = "active"
	StudentStatusInactive = "inactive"
)

// TeacherStudent assigns one student to one teacher. Status is externally set
// by the teacher; this service treats it as an opaque active/inactive flag.
type TeacherStudent struct {
	TeacherStudentID         uint      `gorm:"column:teacher_student_id;primaryKey" json:"teacher_student_id"`
	TeacherStudentTeacherID  uuid.UUID `gorm:"column:teacher_student_teacher_id;type:uuid;not null;index" json:"teacher_student_teacher_id"`
	TeacherStudentStudentID  uuid.UUID `gorm:"column:teacher_student_student_id;type:uuid;not null" json:"teacher_student_student_id"`
	TeacherStudentGradeLevel string    `gorm:"column:teacher_student_grade_level" json:"teacher_student_grade_level"`
	TeacherStudentStrand     string    `gorm:"column:teacher_student_strand" json:"teacher_student_strand"`
	TeacherStudentStatus     string    `gorm:"column:teacher_student_status;not null;default:active" json:"teacher_student_status"`
	TeacherStudentCreatedAt  time.Time `gorm:"column:teacher_student_created_at;autoCreateTime" json:"teacher_student_created_at"`
}

func (TeacherStudent) TableName() string {
	return "teacher_students"
}
