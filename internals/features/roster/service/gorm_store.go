package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	rosterModel "speaksy_backend/internals/features/roster/model"
	userModel "speaksy_backend/internals/features/users/model"
)

type GormRosterStore struct {
	DB *gorm.DB
}

func NewGormRosterStore(db *gorm.DB) *GormRosterStore {
	return &GormRosterStore{DB: db}
}

func (s *GormRosterStore) FindAssignments(ctx context.Context, teacherID uuid.UUID) ([]rosterModel.TeacherStudent, error) {
	var rows []rosterModel.TeacherStudent
	err := s.DB.WithContext(ctx).
		Where("teacher_student_teacher_id = ?", teacherID).
		Find(&rows).Error
	return rows, err
}

func (s *GormRosterStore) FindProfiles(ctx context.Context, ids []uuid.UUID) ([]userModel.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []userModel.Profile
	err := s.DB.WithContext(ctx).
		Where("profile_id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (s *GormRosterStore) FindProgress(ctx context.Context, ids []uuid.UUID) ([]rosterModel.StudentProgress, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []rosterModel.StudentProgress
	err := s.DB.WithContext(ctx).
		Where("student_progress_student_id IN ?", ids).
		Find(&rows).Error
	return rows, err
}
