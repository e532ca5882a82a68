package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SpeakingAttempt stores one recorded exercise attempt together with the
// transcription and feedback returned by the speech-analysis API.
type SpeakingAttempt struct {
	SpeakingAttemptID              uuid.UUID      `gorm:"column:speaking_attempt_id;type:uuid;default:gen_random_uuid();primaryKey" json:"speaking_attempt_id"`
	SpeakingAttemptUserID          uuid.UUID      `gorm:"column:speaking_attempt_user_id;type:uuid;not null;index" json:"speaking_attempt_user_id"`
	SpeakingAttemptModuleID        *uuid.UUID     `gorm:"column:speaking_attempt_module_id;type:uuid" json:"speaking_attempt_module_id"`
	SpeakingAttemptExpectedText    string         `gorm:"column:speaking_attempt_expected_text;not null" json:"speaking_attempt_expected_text"`
	SpeakingAttemptTranscription   string         `gorm:"column:speaking_attempt_transcription" json:"speaking_attempt_transcription"`
	SpeakingAttemptSpacyStats      datatypes.JSON `gorm:"column:speaking_attempt_spacy_stats;type:jsonb" json:"speaking_attempt_spacy_stats"`
	SpeakingAttemptFeedbackSummary string         `gorm:"column:speaking_attempt_feedback_summary" json:"speaking_attempt_feedback_summary"`
	SpeakingAttemptRecommendations datatypes.JSON `gorm:"column:speaking_attempt_recommendations;type:jsonb" json:"speaking_attempt_recommendations"`
	SpeakingAttemptCreatedAt       time.Time      `gorm:"column:speaking_attempt_created_at;autoCreateTime" json:"speaking_attempt_created_at"`
}

func (SpeakingAttempt) TableName() string {
	return "speaking_attempts"
}
