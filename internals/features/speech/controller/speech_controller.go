package controller

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"speaksy_backend/internals/features/speech/model"
	"speaksy_backend/internals/features/speech/service"
	helper "speaksy_backend/internals/helpers"
)

type SpeechController struct {
	DB     *gorm.DB
	Client *service.Client
}

func NewSpeechController(db *gorm.DB, client *service.Client) *SpeechController {
	return &SpeechController{DB: db, Client: client}
}

// POST /api/u/speech/attempts
// Multipart body: "file" (audio) + "expected_text" (+ optional "module_id").
// Runs the transcribe-then-feedback sequence against the speech API and
// persists the attempt.
func (ctrl *SpeechController) SubmitAttempt(c *fiber.Ctx) error {
	if ctrl.Client == nil || ctrl.Client.BaseURL == "" {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Speech analysis is not configured")
	}

	userID, ok := helper.GetUserUUID(c)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	expectedText := c.FormValue("expected_text")
	if expectedText == "" {
		return helper.Error(c, fiber.StatusBadRequest, "expected_text is required")
	}

	var moduleID *uuid.UUID
	if raw := c.FormValue("module_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid module_id")
		}
		moduleID = &parsed
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Audio file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Println("[ERROR] open upload:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to read upload")
	}
	defer file.Close()

	// The two-call sequence can legitimately outlast the request-wide
	// deadline, so it runs on its own budget.
	ctx, cancel := service.AnalysisContext(c.UserContext())
	defer cancel()

	processed, err := ctrl.Client.ProcessAudio(ctx, fileHeader.Filename, file, expectedText)
	if err != nil {
		log.Println("[ERROR] process-audio:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Speech analysis failed")
	}

	attemptID := uuid.New()
	feedback, err := ctrl.Client.AnalyzeFeedback(ctx, userID.String(), attemptID.String(),
		processed.Transcription, processed.SpacyStats)
	if err != nil {
		log.Println("[ERROR] analyze-feedback:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Feedback analysis failed")
	}

	recommendations, err := json.Marshal(feedback.Recommendations)
	if err != nil {
		log.Println("[ERROR] marshal recommendations:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	attempt := model.SpeakingAttempt{
		SpeakingAttemptID:              attemptID,
		SpeakingAttemptUserID:          userID,
		SpeakingAttemptModuleID:        moduleID,
		SpeakingAttemptExpectedText:    expectedText,
		SpeakingAttemptTranscription:   processed.Transcription,
		SpeakingAttemptSpacyStats:      datatypes.JSON(processed.SpacyStats),
		SpeakingAttemptFeedbackSummary: feedback.Summary,
		SpeakingAttemptRecommendations: datatypes.JSON(recommendations),
	}
	if err := ctrl.DB.WithContext(ctx).Create(&attempt).Error; err != nil {
		log.Println("[ERROR] save attempt:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save attempt")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attempt analyzed", fiber.Map{
		"attempt_id":    attempt.SpeakingAttemptID,
		"transcription": processed.Transcription,
		"feedback":      feedback,
	})
}

// GET /api/u/speech/attempts — the caller's attempt history, newest first.
func (ctrl *SpeechController) ListAttempts(c *fiber.Ctx) error {
	userID, ok := helper.GetUserUUID(c)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var rows []model.SpeakingAttempt
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("speaking_attempt_user_id = ?", userID).
		Order("speaking_attempt_created_at DESC").
		Limit(50).
		Find(&rows).Error; err != nil {
		log.Println("[ERROR] list attempts:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list attempts")
	}

	return helper.Success(c, "OK", rows)
}
