package controller

import (
	"context"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	database "speaksy_backend/internals/databases"
	"speaksy_backend/internals/features/livesessions/dto"
	"speaksy_backend/internals/features/livesessions/model"
	"speaksy_backend/internals/features/livesessions/service"
	helper "speaksy_backend/internals/helpers"
)

type LiveSessionController struct {
	Service  *service.LifecycleService
	Notifier *database.Notifier
	Validate *validator.Validate
}

func NewLiveSessionController(svc *service.LifecycleService, notifier *database.Notifier) *LiveSessionController {
	return &LiveSessionController{Service: svc, Notifier: notifier, Validate: validator.New()}
}

func statusFromDTO(raw *string) *model.LiveSessionStatus {
	if raw == nil {
		return nil
	}
	s := model.LiveSessionStatus(*raw)
	return &s
}

// POST /api/u/live-sessions
func (ctrl *LiveSessionController) Create(c *fiber.Ctx) error {
	var req dto.CreateLiveSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Malformed request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var hostID *uuid.UUID
	if userID, ok := helper.GetUserUUID(c); ok {
		hostID = &userID
	}

	row, err := ctrl.Service.Create(c.UserContext(), hostID, req.Title, service.CreateSessionInput{
		Status:       statusFromDTO(req.Status),
		Slug:         req.Slug,
		Link:         req.Link,
		Token:        req.Token,
		Participants: req.Participants,
		Duration:     req.Duration,
	})
	if err != nil {
		log.Println("[ERROR] create live session:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create live session")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Live session created", row)
}

// PATCH /api/u/live-sessions/:id/end
func (ctrl *LiveSessionController) End(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.EndLiveSessionRequest
	if err := c.BodyParser(&req); err != nil && err != fiber.ErrUnprocessableEntity {
		return helper.Error(c, fiber.StatusBadRequest, "Malformed request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Callers that don't send a participant count get the attendance total.
	if req.Participants == nil {
		if count, err := ctrl.Service.CountParticipants(c.UserContext(), id); err == nil {
			n := int(count)
			req.Participants = &n
		}
	}

	if err := ctrl.Service.End(c.UserContext(), id, service.EndSessionInput{
		Status:       statusFromDTO(req.Status),
		Link:         req.Link,
		Duration:     req.Duration,
		Participants: req.Participants,
	}); err != nil {
		log.Println("[ERROR] end live session:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to end live session")
	}

	return helper.Success(c, "Live session ended", nil)
}

// POST /api/u/live-sessions/:id/join
func (ctrl *LiveSessionController) Join(c *fiber.Ctx) error {
	return ctrl.mark(c, ctrl.Service.MarkJoined, "Joined live session")
}

// POST /api/u/live-sessions/:id/leave
func (ctrl *LiveSessionController) Leave(c *fiber.Ctx) error {
	return ctrl.mark(c, ctrl.Service.MarkLeft, "Left live session")
}

func (ctrl *LiveSessionController) mark(
	c *fiber.Ctx,
	op func(ctx context.Context, sessionID, userID uuid.UUID) (service.JoinOutcome, error),
	message string,
) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	userID, _ := helper.GetUserUUID(c)
	outcome, err := op(c.UserContext(), id, userID)
	if err != nil {
		log.Println("[ERROR] attendance:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}

	if outcome == service.JoinSkippedNoUser {
		return helper.Success(c, "Skipped: no authenticated user", fiber.Map{"outcome": "skipped_no_user"})
	}
	return helper.Success(c, message, fiber.Map{"outcome": "recorded"})
}

// GET /api/public/live-sessions/live?limit=50
func (ctrl *LiveSessionController) ListLive(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	rows, err := ctrl.Service.ListLiveNow(c.UserContext(), limit)
	if err != nil {
		log.Println("[ERROR] list live sessions:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list live sessions")
	}
	return helper.Success(c, "OK", rows)
}

// GET /api/public/live-sessions/:id
func (ctrl *LiveSessionController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	row, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		log.Println("[ERROR] get live session:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch live session")
	}
	if row == nil {
		return helper.Error(c, fiber.StatusNotFound, "Live session not found")
	}
	return helper.Success(c, "OK", row)
}
