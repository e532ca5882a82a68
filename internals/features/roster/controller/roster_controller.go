package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	database "speaksy_backend/internals/databases"
	rosterModel "speaksy_backend/internals/features/roster/model"
	"speaksy_backend/internals/features/roster/service"
	helper "speaksy_backend/internals/helpers"
)

type RosterController struct {
	Service  *service.RosterService
	Notifier *database.Notifier
}

func NewRosterController(svc *service.RosterService, notifier *database.Notifier) *RosterController {
	return &RosterController{Service: svc, Notifier: notifier}
}

// GET /api/u/teacher/students?status=active|inactive
// Omitting status returns the full joined roster; the active/inactive split
// is a pure in-memory filter over the same load.
func (ctrl *RosterController) GetStudents(c *fiber.Ctx) error {
	teacherID, ok := helper.GetUserUUID(c)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	status := c.Query("status")
	if status != "" && status != rosterModel.StudentStatusActive && status != rosterModel.StudentStatusInactive {
		return helper.Error(c, fiber.StatusBadRequest, "status must be active or inactive")
	}

	result := ctrl.Service.Load(c.UserContext(), teacherID)
	switch result.State {
	case service.StateFailed:
		log.Println("[ERROR] load roster:", result.Err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load students")
	case service.StateEmpty:
		return helper.Success(c, "OK", fiber.Map{
			"state":    "empty",
			"students": []service.StudentEntry{},
		})
	}

	students := result.Students
	if status != "" {
		students = service.FilterByStatus(students, status)
	}
	return helper.Success(c, "OK", fiber.Map{
		"state":    "loaded",
		"students": students,
		"total":    len(result.Students),
	})
}
