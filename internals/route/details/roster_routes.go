package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"speaksy_backend/internals/constants"
	database "speaksy_backend/internals/databases"
	rosterController "speaksy_backend/internals/features/roster/controller"
	rosterService "speaksy_backend/internals/features/roster/service"
	authMiddleware "speaksy_backend/internals/middlewares/auth"
)

func RosterRoutes(private fiber.Router, db *gorm.DB, notifier *database.Notifier) {
	svc := rosterService.NewRosterService(rosterService.NewGormRosterStore(db))
	ctrl := rosterController.NewRosterController(svc, notifier)

	teacher := private.Group("/teacher", authMiddleware.RequireRole(constants.RoleTeacher))
	teacher.Get("/students", ctrl.GetStudents)
	teacher.Get("/students/stream", ctrl.StreamStudents)
}
