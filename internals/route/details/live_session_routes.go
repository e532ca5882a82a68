package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "speaksy_backend/internals/databases"
	liveController "speaksy_backend/internals/features/livesessions/controller"
	liveService "speaksy_backend/internals/features/livesessions/service"
)

func LiveSessionRoutes(public fiber.Router, private fiber.Router, db *gorm.DB, notifier *database.Notifier) {
	svc := liveService.NewLifecycleService(liveService.NewGormSessionStore(db))
	ctrl := liveController.NewLiveSessionController(svc, notifier)

	// discovery + watching need no account
	public.Get("/live-sessions/live", ctrl.ListLive)
	public.Get("/live-sessions/:id", ctrl.GetByID)
	public.Get("/live-sessions/:id/watch", ctrl.Watch)

	private.Post("/live-sessions", ctrl.Create)
	private.Patch("/live-sessions/:id/end", ctrl.End)
	private.Post("/live-sessions/:id/join", ctrl.Join)
	private.Post("/live-sessions/:id/leave", ctrl.Leave)
}
