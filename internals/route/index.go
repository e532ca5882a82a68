package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "speaksy_backend/internals/databases"
	authMiddleware "speaksy_backend/internals/middlewares/auth"
	routeDetails "speaksy_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, notifier *database.Notifier) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// PUBLIC → no JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE → JWT required
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	routeDetails.LiveSessionRoutes(public, private, db, notifier)
	routeDetails.RosterRoutes(private, db, notifier)
	routeDetails.ModuleRoutes(public, db)
	routeDetails.SpeechRoutes(private, db)
}
