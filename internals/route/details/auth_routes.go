package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "speaksy_backend/internals/features/users/controller"
	"speaksy_backend/internals/middlewares"
	authMiddleware "speaksy_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := userController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	me := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	me.Get("/me", ctrl.Me)
	me.Post("/logout", ctrl.Logout)
}
