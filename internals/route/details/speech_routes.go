package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"speaksy_backend/internals/configs"
	speechController "speaksy_backend/internals/features/speech/controller"
	speechService "speaksy_backend/internals/features/speech/service"
)

func SpeechRoutes(private fiber.Router, db *gorm.DB) {
	client := speechService.NewClient(configs.SpeechAPIBaseURL)
	ctrl := speechController.NewSpeechController(db, client)

	private.Post("/speech/attempts", ctrl.SubmitAttempt)
	private.Get("/speech/attempts", ctrl.ListAttempts)
}
