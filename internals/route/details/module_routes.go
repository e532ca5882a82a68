package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	moduleController "speaksy_backend/internals/features/modules/controller"
	moduleService "speaksy_backend/internals/features/modules/service"
)

func ModuleRoutes(public fiber.Router, db *gorm.DB) {
	svc := moduleService.NewCatalogService(moduleService.NewGormCatalogStore(db))
	ctrl := moduleController.NewModuleController(svc)

	public.Get("/modules", ctrl.List)
}
