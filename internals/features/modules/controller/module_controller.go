package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"speaksy_backend/internals/features/modules/model"
	"speaksy_backend/internals/features/modules/service"
	helper "speaksy_backend/internals/helpers"
)

type ModuleController struct {
	Service *service.CatalogService
}

func NewModuleController(svc *service.CatalogService) *ModuleController {
	return &ModuleController{Service: svc}
}

// GET /api/public/modules?category=speaking&level=basic
func (ctrl *ModuleController) List(c *fiber.Ctx) error {
	category := c.Query("category")
	if category != model.CategorySpeaking && category != model.CategoryReading {
		return helper.Error(c, fiber.StatusBadRequest, "category must be speaking or reading")
	}
	level := c.Query("level")
	if level != "" && level != model.LevelBasic && level != model.LevelAdvanced {
		return helper.Error(c, fiber.StatusBadRequest, "level must be basic or advanced")
	}

	result := ctrl.Service.Load(c.UserContext(), category, level)
	switch result.State {
	case service.StateFailed:
		log.Println("[ERROR] load modules:", result.Err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load modules")
	case service.StateEmpty:
		return helper.Success(c, "OK", fiber.Map{
			"state":   "empty",
			"modules": []service.CatalogEntry{},
		})
	}

	return helper.Success(c, "OK", fiber.Map{
		"state":   "loaded",
		"modules": result.Modules,
	})
}
