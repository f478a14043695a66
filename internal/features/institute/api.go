package institute

import (
	"go-recruit/internal/config"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type InstituteApi struct {
	controller *InstituteController
	config     *config.Config
	engine     middleware.AuthorizationEngine
}

func NewInstituteApi(controller *InstituteController, cfg *config.Config, engine middleware.AuthorizationEngine) *InstituteApi {
	return &InstituteApi{
		controller: controller,
		config:     cfg,
		engine:     engine,
	}
}

// Setup registers institute routes
func (h *InstituteApi) Setup(app *fiber.App) {
	institutes := app.Group("/api/institutes", middleware.AuthMiddleware(h.config.SkipAuth))

	institutes.Get("/", middleware.RequirePermission(h.engine, "institutes", "view"), h.controller.ListInstitutes)
	institutes.Post("/", middleware.RequirePermission(h.engine, "institutes", "create"), h.controller.CreateInstitute)
	institutes.Get("/:id", middleware.RequirePermission(h.engine, "institutes", "view"), h.controller.GetInstitute)
	institutes.Put("/:id", middleware.RequirePermission(h.engine, "institutes", "edit"), h.controller.UpdateInstitute)
	institutes.Delete("/:id", middleware.RequirePermission(h.engine, "institutes", "delete"), h.controller.DeleteInstitute)
}
