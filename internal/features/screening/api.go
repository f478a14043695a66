package screening

import (
	"go-recruit/internal/config"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ScreeningApi struct {
	controller *ScreeningController
	config     *config.Config
	engine     middleware.AuthorizationEngine
}

func NewScreeningApi(controller *ScreeningController, cfg *config.Config, engine middleware.AuthorizationEngine) *ScreeningApi {
	return &ScreeningApi{
		controller: controller,
		config:     cfg,
		engine:     engine,
	}
}

// Setup registers screening rule routes
func (h *ScreeningApi) Setup(app *fiber.App) {
	rules := app.Group("/api/screening/rules", middleware.AuthMiddleware(h.config.SkipAuth))

	rules.Get("/", middleware.RequirePermission(h.engine, "screening", "view"), h.controller.ListRules)
	rules.Post("/", middleware.RequirePermission(h.engine, "screening", "manage"), h.controller.CreateRule)
	rules.Get("/:id", middleware.RequirePermission(h.engine, "screening", "view"), h.controller.GetRule)
	rules.Put("/:id", middleware.RequirePermission(h.engine, "screening", "manage"), h.controller.UpdateRule)
	rules.Delete("/:id", middleware.RequirePermission(h.engine, "screening", "manage"), h.controller.DeleteRule)
}
