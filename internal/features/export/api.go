package export

import (
	"go-recruit/internal/config"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	controller *ExportController
	config     *config.Config
	engine     middleware.AuthorizationEngine
}

func NewExportApi(controller *ExportController, cfg *config.Config, engine middleware.AuthorizationEngine) *ExportApi {
	return &ExportApi{
		controller: controller,
		config:     cfg,
		engine:     engine,
	}
}

// Setup registers export routes
func (h *ExportApi) Setup(app *fiber.App) {
	exp := app.Group("/api/export", middleware.AuthMiddleware(h.config.SkipAuth))

	exp.Post("/cadets", middleware.RequirePermission(h.engine, "cadets", "export"), h.controller.ExportCadets)
}
