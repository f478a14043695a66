package cadet

import (
	"go-recruit/internal/config"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CadetApi struct {
	controller *CadetController
	config     *config.Config
	engine     middleware.AuthorizationEngine
}

func NewCadetApi(controller *CadetController, cfg *config.Config, engine middleware.AuthorizationEngine) *CadetApi {
	return &CadetApi{
		controller: controller,
		config:     cfg,
		engine:     engine,
	}
}

// Setup registers cadet routes
func (h *CadetApi) Setup(app *fiber.App) {
	cadets := app.Group("/api/cadets", middleware.AuthMiddleware(h.config.SkipAuth))

	cadets.Get("/", middleware.RequirePermission(h.engine, "cadets", "view"), h.controller.ListCadets)
	cadets.Post("/", middleware.RequirePermission(h.engine, "cadets", "create"), h.controller.CreateCadet)
	cadets.Get("/:id", middleware.RequirePermission(h.engine, "cadets", "view"), h.controller.GetCadet)
}
