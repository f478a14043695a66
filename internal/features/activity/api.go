package activity

import (
	"go-recruit/internal/config"
	"go-recruit/internal/middleware"
	"go-recruit/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type ActivityApi struct {
	controller *ActivityController
	config     *config.Config
	engine     middleware.AuthorizationEngine
	hub        *Hub
}

func NewActivityApi(controller *ActivityController, cfg *config.Config, engine middleware.AuthorizationEngine, hub *Hub) *ActivityApi {
	return &ActivityApi{
		controller: controller,
		config:     cfg,
		engine:     engine,
		hub:        hub,
	}
}

// Setup registers activity log routes and the live feed socket
func (h *ActivityApi) Setup(app *fiber.App) {
	logs := app.Group("/api/activity-logs", middleware.AuthMiddleware(h.config.SkipAuth))
	logs.Get("/", middleware.RequirePermission(h.engine, "activity-logs", "view"), h.controller.ListLogs)

	// Browsers cannot set headers on websocket upgrades, so the token rides
	// the query string.
	app.Use("/ws/activity", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if !h.config.SkipAuth {
			if _, err := utils.ValidateToken(c.Query("token")); err != nil {
				return fiber.ErrUnauthorized
			}
		}
		return c.Next()
	})
	app.Get("/ws/activity", websocket.New(func(conn *websocket.Conn) {
		h.hub.Register(conn)
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
