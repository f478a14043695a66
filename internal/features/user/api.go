package user

import (
	"go-recruit/internal/config"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
	engine     middleware.AuthorizationEngine
}

func NewUserApi(controller *UserController, cfg *config.Config, engine middleware.AuthorizationEngine) *UserApi {
	return &UserApi{
		controller: controller,
		config:     cfg,
		engine:     engine,
	}
}

// Setup registers user management routes
func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth))

	users.Get("/", middleware.RequirePermission(h.engine, "users", "view"), h.controller.ListUsers)
	users.Post("/", middleware.RequirePermission(h.engine, "users", "create"), h.controller.CreateUser)
	users.Get("/:id", middleware.RequirePermission(h.engine, "users", "view"), h.controller.GetUser)
	users.Put("/:id", middleware.RequirePermission(h.engine, "users", "edit"), h.controller.UpdateUser)
	users.Delete("/:id", middleware.RequirePermission(h.engine, "users", "delete"), h.controller.DeleteUser)
}
