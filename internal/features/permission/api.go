package permission

import (
	"go-recruit/internal/config"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionApi struct {
	controller *PermissionController
	config     *config.Config
	service    PermissionService
}

func NewPermissionApi(controller *PermissionController, cfg *config.Config, service PermissionService) *PermissionApi {
	return &PermissionApi{
		controller: controller,
		config:     cfg,
		service:    service,
	}
}

// Setup registers role-permission admin routes
func (h *PermissionApi) Setup(app *fiber.App) {
	rp := app.Group("/api/role-permissions", middleware.AuthMiddleware(h.config.SkipAuth))

	manage := middleware.RequirePermission(h.service, "role-permissions", "manage")

	rp.Get("/roles", manage, h.controller.ListRoles)
	rp.Get("/roles/:roleId", manage, h.controller.GetRole)
	rp.Get("/permissions", manage, h.controller.ListPermissions)
	rp.Get("/permissions/by-module", manage, h.controller.ListPermissionsByModule)
	rp.Get("/roles/:roleId/permissions", manage, h.controller.GetRolePermissions)
	rp.Put("/roles/:roleId/permissions", manage, h.controller.UpdateRolePermissions)
	rp.Post("/roles/:roleId/permissions/set", manage, h.controller.SetRolePermission)

	// Self-check endpoints: any authenticated user
	rp.Get("/me/permissions", h.controller.GetMyPermissions)
	rp.Get("/me/check", h.controller.CheckMyPermission)
}
