package permission

import (
	"fmt"

	"go-recruit/internal/apperr"
	"go-recruit/internal/features/activity"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionController struct {
	PermissionService PermissionService
	ActivityService   activity.ActivityService
}

func NewPermissionController(permissionService PermissionService, activityService activity.ActivityService) *PermissionController {
	return &PermissionController{
		PermissionService: permissionService,
		ActivityService:   activityService,
	}
}

type SetGrantRequest struct {
	PermissionID string `json:"permission_id"`
	Granted      *bool  `json:"granted"`
}

type BulkGrantsRequest struct {
	Permissions []GrantItem `json:"permissions"`
}

// ListRoles godoc
// @Summary      List all roles
// @Tags         role-permissions
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/role-permissions/roles [get]
func (ctrl *PermissionController) ListRoles(c *fiber.Ctx) error {
	roles, err := ctrl.PermissionService.ListRoles(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": roles})
}

// GetRole godoc
// @Summary      Get role by ID
// @Tags         role-permissions
// @Produce      json
// @Param        roleId path string true "Role ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/role-permissions/roles/{roleId} [get]
func (ctrl *PermissionController) GetRole(c *fiber.Ctx) error {
	r, err := ctrl.PermissionService.GetRole(c.Context(), c.Params("roleId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": r})
}

// ListPermissions godoc
// @Summary      List the permission catalog
// @Tags         role-permissions
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/role-permissions/permissions [get]
func (ctrl *PermissionController) ListPermissions(c *fiber.Ctx) error {
	permissions, err := ctrl.PermissionService.ListPermissions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": permissions})
}

// ListPermissionsByModule godoc
// @Summary      List the permission catalog grouped by module
// @Tags         role-permissions
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/role-permissions/permissions/by-module [get]
func (ctrl *PermissionController) ListPermissionsByModule(c *fiber.Ctx) error {
	grouped, err := ctrl.PermissionService.ListPermissionsByModule(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": grouped})
}

// GetRolePermissions godoc
// @Summary      Get a role's permission set
// @Description  Full catalog grouped by module, annotated with the role's grant state
// @Tags         role-permissions
// @Produce      json
// @Param        roleId path string true "Role ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/role-permissions/roles/{roleId}/permissions [get]
func (ctrl *PermissionController) GetRolePermissions(c *fiber.Ctx) error {
	grouped, err := ctrl.PermissionService.ListPermissionsForRole(c.Context(), c.Params("roleId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": grouped})
}

// UpdateRolePermissions godoc
// @Summary      Bulk-update a role's grants
// @Tags         role-permissions
// @Accept       json
// @Produce      json
// @Param        roleId path string true "Role ID"
// @Param        body body BulkGrantsRequest true "Grant updates"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/role-permissions/roles/{roleId}/permissions [put]
func (ctrl *PermissionController) UpdateRolePermissions(c *fiber.Ctx) error {
	roleID := c.Params("roleId")

	var req BulkGrantsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if req.Permissions == nil {
		return apperr.Validation("Permissions must be an array")
	}

	r, err := ctrl.PermissionService.GetRole(c.Context(), roleID)
	if err != nil {
		return err
	}

	if err := ctrl.PermissionService.BulkSetGrants(c.Context(), roleID, req.Permissions); err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "PERMISSION_UPDATE",
			fmt.Sprintf("Updated permissions for role: %s", r.DisplayName), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "message": "Permissions updated successfully"})
}

// SetRolePermission godoc
// @Summary      Set a single grant for a role
// @Tags         role-permissions
// @Accept       json
// @Produce      json
// @Param        roleId path string true "Role ID"
// @Param        body body SetGrantRequest true "Grant decision"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/role-permissions/roles/{roleId}/permissions/set [post]
func (ctrl *PermissionController) SetRolePermission(c *fiber.Ctx) error {
	var req SetGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if req.PermissionID == "" || req.Granted == nil {
		return apperr.Validation("Permission ID and granted status are required")
	}

	if err := ctrl.PermissionService.SetGrant(c.Context(), c.Params("roleId"), req.PermissionID, *req.Granted); err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		verb := "Revoked"
		if *req.Granted {
			verb = "Granted"
		}
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "PERMISSION_CHANGE",
			fmt.Sprintf("%s permission for role", verb), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "message": "Permission updated successfully"})
}

// GetMyPermissions godoc
// @Summary      List the caller's granted permissions
// @Tags         role-permissions
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/role-permissions/me/permissions [get]
func (ctrl *PermissionController) GetMyPermissions(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return apperr.Authentication("Authentication required")
	}

	permissions, err := ctrl.PermissionService.ListGrantedForRoleName(c.Context(), claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": permissions})
}

// CheckMyPermission godoc
// @Summary      Check whether the caller holds one permission
// @Tags         role-permissions
// @Produce      json
// @Param        module query string true "Module name"
// @Param        action query string true "Action name"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/role-permissions/me/check [get]
func (ctrl *PermissionController) CheckMyPermission(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return apperr.Authentication("Authentication required")
	}

	module := c.Query("module")
	action := c.Query("action")
	if module == "" || action == "" {
		return apperr.Validation("Module and action are required")
	}

	ok, err := ctrl.PermissionService.HasPermission(c.Context(), claims.Role, module, action)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "hasPermission": ok})
}
