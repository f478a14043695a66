package middleware

import (
	"context"
	"strings"

	"go-recruit/internal/apperr"
	common_models "go-recruit/internal/common/models"
	"go-recruit/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// SuperAdminRole always passes authorization checks without grant lookups.
// The comparison is case-insensitive to guard against case drift between
// token claims and stored role names.
const SuperAdminRole = "SuperAdmin"

// AuthorizationEngine is the slice of the permission service the middleware
// needs. Defined here so the permission feature can satisfy it without an
// import cycle.
type AuthorizationEngine interface {
	HasPermission(ctx context.Context, roleName, module, action string) (bool, error)
	HasAnyPermission(ctx context.Context, roleName string, pairs []common_models.PermissionRef) (bool, error)
}

// IsSuperAdmin reports whether the role name matches the reserved
// super-admin designation.
func IsSuperAdmin(roleName string) bool {
	return strings.EqualFold(roleName, SuperAdminRole)
}

// RequirePermission gates a route on one (module, action) grant.
func RequirePermission(engine AuthorizationEngine, module, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return apperr.Authentication("Authentication required")
		}

		ok, err := engine.HasPermission(c.Context(), claims.Role, module, action)
		if err != nil {
			// Fail closed: a storage failure is never treated as granted
			return err
		}
		if !ok {
			return apperr.Authorization(
				"You do not have permission to perform this action",
				apperr.RequiredPermission{Module: module, Action: action},
			)
		}

		return c.Next()
	}
}

// RequireAnyPermission gates a route on at least one of the given pairs.
func RequireAnyPermission(engine AuthorizationEngine, pairs ...common_models.PermissionRef) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return apperr.Authentication("Authentication required")
		}

		ok, err := engine.HasAnyPermission(c.Context(), claims.Role, pairs)
		if err != nil {
			return err
		}
		if !ok {
			required := make([]apperr.RequiredPermission, 0, len(pairs))
			for _, p := range pairs {
				required = append(required, apperr.RequiredPermission{Module: p.Module, Action: p.Action})
			}
			return apperr.Authorization("You do not have permission to perform this action", required...)
		}

		return c.Next()
	}
}

// RequireSuperAdmin restricts a route to the reserved super-admin role.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return apperr.Authentication("Authentication required")
		}
		if !IsSuperAdmin(claims.Role) {
			return apperr.Authorization("This action is restricted to Super Administrators only")
		}
		return c.Next()
	}
}
