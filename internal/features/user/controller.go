package user

import (
	"fmt"
	"strconv"

	"go-recruit/internal/apperr"
	"go-recruit/internal/features/activity"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	UserService     UserService
	ActivityService activity.ActivityService
}

func NewUserController(userService UserService, activityService activity.ActivityService) *UserController {
	return &UserController{
		UserService:     userService,
		ActivityService: activityService,
	}
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200 {object} map[string]interface{}
// @Router       /api/users [get]
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, pagination, err := ctrl.UserService.List(c.Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":       users,
		"pagination": pagination,
	})
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/users/{id} [get]
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	u, err := ctrl.UserService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": u})
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body body CreateUserRequest true "User"
// @Success      201 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /api/users [post]
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	u, err := ctrl.UserService.Create(c.Context(), req)
	if err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "CREATE_USER",
			fmt.Sprintf("Created user %s with role %s", u.Email, u.Role), c.IP())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": u})
}

// UpdateUser godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        body body UpdateUserRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/users/{id} [put]
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	u, err := ctrl.UserService.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "UPDATE_USER",
			fmt.Sprintf("Updated user %s", u.Email), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "data": u})
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  A user cannot delete their own account
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	requesterID := ""
	if claims != nil {
		requesterID = claims.UserID
	}

	if err := ctrl.UserService.Delete(c.Context(), requesterID, c.Params("id")); err != nil {
		return err
	}

	if claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "DELETE_USER",
			fmt.Sprintf("Deleted user %s", c.Params("id")), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "message": "User deleted"})
}
