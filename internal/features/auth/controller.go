package auth

import (
	"go-recruit/internal/apperr"
	"go-recruit/internal/features/activity"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	AuthService     AuthService
	ActivityService activity.ActivityService
}

func NewAuthController(authService AuthService, activityService activity.ActivityService) *AuthController {
	return &AuthController{
		AuthService:     authService,
		ActivityService: activityService,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Authenticate and receive a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]interface{}
// @Router       /api/auth/login [post]
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return apperr.Validation("Email and password are required")
	}

	result, err := ctrl.AuthService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	ctrl.ActivityService.Log(c.Context(), result.User.ID.Hex(), "LOGIN", "User logged in", c.IP())

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// ForgotPassword godoc
// @Summary      Request a password reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body ForgotPasswordRequest true "Account email"
// @Success      200 {object} map[string]interface{}
// @Router       /api/auth/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if req.Email == "" {
		return apperr.Validation("Email is required")
	}

	if err := ctrl.AuthService.ForgotPassword(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "If the account exists, a reset email has been sent"})
}

// ResetPassword godoc
// @Summary      Set a new password using a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body ResetPasswordRequest true "Token and new password"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]interface{}
// @Router       /api/auth/reset-password [post]
func (ctrl *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if req.Token == "" {
		return apperr.Validation("Token is required")
	}

	if err := ctrl.AuthService.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password updated"})
}
