package auth

import (
	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
}

func NewAuthApi(controller *AuthController) *AuthApi {
	return &AuthApi{controller: controller}
}

// Setup registers authentication routes
func (h *AuthApi) Setup(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/login", h.controller.Login)
	auth.Post("/forgot-password", h.controller.ForgotPassword)
	auth.Post("/reset-password", h.controller.ResetPassword)
}
