package submission

import (
	"go-recruit/internal/config"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SubmissionApi struct {
	controller *SubmissionController
	config     *config.Config
	engine     middleware.AuthorizationEngine
}

func NewSubmissionApi(controller *SubmissionController, cfg *config.Config, engine middleware.AuthorizationEngine) *SubmissionApi {
	return &SubmissionApi{
		controller: controller,
		config:     cfg,
		engine:     engine,
	}
}

// Setup registers submission routes. The verify and upload endpoints are
// public on purpose: institutes authenticate with the emailed token, not a
// user account.
func (h *SubmissionApi) Setup(app *fiber.App) {
	public := app.Group("/api/public/submissions")
	public.Get("/verify", h.controller.VerifyToken)
	public.Post("/", h.controller.Upload)

	subs := app.Group("/api/submissions", middleware.AuthMiddleware(h.config.SkipAuth))
	subs.Get("/", middleware.RequirePermission(h.engine, "submissions", "view"), h.controller.ListSubmissions)
	subs.Post("/send-request", middleware.RequirePermission(h.engine, "submissions", "request"), h.controller.SendRequest)
	subs.Get("/:id", middleware.RequirePermission(h.engine, "submissions", "view"), h.controller.GetSubmission)
	subs.Get("/:id/download", middleware.RequirePermission(h.engine, "submissions", "view"), h.controller.Download)
	subs.Post("/:id/import", middleware.RequirePermission(h.engine, "submissions", "import"), h.controller.Import)
}
