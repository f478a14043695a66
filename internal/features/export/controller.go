package export

import (
	"fmt"

	"go-recruit/internal/features/activity"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	ExportService   ExportService
	ActivityService activity.ActivityService
}

func NewExportController(exportService ExportService, activityService activity.ActivityService) *ExportController {
	return &ExportController{
		ExportService:   exportService,
		ActivityService: activityService,
	}
}

// ExportCadets godoc
// @Summary      Sync the cadet roster to the reporting warehouse
// @Tags         export
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/export/cadets [post]
func (ctrl *ExportController) ExportCadets(c *fiber.Ctx) error {
	result, err := ctrl.ExportService.ExportCadets(c.Context())
	if err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "EXPORT_CADETS",
			fmt.Sprintf("Exported %d cadet(s) to the warehouse", result.Exported), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "result": result})
}
