package activity

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ActivityController struct {
	ActivityService ActivityService
}

func NewActivityController(activityService ActivityService) *ActivityController {
	return &ActivityController{
		ActivityService: activityService,
	}
}

// ListLogs godoc
// @Summary      List activity logs
// @Description  Get a paginated list of admin activity, newest first
// @Tags         activity
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(50)
// @Success      200 {object} map[string]interface{}
// @Router       /api/activity-logs [get]
func (ctrl *ActivityController) ListLogs(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, pagination, err := ctrl.ActivityService.List(c.Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":       entries,
		"pagination": pagination,
	})
}
