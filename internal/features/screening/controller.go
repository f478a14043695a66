package screening

import (
	"fmt"

	"go-recruit/internal/apperr"
	"go-recruit/internal/features/activity"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ScreeningController struct {
	ScreeningService ScreeningService
	ActivityService  activity.ActivityService
}

func NewScreeningController(screeningService ScreeningService, activityService activity.ActivityService) *ScreeningController {
	return &ScreeningController{
		ScreeningService: screeningService,
		ActivityService:  activityService,
	}
}

// ListRules godoc
// @Summary      List screening rules
// @Tags         screening
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/screening/rules [get]
func (ctrl *ScreeningController) ListRules(c *fiber.Ctx) error {
	rules, err := ctrl.ScreeningService.ListRules(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rules})
}

// GetRule godoc
// @Summary      Get screening rule by ID
// @Tags         screening
// @Produce      json
// @Param        id path string true "Rule ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/screening/rules/{id} [get]
func (ctrl *ScreeningController) GetRule(c *fiber.Ctx) error {
	rule, err := ctrl.ScreeningService.GetRule(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rule})
}

// CreateRule godoc
// @Summary      Create a screening rule
// @Tags         screening
// @Accept       json
// @Produce      json
// @Param        body body Rule true "Rule"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/screening/rules [post]
func (ctrl *ScreeningController) CreateRule(c *fiber.Ctx) error {
	var rule Rule
	if err := c.BodyParser(&rule); err != nil {
		return apperr.Validation("Invalid request body")
	}

	if err := ctrl.ScreeningService.CreateRule(c.Context(), &rule); err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "CREATE_SCREENING_RULE",
			fmt.Sprintf("Created screening rule: %s", rule.Name), c.IP())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": rule})
}

// UpdateRule godoc
// @Summary      Update a screening rule
// @Tags         screening
// @Accept       json
// @Produce      json
// @Param        id path string true "Rule ID"
// @Param        body body UpdateRuleRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/screening/rules/{id} [put]
func (ctrl *ScreeningController) UpdateRule(c *fiber.Ctx) error {
	var req UpdateRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	rule, err := ctrl.ScreeningService.UpdateRule(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "UPDATE_SCREENING_RULE",
			fmt.Sprintf("Updated screening rule: %s", rule.Name), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "data": rule})
}

// DeleteRule godoc
// @Summary      Delete a screening rule
// @Tags         screening
// @Produce      json
// @Param        id path string true "Rule ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/screening/rules/{id} [delete]
func (ctrl *ScreeningController) DeleteRule(c *fiber.Ctx) error {
	if err := ctrl.ScreeningService.DeleteRule(c.Context(), c.Params("id")); err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "DELETE_SCREENING_RULE",
			fmt.Sprintf("Deleted screening rule %s", c.Params("id")), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "message": "Screening rule deleted"})
}
