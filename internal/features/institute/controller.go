package institute

import (
	"fmt"
	"strconv"

	"go-recruit/internal/apperr"
	"go-recruit/internal/features/activity"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type InstituteController struct {
	InstituteService InstituteService
	ActivityService  activity.ActivityService
}

func NewInstituteController(instituteService InstituteService, activityService activity.ActivityService) *InstituteController {
	return &InstituteController{
		InstituteService: instituteService,
		ActivityService:  activityService,
	}
}

// ListInstitutes godoc
// @Summary      List institutes
// @Tags         institutes
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Param        search query string false "Search name, email or city"
// @Success      200 {object} map[string]interface{}
// @Router       /api/institutes [get]
func (ctrl *InstituteController) ListInstitutes(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	institutes, pagination, err := ctrl.InstituteService.List(c.Context(), c.Query("search"), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":       institutes,
		"pagination": pagination,
	})
}

// GetInstitute godoc
// @Summary      Get institute by ID
// @Tags         institutes
// @Produce      json
// @Param        id path string true "Institute ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/institutes/{id} [get]
func (ctrl *InstituteController) GetInstitute(c *fiber.Ctx) error {
	inst, err := ctrl.InstituteService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": inst})
}

// CreateInstitute godoc
// @Summary      Register a new institute
// @Tags         institutes
// @Accept       json
// @Produce      json
// @Param        body body Institute true "Institute"
// @Success      201 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /api/institutes [post]
func (ctrl *InstituteController) CreateInstitute(c *fiber.Ctx) error {
	var inst Institute
	if err := c.BodyParser(&inst); err != nil {
		return apperr.Validation("Invalid request body")
	}

	if err := ctrl.InstituteService.Create(c.Context(), &inst); err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "CREATE_INSTITUTE",
			fmt.Sprintf("Registered institute: %s", inst.InstituteName), c.IP())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": inst})
}

// UpdateInstitute godoc
// @Summary      Update an institute
// @Tags         institutes
// @Accept       json
// @Produce      json
// @Param        id path string true "Institute ID"
// @Param        body body UpdateInstituteRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/institutes/{id} [put]
func (ctrl *InstituteController) UpdateInstitute(c *fiber.Ctx) error {
	var req UpdateInstituteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	inst, err := ctrl.InstituteService.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "UPDATE_INSTITUTE",
			fmt.Sprintf("Updated institute: %s", inst.InstituteName), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "data": inst})
}

// DeleteInstitute godoc
// @Summary      Delete an institute
// @Tags         institutes
// @Produce      json
// @Param        id path string true "Institute ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/institutes/{id} [delete]
func (ctrl *InstituteController) DeleteInstitute(c *fiber.Ctx) error {
	if err := ctrl.InstituteService.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "DELETE_INSTITUTE",
			fmt.Sprintf("Deleted institute %s", c.Params("id")), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "message": "Institute deleted"})
}
