package cadet

import (
	"fmt"
	"strconv"

	"go-recruit/internal/apperr"
	"go-recruit/internal/features/activity"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CadetController struct {
	CadetService    CadetService
	ActivityService activity.ActivityService
}

func NewCadetController(cadetService CadetService, activityService activity.ActivityService) *CadetController {
	return &CadetController{
		CadetService:    cadetService,
		ActivityService: activityService,
	}
}

// ListCadets godoc
// @Summary      List cadets
// @Description  Paginated cadet listing with institute, batch and free-text filters
// @Tags         cadets
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(50)
// @Param        institute_id query string false "Filter by institute"
// @Param        batch query string false "Filter by batch (substring)"
// @Param        search query string false "Search name, email or INDoS number"
// @Success      200 {object} map[string]interface{}
// @Router       /api/cadets [get]
func (ctrl *CadetController) ListCadets(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	filter := ListFilter{
		InstituteID: c.Query("institute_id"),
		Batch:       c.Query("batch"),
		Search:      c.Query("search"),
	}

	cadets, pagination, err := ctrl.CadetService.List(c.Context(), filter, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":       cadets,
		"pagination": pagination,
	})
}

// GetCadet godoc
// @Summary      Get cadet by ID
// @Tags         cadets
// @Produce      json
// @Param        id path string true "Cadet ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/cadets/{id} [get]
func (ctrl *CadetController) GetCadet(c *fiber.Ctx) error {
	cadet, err := ctrl.CadetService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": cadet})
}

// CreateCadet godoc
// @Summary      Create a cadet directly
// @Tags         cadets
// @Accept       json
// @Produce      json
// @Param        body body Cadet true "Cadet record"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/cadets [post]
func (ctrl *CadetController) CreateCadet(c *fiber.Ctx) error {
	var cadet Cadet
	if err := c.BodyParser(&cadet); err != nil {
		return apperr.Validation("Invalid request body")
	}

	if err := ctrl.CadetService.Create(c.Context(), &cadet); err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "CREATE_CADET",
			fmt.Sprintf("Created cadet: %s", cadet.Name), c.IP())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cadet})
}
