package submission

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"go-recruit/internal/apperr"
	"go-recruit/internal/email"
	"go-recruit/internal/features/activity"
	"go-recruit/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SubmissionController struct {
	SubmissionService SubmissionService
	ActivityService   activity.ActivityService
}

func NewSubmissionController(submissionService SubmissionService, activityService activity.ActivityService) *SubmissionController {
	return &SubmissionController{
		SubmissionService: submissionService,
		ActivityService:   activityService,
	}
}

// SendRequest godoc
// @Summary      Email submission links to institutes
// @Description  Sends each listed institute a tokenized upload link, optionally attaching a roster template
// @Tags         submissions
// @Accept       multipart/form-data
// @Produce      json
// @Param        institute_ids formData string true "JSON array of institute IDs"
// @Param        description formData string false "Message shown in the email"
// @Param        template formData file false "Template workbook to attach"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/submissions/send-request [post]
func (ctrl *SubmissionController) SendRequest(c *fiber.Ctx) error {
	raw := c.FormValue("institute_ids")
	if raw == "" {
		return apperr.Validation("institute_ids is required")
	}

	var instituteIDs []string
	if err := json.Unmarshal([]byte(raw), &instituteIDs); err != nil {
		return apperr.Validation("institute_ids must be a JSON array of IDs")
	}
	if len(instituteIDs) == 0 {
		return apperr.Validation("institute_ids must not be empty")
	}

	var attachment *email.Attachment
	if fh, err := c.FormFile("template"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return apperr.Validation("Unable to read template attachment")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return apperr.Validation("Unable to read template attachment")
		}
		attachment = &email.Attachment{Filename: fh.Filename, Content: data}
	}

	results := ctrl.SubmissionService.SendRequest(c.Context(), instituteIDs, c.FormValue("description"), attachment)

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "SEND_SUBMISSION_REQUEST",
			fmt.Sprintf("Requested cadet data from %d institute(s)", len(instituteIDs)), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "results": results})
}

// VerifyToken godoc
// @Summary      Verify a submission link token
// @Tags         submissions
// @Produce      json
// @Param        token query string true "Submission token"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]interface{}
// @Router       /api/public/submissions/verify [get]
func (ctrl *SubmissionController) VerifyToken(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apperr.Validation("token is required")
	}

	inst, err := ctrl.SubmissionService.VerifyToken(c.Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": inst})
}

// Upload godoc
// @Summary      Upload a cadet roster workbook
// @Description  Public endpoint for institutes holding a valid submission token
// @Tags         submissions
// @Accept       multipart/form-data
// @Produce      json
// @Param        token formData string true "Submission token"
// @Param        file formData file true "Roster workbook (.xlsx)"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/public/submissions [post]
func (ctrl *SubmissionController) Upload(c *fiber.Ctx) error {
	token := c.FormValue("token")
	if token == "" {
		return apperr.Validation("token is required")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.Validation("file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return apperr.Validation("Unable to read uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return apperr.Validation("Unable to read uploaded file")
	}

	sub, err := ctrl.SubmissionService.Upload(c.Context(), token, fh.Filename, data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": sub})
}

// ListSubmissions godoc
// @Summary      List submissions
// @Tags         submissions
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Param        status query string false "Filter by status (pending or imported)"
// @Param        institute_id query string false "Filter by institute"
// @Success      200 {object} map[string]interface{}
// @Router       /api/submissions [get]
func (ctrl *SubmissionController) ListSubmissions(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	subs, pagination, err := ctrl.SubmissionService.List(c.Context(), c.Query("status"), c.Query("institute_id"), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":       subs,
		"pagination": pagination,
	})
}

// GetSubmission godoc
// @Summary      Get submission by ID
// @Tags         submissions
// @Produce      json
// @Param        id path string true "Submission ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/submissions/{id} [get]
func (ctrl *SubmissionController) GetSubmission(c *fiber.Ctx) error {
	sub, err := ctrl.SubmissionService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": sub})
}

// Download godoc
// @Summary      Download the original workbook of a submission
// @Tags         submissions
// @Produce      application/octet-stream
// @Param        id path string true "Submission ID"
// @Success      200 {file} binary
// @Failure      404 {object} map[string]interface{}
// @Router       /api/submissions/{id}/download [get]
func (ctrl *SubmissionController) Download(c *fiber.Ctx) error {
	sub, data, err := ctrl.SubmissionService.Download(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, sub.OriginalName))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(data)
}

// Import godoc
// @Summary      Import a pending submission into the cadet roster
// @Tags         submissions
// @Produce      json
// @Param        id path string true "Submission ID"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/submissions/{id}/import [post]
func (ctrl *SubmissionController) Import(c *fiber.Ctx) error {
	summary, err := ctrl.SubmissionService.Import(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		ctrl.ActivityService.Log(c.Context(), claims.UserID, "IMPORT_SUBMISSION",
			fmt.Sprintf("Imported submission %s: %d succeeded, %d failed", c.Params("id"), summary.Success, summary.Failed), c.IP())
	}

	return c.JSON(fiber.Map{"success": true, "summary": summary})
}
