package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-recruit/internal/apperr"
	common_models "go-recruit/internal/common/models"
	"go-recruit/internal/config"
	"go-recruit/internal/email"
	"go-recruit/internal/features/cadet"
	"go-recruit/internal/features/institute"
	"go-recruit/internal/features/screening"
	"go-recruit/pkg/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const submissionTokenTTL = 7 * 24 * time.Hour

// SendResult reports the outcome of one request email.
type SendResult struct {
	InstituteID string `json:"institute_id"`
	Email       string `json:"email,omitempty"`
	Sent        bool   `json:"sent"`
	Error       string `json:"error,omitempty"`
}

// VerifiedInstitute is what a token-bearing institute sees before uploading.
type VerifiedInstitute struct {
	InstituteID   string `json:"institute_id"`
	InstituteName string `json:"institute_name"`
	Email         string `json:"email"`
}

type SubmissionService interface {
	SendRequest(ctx context.Context, instituteIDs []string, description string, attachment *email.Attachment) []SendResult
	VerifyToken(ctx context.Context, token string) (*VerifiedInstitute, error)
	Upload(ctx context.Context, token, originalName string, data []byte) (*Submission, error)
	List(ctx context.Context, status, instituteID string, page, limit int64) ([]Submission, common_models.Pagination, error)
	Get(ctx context.Context, id string) (*Submission, error)
	Download(ctx context.Context, id string) (*Submission, []byte, error)
	Import(ctx context.Context, id string) (*ImportSummary, error)
}

type SubmissionServiceImpl struct {
	Repo          SubmissionRepository
	InstituteRepo institute.InstituteRepository
	CadetRepo     cadet.CadetRepository
	Screening     screening.ScreeningService
	Sender        email.Sender
	Config        *config.Config
	Logger        *zap.Logger
}

func NewSubmissionService(
	repo SubmissionRepository,
	instituteRepo institute.InstituteRepository,
	cadetRepo cadet.CadetRepository,
	screeningService screening.ScreeningService,
	sender email.Sender,
	cfg *config.Config,
	logger *zap.Logger,
) SubmissionService {
	return &SubmissionServiceImpl{
		Repo:          repo,
		InstituteRepo: instituteRepo,
		CadetRepo:     cadetRepo,
		Screening:     screeningService,
		Sender:        sender,
		Config:        cfg,
		Logger:        logger,
	}
}

// SendRequest emails each institute a one-time submission link. Failures are
// reported per institute rather than aborting the batch.
func (s *SubmissionServiceImpl) SendRequest(ctx context.Context, instituteIDs []string, description string, attachment *email.Attachment) []SendResult {
	results := make([]SendResult, 0, len(instituteIDs))
	expiry := time.Now().Add(submissionTokenTTL)

	for _, id := range instituteIDs {
		inst, err := s.InstituteRepo.FindByID(ctx, id)
		if err != nil {
			results = append(results, SendResult{InstituteID: id, Error: "Institute not found"})
			continue
		}

		token, err := utils.GenerateSubmissionToken(inst.ID.Hex(), submissionTokenTTL)
		if err != nil {
			results = append(results, SendResult{InstituteID: id, Email: inst.Email, Error: "Could not generate token"})
			continue
		}

		link := fmt.Sprintf("%s/institute/submit-excel?token=%s", s.Config.FrontendURL, token)
		body, err := email.RenderSubmissionRequest(email.SubmissionRequestData{
			InstituteName: inst.InstituteName,
			Description:   description,
			Link:          link,
			ExpiryDate:    expiry.Format("02 Jan 2006"),
		})
		if err != nil {
			results = append(results, SendResult{InstituteID: id, Email: inst.Email, Error: "Could not render email"})
			continue
		}

		msg := &email.Email{
			From:     s.Config.EmailFrom,
			To:       []string{inst.Email},
			Subject:  "Cadet Data Submission Request",
			HtmlBody: body,
		}
		if attachment != nil {
			msg.Attachments = []email.Attachment{*attachment}
		}

		if err := s.Sender.Send(msg); err != nil {
			s.Logger.Error("submission request email failed",
				zap.String("institute_id", id), zap.Error(err))
			results = append(results, SendResult{InstituteID: id, Email: inst.Email, Error: "Email delivery failed"})
			continue
		}
		results = append(results, SendResult{InstituteID: id, Email: inst.Email, Sent: true})
	}
	return results
}

func (s *SubmissionServiceImpl) VerifyToken(ctx context.Context, token string) (*VerifiedInstitute, error) {
	claims, err := utils.ValidatePurposeToken(token, utils.TokenTypeSubmission)
	if err != nil {
		return nil, apperr.Authentication("Submission link is invalid or has expired")
	}

	inst, err := s.InstituteRepo.FindByID(ctx, claims.InstituteID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Institute not found")
		}
		return nil, apperr.Storage(err)
	}

	return &VerifiedInstitute{
		InstituteID:   inst.ID.Hex(),
		InstituteName: inst.InstituteName,
		Email:         inst.Email,
	}, nil
}

func (s *SubmissionServiceImpl) Upload(ctx context.Context, token, originalName string, data []byte) (*Submission, error) {
	claims, err := utils.ValidatePurposeToken(token, utils.TokenTypeSubmission)
	if err != nil {
		return nil, apperr.Authentication("Submission link is invalid or has expired")
	}
	if len(data) == 0 {
		return nil, apperr.Validation("Uploaded file is empty")
	}
	if !strings.HasSuffix(strings.ToLower(originalName), ".xlsx") {
		return nil, apperr.Validation("Only .xlsx files are accepted")
	}

	inst, err := s.InstituteRepo.FindByID(ctx, claims.InstituteID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Institute not found")
		}
		return nil, apperr.Storage(err)
	}

	sub := &Submission{
		InstituteID:  inst.ID,
		Filename:     fmt.Sprintf("%s_%s.xlsx", inst.ID.Hex(), uuid.NewString()),
		OriginalName: originalName,
		Size:         int64(len(data)),
		Status:       StatusPending,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, sub, data); err != nil {
		return nil, apperr.Storage(err)
	}

	s.Logger.Info("submission uploaded",
		zap.String("submission_id", sub.ID.Hex()),
		zap.String("institute_id", inst.ID.Hex()),
		zap.Int64("size", sub.Size))
	return sub, nil
}

func (s *SubmissionServiceImpl) List(ctx context.Context, status, instituteID string, page, limit int64) ([]Submission, common_models.Pagination, error) {
	subs, total, err := s.Repo.List(ctx, status, instituteID, page, limit)
	if err != nil {
		return nil, common_models.Pagination{}, apperr.Storage(err)
	}
	return subs, common_models.NewPagination(page, limit, total), nil
}

func (s *SubmissionServiceImpl) Get(ctx context.Context, id string) (*Submission, error) {
	sub, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Submission not found")
		}
		return nil, apperr.Storage(err)
	}
	return sub, nil
}

func (s *SubmissionServiceImpl) Download(ctx context.Context, id string) (*Submission, []byte, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.Repo.FindFile(ctx, sub.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, apperr.NotFound("Submission file not found")
		}
		return nil, nil, apperr.Storage(err)
	}
	return sub, data, nil
}

// Import runs a submission through the pipeline. Parsing and header location
// happen before the status claim so a workbook with no recognizable header
// leaves the submission pending and retryable after a re-upload. The claim
// itself is a conditional update, so concurrent imports of the same
// submission produce cadets exactly once.
func (s *SubmissionServiceImpl) Import(ctx context.Context, id string) (*ImportSummary, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == StatusImported {
		return nil, apperr.AlreadyImported("Submission has already been imported")
	}

	data, err := s.Repo.FindFile(ctx, sub.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Submission file not found")
		}
		return nil, apperr.Storage(err)
	}

	rows, err := Parse(data)
	if err != nil {
		return nil, err
	}
	header, err := LocateHeader(rows)
	if err != nil {
		return nil, err
	}

	claimed, err := s.Repo.MarkImported(ctx, sub.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if !claimed {
		return nil, apperr.AlreadyImported("Submission has already been imported")
	}

	summary := &ImportSummary{}
	for i := header.Index + 1; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}

		rec := MapRow(rows[i], header.Labels)
		if rec.Name == "" {
			summary.Failed++
			continue
		}

		rec.InstituteID = sub.InstituteID
		rec.SubmissionID = sub.ID
		rec.Status = cadet.StatusActive
		rec.CreatedAt = time.Now()
		s.screen(ctx, rec)

		if err := s.CadetRepo.Create(ctx, rec); err != nil {
			s.Logger.Error("cadet insert failed during import",
				zap.String("submission_id", sub.ID.Hex()),
				zap.Int("row", i),
				zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Success++
	}
	summary.Total = summary.Success + summary.Failed

	s.Logger.Info("submission imported",
		zap.String("submission_id", sub.ID.Hex()),
		zap.Int("success", summary.Success),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// screen applies enabled screening rules. Rule failures never block the
// import; the cadet simply keeps an empty eligibility.
func (s *SubmissionServiceImpl) screen(ctx context.Context, rec *cadet.Cadet) {
	if s.Screening == nil {
		return
	}
	eligible, evaluated, err := s.Screening.Evaluate(ctx, rec)
	if err != nil {
		s.Logger.Warn("screening evaluation failed", zap.String("name", rec.Name), zap.Error(err))
		return
	}
	if !evaluated {
		return
	}
	if eligible {
		rec.Eligibility = cadet.EligibilityPassed
	} else {
		rec.Eligibility = cadet.EligibilityFlagged
	}
}
