package export

import (
	"context"
	"database/sql"
	"time"

	"go-recruit/internal/apperr"
	"go-recruit/internal/config"
	"go-recruit/internal/features/cadet"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const rosterSchema = `
CREATE TABLE IF NOT EXISTS cadet_roster (
	id               TEXT PRIMARY KEY,
	institute_id     TEXT,
	submission_id    TEXT,
	name             TEXT NOT NULL,
	email            TEXT,
	phone            TEXT,
	course           TEXT,
	batch            TEXT,
	indos_number     TEXT,
	status           TEXT,
	eligibility      TEXT,
	imported_at      TIMESTAMPTZ,
	exported_at      TIMESTAMPTZ NOT NULL
)`

const rosterUpsert = `
INSERT INTO cadet_roster (
	id, institute_id, submission_id, name, email, phone,
	course, batch, indos_number, status, eligibility, imported_at, exported_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	course = EXCLUDED.course,
	batch = EXCLUDED.batch,
	indos_number = EXCLUDED.indos_number,
	status = EXCLUDED.status,
	eligibility = EXCLUDED.eligibility,
	exported_at = EXCLUDED.exported_at`

// ExportResult reports one warehouse sync run.
type ExportResult struct {
	Exported int `json:"exported"`
	Failed   int `json:"failed"`
}

type ExportService interface {
	// Enabled reports whether a warehouse is configured.
	Enabled() bool
	// ExportCadets pushes the full roster into the Postgres warehouse.
	ExportCadets(ctx context.Context) (*ExportResult, error)
}

type ExportServiceImpl struct {
	CadetRepo cadet.CadetRepository
	Config    *config.Config
	Logger    *zap.Logger
}

func NewExportService(cadetRepo cadet.CadetRepository, cfg *config.Config, logger *zap.Logger) ExportService {
	return &ExportServiceImpl{
		CadetRepo: cadetRepo,
		Config:    cfg,
		Logger:    logger,
	}
}

func (s *ExportServiceImpl) Enabled() bool {
	return s.Config.ExportDBURL != ""
}

func (s *ExportServiceImpl) ExportCadets(ctx context.Context) (*ExportResult, error) {
	if !s.Enabled() {
		return nil, apperr.Validation("Warehouse export is not configured")
	}

	db, err := sql.Open("postgres", s.Config.ExportDBURL)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, apperr.Storage(err)
	}
	if _, err := db.ExecContext(ctx, rosterSchema); err != nil {
		return nil, apperr.Storage(err)
	}

	cadets, err := s.CadetRepo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	stmt, err := db.PrepareContext(ctx, rosterUpsert)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer stmt.Close()

	now := time.Now()
	result := &ExportResult{}
	for _, c := range cadets {
		_, err := stmt.ExecContext(ctx,
			c.ID.Hex(),
			c.InstituteID.Hex(),
			c.SubmissionID.Hex(),
			c.Name,
			c.Email,
			c.Phone,
			c.Course,
			c.Batch,
			c.IndosNumber,
			c.Status,
			c.Eligibility,
			c.CreatedAt,
			now,
		)
		if err != nil {
			s.Logger.Error("cadet export failed",
				zap.String("cadet_id", c.ID.Hex()), zap.Error(err))
			result.Failed++
			continue
		}
		result.Exported++
	}

	s.Logger.Info("warehouse export finished",
		zap.Int("exported", result.Exported), zap.Int("failed", result.Failed))
	return result, nil
}
