package cadet

import (
	"context"
	"errors"
	"time"

	"go-recruit/internal/apperr"
	common_models "go-recruit/internal/common/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CadetService interface {
	Create(ctx context.Context, cadet *Cadet) error
	Get(ctx context.Context, id string) (*Cadet, error)
	List(ctx context.Context, filter ListFilter, page, limit int64) ([]Cadet, common_models.Pagination, error)
}

type CadetServiceImpl struct {
	Repo CadetRepository
}

func NewCadetService(repo CadetRepository) CadetService {
	return &CadetServiceImpl{Repo: repo}
}

func (s *CadetServiceImpl) Create(ctx context.Context, cadet *Cadet) error {
	if cadet.Name == "" {
		return apperr.Validation("Cadet name is required")
	}
	if cadet.Status == "" {
		cadet.Status = StatusActive
	}
	if cadet.CreatedAt.IsZero() {
		cadet.CreatedAt = time.Now()
	}
	if err := s.Repo.Create(ctx, cadet); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *CadetServiceImpl) Get(ctx context.Context, id string) (*Cadet, error) {
	cadet, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Cadet not found")
		}
		return nil, apperr.Storage(err)
	}
	return cadet, nil
}

func (s *CadetServiceImpl) List(ctx context.Context, filter ListFilter, page, limit int64) ([]Cadet, common_models.Pagination, error) {
	cadets, total, err := s.Repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, common_models.Pagination{}, apperr.Storage(err)
	}
	return cadets, common_models.NewPagination(page, limit, total), nil
}
