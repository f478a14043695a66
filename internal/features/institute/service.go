package institute

import (
	"context"
	"errors"
	"time"

	"go-recruit/internal/apperr"
	common_models "go-recruit/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type InstituteService interface {
	Create(ctx context.Context, inst *Institute) error
	Get(ctx context.Context, id string) (*Institute, error)
	List(ctx context.Context, search string, page, limit int64) ([]Institute, common_models.Pagination, error)
	Update(ctx context.Context, id string, update UpdateInstituteRequest) (*Institute, error)
	Delete(ctx context.Context, id string) error
}

type InstituteServiceImpl struct {
	Repo InstituteRepository
}

func NewInstituteService(repo InstituteRepository) InstituteService {
	return &InstituteServiceImpl{Repo: repo}
}

type UpdateInstituteRequest struct {
	InstituteName *string `json:"institute_name"`
	Email         *string `json:"email"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Status        *string `json:"status"`
}

func (s *InstituteServiceImpl) Create(ctx context.Context, inst *Institute) error {
	if inst.InstituteName == "" {
		return apperr.Validation("Institute name is required")
	}
	if inst.Email == "" {
		return apperr.Validation("Institute email is required")
	}

	existing, err := s.Repo.FindByEmail(ctx, inst.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Storage(err)
	}
	if existing != nil {
		return apperr.Conflict("An institute with this email already exists")
	}

	if inst.Status == "" {
		inst.Status = StatusActive
	}
	now := time.Now()
	inst.CreatedAt = now
	inst.UpdatedAt = now

	if err := s.Repo.Create(ctx, inst); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *InstituteServiceImpl) Get(ctx context.Context, id string) (*Institute, error) {
	inst, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Institute not found")
		}
		return nil, apperr.Storage(err)
	}
	return inst, nil
}

func (s *InstituteServiceImpl) List(ctx context.Context, search string, page, limit int64) ([]Institute, common_models.Pagination, error) {
	institutes, total, err := s.Repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, common_models.Pagination{}, apperr.Storage(err)
	}
	return institutes, common_models.NewPagination(page, limit, total), nil
}

func (s *InstituteServiceImpl) Update(ctx context.Context, id string, req UpdateInstituteRequest) (*Institute, error) {
	update := bson.M{}
	if req.InstituteName != nil {
		update["institute_name"] = *req.InstituteName
	}
	if req.Email != nil {
		update["email"] = *req.Email
	}
	if req.ContactPerson != nil {
		update["contact_person"] = *req.ContactPerson
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.City != nil {
		update["city"] = *req.City
	}
	if req.State != nil {
		update["state"] = *req.State
	}
	if req.Status != nil {
		if *req.Status != StatusActive && *req.Status != StatusInactive {
			return nil, apperr.Validation("Status must be active or inactive")
		}
		update["status"] = *req.Status
	}
	if len(update) == 0 {
		return nil, apperr.Validation("No fields to update")
	}

	inst, err := s.Repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Institute not found")
		}
		return nil, apperr.Storage(err)
	}
	return inst, nil
}

func (s *InstituteServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("Institute not found")
		}
		return apperr.Storage(err)
	}
	return nil
}
