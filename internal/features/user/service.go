package user

import (
	"context"
	"errors"
	"time"

	"go-recruit/internal/apperr"
	common_models "go-recruit/internal/common/models"
	"go-recruit/internal/features/role"
	"go-recruit/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, page, limit int64) ([]User, common_models.Pagination, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, requesterID, id string) error
}

type UserServiceImpl struct {
	Repo     UserRepository
	RoleRepo role.RoleRepository
}

func NewUserService(repo UserRepository, roleRepo role.RoleRepository) UserService {
	return &UserServiceImpl{Repo: repo, RoleRepo: roleRepo}
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
}

func (s *UserServiceImpl) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if req.Email == "" {
		return nil, apperr.Validation("Email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Validation("Password must be at least 8 characters")
	}
	if req.Role == "" {
		return nil, apperr.Validation("Role is required")
	}

	if _, err := s.RoleRepo.FindByName(ctx, req.Role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Validation("Unknown role: " + req.Role)
		}
		return nil, apperr.Storage(err)
	}

	existing, err := s.Repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("A user with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Unknown(err)
	}

	now := time.Now()
	u := &User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("A user with this email already exists")
		}
		return nil, apperr.Storage(err)
	}
	return u, nil
}

func (s *UserServiceImpl) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Storage(err)
	}
	return u, nil
}

func (s *UserServiceImpl) List(ctx context.Context, page, limit int64) ([]User, common_models.Pagination, error) {
	users, total, err := s.Repo.List(ctx, page, limit)
	if err != nil {
		return nil, common_models.Pagination{}, apperr.Storage(err)
	}
	return users, common_models.NewPagination(page, limit, total), nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	update := bson.M{}
	if req.FirstName != nil {
		update["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		update["last_name"] = *req.LastName
	}
	if req.Role != nil {
		if _, err := s.RoleRepo.FindByName(ctx, *req.Role); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperr.Validation("Unknown role: " + *req.Role)
			}
			return nil, apperr.Storage(err)
		}
		update["role"] = *req.Role
	}
	if req.Status != nil {
		if *req.Status != StatusActive && *req.Status != StatusDisabled {
			return nil, apperr.Validation("Status must be active or disabled")
		}
		update["status"] = *req.Status
	}
	if len(update) == 0 {
		return nil, apperr.Validation("No fields to update")
	}

	u, err := s.Repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Storage(err)
	}
	return u, nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, requesterID, id string) error {
	if requesterID == id {
		return apperr.Validation("You cannot delete your own account")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("User not found")
		}
		return apperr.Storage(err)
	}
	return nil
}
