package permission

import (
	"context"
	"errors"
	"fmt"

	"go-recruit/internal/apperr"
	common_models "go-recruit/internal/common/models"
	"go-recruit/internal/features/role"
	"go-recruit/internal/middleware"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// PermissionService is the Authorization Engine. All answers come from the
// backing store on every call; there is no in-process cache, so grant changes
// take effect immediately.
type PermissionService interface {
	HasPermission(ctx context.Context, roleName, module, action string) (bool, error)
	HasAnyPermission(ctx context.Context, roleName string, pairs []common_models.PermissionRef) (bool, error)
	SetGrant(ctx context.Context, roleID, permissionID string, granted bool) error
	BulkSetGrants(ctx context.Context, roleID string, items []GrantItem) error
	ListRoles(ctx context.Context) ([]role.Role, error)
	GetRole(ctx context.Context, roleID string) (*role.Role, error)
	ListPermissions(ctx context.Context) ([]Permission, error)
	ListPermissionsByModule(ctx context.Context) ([]ModulePermissions, error)
	ListPermissionsForRole(ctx context.Context, roleID string) ([]ModulePermissions, error)
	ListGrantedForRoleName(ctx context.Context, roleName string) ([]Permission, error)
}

type PermissionServiceImpl struct {
	PermissionRepo PermissionRepository
	GrantRepo      GrantRepository
	RoleRepo       role.RoleRepository
	Logger         *zap.Logger
}

func NewPermissionService(
	permissionRepo PermissionRepository,
	grantRepo GrantRepository,
	roleRepo role.RoleRepository,
	logger *zap.Logger,
) PermissionService {
	return &PermissionServiceImpl{
		PermissionRepo: permissionRepo,
		GrantRepo:      grantRepo,
		RoleRepo:       roleRepo,
		Logger:         logger,
	}
}

// storageErr wraps anything that is not a plain "no document" miss as a
// StorageUnavailable condition. Callers stay fail-closed either way.
func storageErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return apperr.Storage(err)
}

func (s *PermissionServiceImpl) HasPermission(ctx context.Context, roleName, module, action string) (bool, error) {
	// Super-admin short-circuit: evaluated before any grant lookup
	if middleware.IsSuperAdmin(roleName) {
		return true, nil
	}

	r, err := s.RoleRepo.FindByName(ctx, roleName)
	if err != nil {
		return false, storageErr(err)
	}

	perm, err := s.PermissionRepo.FindByModuleAction(ctx, module, action)
	if err != nil {
		return false, storageErr(err)
	}

	grant, err := s.GrantRepo.Find(ctx, r.ID, perm.ID)
	if err != nil {
		return false, storageErr(err)
	}

	return grant.Granted, nil
}

func (s *PermissionServiceImpl) HasAnyPermission(ctx context.Context, roleName string, pairs []common_models.PermissionRef) (bool, error) {
	if middleware.IsSuperAdmin(roleName) {
		return true, nil
	}

	for _, pair := range pairs {
		ok, err := s.HasPermission(ctx, roleName, pair.Module, pair.Action)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *PermissionServiceImpl) SetGrant(ctx context.Context, roleID, permissionID string, granted bool) error {
	r, err := s.RoleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("Role not found")
		}
		return apperr.Storage(err)
	}

	perm, err := s.PermissionRepo.FindByID(ctx, permissionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("Permission not found")
		}
		return apperr.Storage(err)
	}

	if err := s.GrantRepo.Upsert(ctx, r.ID, perm.ID, granted); err != nil {
		return apperr.Storage(err)
	}

	s.Logger.Info("grant updated",
		zap.String("role", r.Name),
		zap.String("module", perm.Module),
		zap.String("action", perm.Action),
		zap.Bool("granted", granted))
	return nil
}

// BulkSetGrants applies each item independently. There is no batch
// atomicity; failed items are collected and surfaced, never dropped.
func (s *PermissionServiceImpl) BulkSetGrants(ctx context.Context, roleID string, items []GrantItem) error {
	var errs []error
	for i, item := range items {
		if err := s.SetGrant(ctx, roleID, item.PermissionID, item.Granted); err != nil {
			errs = append(errs, fmt.Errorf("item %d (permission %s): %w", i, item.PermissionID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *PermissionServiceImpl) ListRoles(ctx context.Context) ([]role.Role, error) {
	roles, err := s.RoleRepo.List(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return roles, nil
}

func (s *PermissionServiceImpl) GetRole(ctx context.Context, roleID string) (*role.Role, error) {
	r, err := s.RoleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Role not found")
		}
		return nil, apperr.Storage(err)
	}
	return r, nil
}

func (s *PermissionServiceImpl) ListPermissions(ctx context.Context) ([]Permission, error) {
	permissions, err := s.PermissionRepo.List(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return permissions, nil
}

func (s *PermissionServiceImpl) ListPermissionsByModule(ctx context.Context) ([]ModulePermissions, error) {
	permissions, err := s.PermissionRepo.List(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return groupByModule(permissions, nil), nil
}

// ListPermissionsForRole returns the full catalog annotated with the role's
// grant state. Entries never explicitly granted appear with granted=false.
func (s *PermissionServiceImpl) ListPermissionsForRole(ctx context.Context, roleID string) ([]ModulePermissions, error) {
	r, err := s.GetRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	permissions, err := s.PermissionRepo.List(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	grants, err := s.GrantRepo.FindByRoleID(ctx, r.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	granted := make(map[primitive.ObjectID]bool, len(grants))
	for _, g := range grants {
		granted[g.PermissionID] = g.Granted
	}

	return groupByModule(permissions, granted), nil
}

// ListGrantedForRoleName answers "what can this role do" without a role-id
// round-trip. Only granted entries are returned.
func (s *PermissionServiceImpl) ListGrantedForRoleName(ctx context.Context, roleName string) ([]Permission, error) {
	r, err := s.RoleRepo.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []Permission{}, nil
		}
		return nil, apperr.Storage(err)
	}

	permissions, err := s.PermissionRepo.List(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	grants, err := s.GrantRepo.FindByRoleID(ctx, r.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	granted := make(map[primitive.ObjectID]bool, len(grants))
	for _, g := range grants {
		granted[g.PermissionID] = g.Granted
	}

	result := []Permission{}
	for _, p := range permissions {
		if granted[p.ID] {
			result = append(result, p)
		}
	}
	return result, nil
}

func groupByModule(permissions []Permission, granted map[primitive.ObjectID]bool) []ModulePermissions {
	var grouped []ModulePermissions
	index := make(map[string]int)

	for _, p := range permissions {
		i, ok := index[p.Module]
		if !ok {
			i = len(grouped)
			index[p.Module] = i
			grouped = append(grouped, ModulePermissions{Module: p.Module})
		}
		grouped[i].Permissions = append(grouped[i].Permissions, PermissionState{
			ID:          p.ID,
			Action:      p.Action,
			DisplayName: p.DisplayName,
			Description: p.Description,
			Granted:     granted[p.ID],
		})
	}
	return grouped
}
