package permission

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-recruit/internal/apperr"
	common_models "go-recruit/internal/common/models"
	"go-recruit/internal/features/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeRoleRepo struct {
	roles []*role.Role
	err   error
}

func (f *fakeRoleRepo) Create(ctx context.Context, r *role.Role) error {
	f.roles = append(f.roles, r)
	return nil
}

func (f *fakeRoleRepo) FindByID(ctx context.Context, id string) (*role.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.roles {
		if r.ID.Hex() == id {
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoleRepo) FindByName(ctx context.Context, name string) (*role.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.roles {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoleRepo) List(ctx context.Context) ([]role.Role, error) {
	out := make([]role.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoleRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakePermissionRepo struct {
	perms []Permission
	err   error
}

func (f *fakePermissionRepo) Create(ctx context.Context, p *Permission) error {
	f.perms = append(f.perms, *p)
	return nil
}

func (f *fakePermissionRepo) FindByID(ctx context.Context, id string) (*Permission, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.perms {
		if f.perms[i].ID.Hex() == id {
			return &f.perms[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakePermissionRepo) FindByModuleAction(ctx context.Context, module, action string) (*Permission, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.perms {
		if f.perms[i].Module == module && f.perms[i].Action == action {
			return &f.perms[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakePermissionRepo) List(ctx context.Context) ([]Permission, error) {
	return f.perms, nil
}

func (f *fakePermissionRepo) EnsureIndexes(ctx context.Context) error { return nil }

type grantKey struct {
	roleID primitive.ObjectID
	permID primitive.ObjectID
}

type fakeGrantRepo struct {
	grants map[grantKey]*Grant
	err    error
}

func newFakeGrantRepo() *fakeGrantRepo {
	return &fakeGrantRepo{grants: make(map[grantKey]*Grant)}
}

func (f *fakeGrantRepo) Upsert(ctx context.Context, roleID, permissionID primitive.ObjectID, granted bool) error {
	if f.err != nil {
		return f.err
	}
	key := grantKey{roleID, permissionID}
	if g, ok := f.grants[key]; ok {
		g.Granted = granted
		return nil
	}
	f.grants[key] = &Grant{
		ID:           primitive.NewObjectID(),
		RoleID:       roleID,
		PermissionID: permissionID,
		Granted:      granted,
	}
	return nil
}

func (f *fakeGrantRepo) Find(ctx context.Context, roleID, permissionID primitive.ObjectID) (*Grant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if g, ok := f.grants[grantKey{roleID, permissionID}]; ok {
		return g, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeGrantRepo) FindByRoleID(ctx context.Context, roleID primitive.ObjectID) ([]Grant, error) {
	var out []Grant
	for key, g := range f.grants {
		if key.roleID == roleID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGrantRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fixture struct {
	service   PermissionService
	roleRepo  *fakeRoleRepo
	permRepo  *fakePermissionRepo
	grantRepo *fakeGrantRepo
	recruiter *role.Role
	viewPerm  Permission
}

func newFixture() *fixture {
	recruiter := &role.Role{ID: primitive.NewObjectID(), Name: "Recruiter"}
	viewPerm := Permission{ID: primitive.NewObjectID(), Module: "cadets", Action: "view"}

	roleRepo := &fakeRoleRepo{roles: []*role.Role{recruiter}}
	permRepo := &fakePermissionRepo{perms: []Permission{viewPerm}}
	grantRepo := newFakeGrantRepo()

	return &fixture{
		service:   NewPermissionService(permRepo, grantRepo, roleRepo, zap.NewNop()),
		roleRepo:  roleRepo,
		permRepo:  permRepo,
		grantRepo: grantRepo,
		recruiter: recruiter,
		viewPerm:  viewPerm,
	}
}

func TestHasPermissionSuperAdminBypass(t *testing.T) {
	fix := newFixture()

	// No grants exist at all; the short-circuit must not care.
	tests := []string{"SuperAdmin", "superadmin", "SUPERADMIN", "sUpErAdMiN"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			ok, err := fix.service.HasPermission(context.Background(), name, "cadets", "view")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok {
				t.Errorf("expected %q to be allowed without grants", name)
			}
		})
	}
}

func TestHasPermissionDefaultDeny(t *testing.T) {
	fix := newFixture()

	tests := []struct {
		name   string
		role   string
		module string
		action string
	}{
		{"no grant row", "Recruiter", "cadets", "view"},
		{"unknown role", "Ghost", "cadets", "view"},
		{"unknown permission", "Recruiter", "cadets", "delete"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := fix.service.HasPermission(context.Background(), tc.role, tc.module, tc.action)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok {
				t.Error("expected deny")
			}
		})
	}
}

func TestSetGrantThenCheck(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	if err := fix.service.SetGrant(ctx, fix.recruiter.ID.Hex(), fix.viewPerm.ID.Hex(), true); err != nil {
		t.Fatalf("SetGrant: %v", err)
	}
	ok, err := fix.service.HasPermission(ctx, "Recruiter", "cadets", "view")
	if err != nil {
		t.Fatalf("HasPermission: %v", err)
	}
	if !ok {
		t.Fatal("expected allow after grant")
	}

	// Case-insensitive role lookup must reach the same grant.
	ok, err = fix.service.HasPermission(ctx, "recruiter", "cadets", "view")
	if err != nil {
		t.Fatalf("HasPermission lowercase: %v", err)
	}
	if !ok {
		t.Fatal("expected allow for lowercase role name")
	}

	// Revocation takes effect immediately.
	if err := fix.service.SetGrant(ctx, fix.recruiter.ID.Hex(), fix.viewPerm.ID.Hex(), false); err != nil {
		t.Fatalf("SetGrant revoke: %v", err)
	}
	ok, err = fix.service.HasPermission(ctx, "Recruiter", "cadets", "view")
	if err != nil {
		t.Fatalf("HasPermission after revoke: %v", err)
	}
	if ok {
		t.Fatal("expected deny after revoke")
	}
}

func TestSetGrantIdempotent(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := fix.service.SetGrant(ctx, fix.recruiter.ID.Hex(), fix.viewPerm.ID.Hex(), true); err != nil {
			t.Fatalf("SetGrant round %d: %v", i, err)
		}
	}
	if len(fix.grantRepo.grants) != 1 {
		t.Fatalf("expected a single grant row, got %d", len(fix.grantRepo.grants))
	}
}

func TestHasAnyPermission(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	editPerm := Permission{ID: primitive.NewObjectID(), Module: "cadets", Action: "edit"}
	fix.permRepo.perms = append(fix.permRepo.perms, editPerm)

	if err := fix.service.SetGrant(ctx, fix.recruiter.ID.Hex(), editPerm.ID.Hex(), true); err != nil {
		t.Fatalf("SetGrant: %v", err)
	}

	pairs := []common_models.PermissionRef{
		{Module: "cadets", Action: "view"},
		{Module: "cadets", Action: "edit"},
	}
	ok, err := fix.service.HasAnyPermission(ctx, "Recruiter", pairs)
	if err != nil {
		t.Fatalf("HasAnyPermission: %v", err)
	}
	if !ok {
		t.Fatal("expected allow when one of the pair is granted")
	}

	ok, err = fix.service.HasAnyPermission(ctx, "Recruiter", []common_models.PermissionRef{
		{Module: "users", Action: "delete"},
	})
	if err != nil {
		t.Fatalf("HasAnyPermission deny case: %v", err)
	}
	if ok {
		t.Fatal("expected deny when nothing is granted")
	}
}

func TestHasPermissionStorageFailureDenies(t *testing.T) {
	fix := newFixture()
	fix.grantRepo.err = errors.New("connection reset")

	ok, err := fix.service.HasPermission(context.Background(), "Recruiter", "cadets", "view")
	if ok {
		t.Fatal("storage failure must never grant access")
	}
	if err == nil {
		t.Fatal("expected an error distinguishing failure from deny")
	}
	if !apperr.IsKind(err, apperr.KindStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}

	// The super-admin path never touches storage.
	ok, err = fix.service.HasPermission(context.Background(), "SuperAdmin", "cadets", "view")
	if err != nil {
		t.Fatalf("super admin with broken storage: %v", err)
	}
	if !ok {
		t.Fatal("expected super admin allow despite broken storage")
	}
}

func TestListGrantedForRoleName(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	editPerm := Permission{ID: primitive.NewObjectID(), Module: "cadets", Action: "edit"}
	fix.permRepo.perms = append(fix.permRepo.perms, editPerm)

	if err := fix.service.SetGrant(ctx, fix.recruiter.ID.Hex(), fix.viewPerm.ID.Hex(), true); err != nil {
		t.Fatalf("SetGrant: %v", err)
	}
	if err := fix.service.SetGrant(ctx, fix.recruiter.ID.Hex(), editPerm.ID.Hex(), false); err != nil {
		t.Fatalf("SetGrant revoke: %v", err)
	}

	granted, err := fix.service.ListGrantedForRoleName(ctx, "recruiter")
	if err != nil {
		t.Fatalf("ListGrantedForRoleName: %v", err)
	}
	if len(granted) != 1 {
		t.Fatalf("expected 1 granted permission, got %d", len(granted))
	}
	if granted[0].Action != "view" {
		t.Errorf("expected view, got %s", granted[0].Action)
	}

	// Unknown role reads as an empty grant set, not an error.
	granted, err = fix.service.ListGrantedForRoleName(ctx, "Ghost")
	if err != nil {
		t.Fatalf("ListGrantedForRoleName unknown role: %v", err)
	}
	if len(granted) != 0 {
		t.Fatalf("expected no grants for unknown role, got %d", len(granted))
	}
}
