package main

import (
	"context"
	"errors"
	"log"
	"time"

	"go-recruit/internal/config"
	"go-recruit/internal/database"
	"go-recruit/internal/features/permission"
	"go-recruit/internal/features/role"
	"go-recruit/internal/features/user"
	"go-recruit/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type catalogEntry struct {
	module      string
	action      string
	displayName string
}

// The permission catalog. Every checkable module/action pair lives here;
// absence of a grant row always means deny.
var catalog = []catalogEntry{
	{"dashboard", "view", "View dashboard"},

	{"institutes", "view", "View institutes"},
	{"institutes", "create", "Register institutes"},
	{"institutes", "edit", "Edit institutes"},
	{"institutes", "delete", "Delete institutes"},

	{"submissions", "view", "View submissions"},
	{"submissions", "request", "Send submission requests"},
	{"submissions", "import", "Import submissions"},

	{"cadets", "view", "View cadets"},
	{"cadets", "create", "Create cadets"},
	{"cadets", "export", "Export cadets to the warehouse"},

	{"users", "view", "View users"},
	{"users", "create", "Create users"},
	{"users", "edit", "Edit users"},
	{"users", "delete", "Delete users"},

	{"role-permissions", "manage", "Manage roles and permissions"},

	{"activity-logs", "view", "View activity logs"},

	{"screening", "view", "View screening rules"},
	{"screening", "manage", "Manage screening rules"},
}

var systemRoles = []role.Role{
	{Name: "SuperAdmin", DisplayName: "Super Administrator", Description: "Full access, bypasses permission checks", IsSystem: true},
	{Name: "Admin", DisplayName: "Administrator", Description: "Day to day administration", IsSystem: true},
	{Name: "Recruiter", DisplayName: "Recruiter", Description: "Runs the recruitment pipeline", IsSystem: true},
	{Name: "Viewer", DisplayName: "Viewer", Description: "Read only access", IsSystem: true},
}

// defaultGrants maps role name to the module/action pairs granted at seed
// time. SuperAdmin is absent on purpose: it never consults grants.
var defaultGrants = map[string][][2]string{
	"Admin": {
		{"dashboard", "view"},
		{"institutes", "view"}, {"institutes", "create"}, {"institutes", "edit"}, {"institutes", "delete"},
		{"submissions", "view"}, {"submissions", "request"}, {"submissions", "import"},
		{"cadets", "view"}, {"cadets", "create"}, {"cadets", "export"},
		{"users", "view"}, {"users", "create"}, {"users", "edit"}, {"users", "delete"},
		{"activity-logs", "view"},
		{"screening", "view"}, {"screening", "manage"},
	},
	"Recruiter": {
		{"dashboard", "view"},
		{"institutes", "view"},
		{"submissions", "view"}, {"submissions", "request"}, {"submissions", "import"},
		{"cadets", "view"}, {"cadets", "create"},
		{"screening", "view"},
	},
	"Viewer": {
		{"dashboard", "view"},
		{"institutes", "view"},
		{"submissions", "view"},
		{"cadets", "view"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)

	mongodb := &database.MongodbDB{DB: client.Database(cfg.DBName)}

	roleRepo := role.NewRoleRepository(mongodb)
	permRepo := permission.NewPermissionRepository(mongodb)
	grantRepo := permission.NewGrantRepository(mongodb)
	userRepo := user.NewUserRepository(mongodb)

	if err := roleRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("role indexes: %v", err)
	}
	if err := permRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("permission indexes: %v", err)
	}
	if err := grantRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("grant indexes: %v", err)
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("user indexes: %v", err)
	}

	seedCatalog(ctx, permRepo)
	roles := seedRoles(ctx, roleRepo)
	seedGrants(ctx, permRepo, grantRepo, roles)
	seedSuperAdmin(ctx, userRepo)

	log.Println("Seeding complete")
}

func seedCatalog(ctx context.Context, repo permission.PermissionRepository) {
	for _, entry := range catalog {
		existing, err := repo.FindByModuleAction(ctx, entry.module, entry.action)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			log.Fatalf("permission lookup %s:%s: %v", entry.module, entry.action, err)
		}
		if existing != nil {
			continue
		}
		p := &permission.Permission{
			Module:      entry.module,
			Action:      entry.action,
			DisplayName: entry.displayName,
		}
		if err := repo.Create(ctx, p); err != nil {
			log.Fatalf("permission create %s:%s: %v", entry.module, entry.action, err)
		}
		log.Printf("created permission %s:%s", entry.module, entry.action)
	}
}

func seedRoles(ctx context.Context, repo role.RoleRepository) map[string]*role.Role {
	out := make(map[string]*role.Role, len(systemRoles))
	for _, r := range systemRoles {
		existing, err := repo.FindByName(ctx, r.Name)
		if err == nil {
			out[r.Name] = existing
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Fatalf("role lookup %s: %v", r.Name, err)
		}

		created := r
		created.ID = primitive.NewObjectID()
		now := time.Now()
		created.CreatedAt = now
		created.UpdatedAt = now
		if err := repo.Create(ctx, &created); err != nil {
			log.Fatalf("role create %s: %v", r.Name, err)
		}
		log.Printf("created role %s", r.Name)
		out[r.Name] = &created
	}
	return out
}

func seedGrants(ctx context.Context, permRepo permission.PermissionRepository, grantRepo permission.GrantRepository, roles map[string]*role.Role) {
	for roleName, pairs := range defaultGrants {
		r, ok := roles[roleName]
		if !ok {
			log.Fatalf("grant seeding: unknown role %s", roleName)
		}
		for _, pair := range pairs {
			p, err := permRepo.FindByModuleAction(ctx, pair[0], pair[1])
			if err != nil {
				log.Fatalf("grant seeding: permission %s:%s: %v", pair[0], pair[1], err)
			}
			if err := grantRepo.Upsert(ctx, r.ID, p.ID, true); err != nil {
				log.Fatalf("grant seeding: %s -> %s:%s: %v", roleName, pair[0], pair[1], err)
			}
		}
		log.Printf("granted %d permission(s) to %s", len(pairs), roleName)
	}
}

func seedSuperAdmin(ctx context.Context, repo user.UserRepository) {
	const adminEmail = "admin@example.com"

	existing, err := repo.FindByEmail(ctx, adminEmail)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		log.Fatalf("admin lookup: %v", err)
	}
	if existing != nil {
		return
	}

	hash, err := utils.HashPassword("ChangeMe123!")
	if err != nil {
		log.Fatalf("admin password hash: %v", err)
	}

	now := time.Now()
	admin := &user.User{
		Email:     adminEmail,
		Password:  hash,
		FirstName: "Super",
		LastName:  "Admin",
		Role:      "SuperAdmin",
		Status:    user.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		log.Fatalf("admin create: %v", err)
	}
	log.Printf("created initial super admin %s (change the password immediately)", adminEmail)
}
