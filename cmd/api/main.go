package main

import (
	"context"
	"fmt"
	common_api "go-recruit/internal/common/api"
	"go-recruit/internal/apperr"
	"go-recruit/internal/config"
	"go-recruit/internal/database"
	"go-recruit/internal/email"
	"go-recruit/internal/features/activity"
	"go-recruit/internal/features/auth"
	"go-recruit/internal/features/cadet"
	"go-recruit/internal/features/export"
	"go-recruit/internal/features/institute"
	"go-recruit/internal/features/permission"
	"go-recruit/internal/features/role"
	"go-recruit/internal/features/scheduler"
	"go-recruit/internal/features/screening"
	"go-recruit/internal/features/submission"
	"go-recruit/internal/features/system"
	"go-recruit/internal/features/user"
	"go-recruit/internal/logger"
	"go-recruit/internal/middleware"
	"go-recruit/pkg/utils"
	"log"
	"time"

	_ "go-recruit/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             25 * 1024 * 1024,
		ErrorHandler:          apperr.ErrorHandler(cfg.IsProduction()),
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	roleRepo role.RoleRepository,
	permRepo permission.PermissionRepository,
	grantRepo permission.GrantRepository,
	userRepo user.UserRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := roleRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure role indexes: %v", err)
				}
				if err := permRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure permission indexes: %v", err)
				}
				if err := grantRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure grant indexes: %v", err)
				}
				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure user indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

// @title           Recruitment Management API
// @version         1.0
// @description     Backend for maritime cadet recruitment: institutes, roster submissions, imports and role based access.

// @host            localhost:8000
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Shared infrastructure
			email.NewSender,
			activity.NewHub,

			// Initialize Repository
			role.NewRoleRepository,
			permission.NewPermissionRepository,
			permission.NewGrantRepository,
			user.NewUserRepository,
			institute.NewInstituteRepository,
			cadet.NewCadetRepository,
			submission.NewSubmissionRepository,
			screening.NewRuleRepository,
			activity.NewActivityRepository,

			// Initialize Service
			permission.NewPermissionService,
			auth.NewAuthService,
			user.NewUserService,
			institute.NewInstituteService,
			cadet.NewCadetService,
			screening.NewScreeningService,
			submission.NewSubmissionService,
			export.NewExportService,
			activity.NewActivityService,
			scheduler.NewScheduler,

			// Interface Adapters to satisfy Fx
			func(s permission.PermissionService) middleware.AuthorizationEngine { return s },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			institute.NewInstituteController,
			cadet.NewCadetController,
			submission.NewSubmissionController,
			screening.NewScreeningController,
			export.NewExportController,
			activity.NewActivityController,
			permission.NewPermissionController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(institute.NewInstituteApi),
			AsRoute(cadet.NewCadetApi),
			AsRoute(submission.NewSubmissionApi),
			AsRoute(screening.NewScreeningApi),
			AsRoute(export.NewExportApi),
			AsRoute(activity.NewActivityApi),
			AsRoute(permission.NewPermissionApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, sched *scheduler.Scheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return sched.Start()
					},
					OnStop: func(ctx context.Context) error {
						sched.Stop()
						return nil
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
