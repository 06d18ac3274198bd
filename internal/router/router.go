package router

import (
	"context"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/handlers"
	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/mailer"
	"github.com/anonto42/project-showcase/backend/internal/middleware"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"github.com/anonto42/project-showcase/backend/internal/repositories/memory"
	"github.com/anonto42/project-showcase/backend/internal/services"
	"github.com/anonto42/project-showcase/backend/internal/ws"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Stores bundles the repositories the services run on
type Stores struct {
	Users         repositories.UserRepository
	Projects      repositories.ProjectRepository
	Comments      repositories.CommentRepository
	Notifications repositories.NotificationRepository
}

// PersistentStores wires PostgreSQL for the user directory and MongoDB for
// everything else, migrating and indexing on the way.
func PersistentStores(ctx context.Context, pgdb *gorm.DB, db *mongo.Database) (*Stores, error) {
	users := repositories.NewPostgresUserRepository(pgdb)
	if err := users.AutoMigrate(); err != nil {
		return nil, errors.Wrap(err, "failed to auto migrate users")
	}

	comments := repositories.NewMongoCommentRepository(db)
	if err := comments.EnsureIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to index comments")
	}
	notifications := repositories.NewMongoNotificationRepository(db)
	if err := notifications.EnsureIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to index notifications")
	}

	return &Stores{
		Users:         users,
		Projects:      repositories.NewMongoProjectRepository(db),
		Comments:      comments,
		Notifications: notifications,
	}, nil
}

// MemoryStores keeps everything in process, optionally seeded from a JSON fixture.
func MemoryStores(seedPath string) (*Stores, error) {
	users := memory.NewUserRepository()
	projects := memory.NewProjectRepository()
	if seedPath != "" {
		if err := memory.LoadSeed(seedPath, users, projects); err != nil {
			return nil, err
		}
	}
	return &Stores{
		Users:         users,
		Projects:      projects,
		Comments:      memory.NewCommentRepository(),
		Notifications: memory.NewNotificationRepository(),
	}, nil
}

// Options carries the collaborators and tunables of the HTTP surface
type Options struct {
	JWTSecret string
	// Firebase enables Firebase ID tokens next to local JWTs. Leave nil to disable.
	Firebase middleware.IDTokenVerifier
	// Mailer mirrors notifications by e-mail. Leave nil to disable.
	Mailer            mailer.Mailer
	FanOutConcurrency int
	RequestTimeout    time.Duration
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log logger.Logger) {
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			line := v.Method + " " + v.URI
			fields := map[string]interface{}{"status": v.Status, "latency": v.Latency.String(), "request_id": v.RequestID}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
			}
			log.Info(line, fields)
			return nil
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Debug("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// It returns the realtime hub notifications are pushed through.
func SetupRoutes(e *echo.Echo, stores *Stores, opts Options, log logger.Logger) *ws.Hub {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "Project Showcase API"})
	})

	// --- Services ---
	hub := ws.NewHub(log)
	commentService := services.NewCommentService(stores.Comments, stores.Projects, stores.Users)
	notificationService := services.NewNotificationService(stores.Notifications, stores.Users, hub, opts.Mailer, log)
	notifier := services.NewNotifier(notificationService, stores.Projects, stores.Users, opts.FanOutConcurrency, log)

	auth := middleware.AuthConfig{
		Secret:   opts.JWTSecret,
		Firebase: opts.Firebase,
		Users:    stores.Users,
	}

	// Realtime channel authenticates through the query string
	e.GET("/api/v1/ws/notifications", ws.Handler(hub, auth.UserID))

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(auth))
	if opts.RequestTimeout > 0 {
		api.Use(eMiddleware.ContextTimeoutWithConfig(eMiddleware.ContextTimeoutConfig{
			Timeout: opts.RequestTimeout,
		}))
	}

	handlers.NewCommentHandler(commentService, notifier, log).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService, notifier).RegisterNotificationRoutes(api)
	handlers.NewProjectHandler(stores.Projects, notifier, log).RegisterProjectRoutes(api)

	log.Debug("All routes configured.")
	return hub
}
