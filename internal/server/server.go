// Package server contains the HTTP transport for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"vinyls/internal/cache"
	"vinyls/internal/config"
	"vinyls/internal/database"
	"vinyls/internal/middleware"
	"vinyls/internal/models"
	"vinyls/internal/repository"
	"vinyls/internal/service"
	"vinyls/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	media          storage.MediaStore

	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	vinylRepo   repository.VinylRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository

	userService   *service.UserService
	followService *service.FollowService
	vinylService  *service.VinylService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// promMiddleware registers the HTTP metrics collectors once per process.
func promMiddleware() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New("vinyls-api")
	})
	return prom
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: promMiddleware(),
		userRepo:       repository.NewUserRepository(db),
		followRepo:     repository.NewFollowRepository(db),
		vinylRepo:      repository.NewVinylRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
	}
	server.userService = service.NewUserService(server.userRepo, server.followRepo)
	server.followService = service.NewFollowService(server.followRepo, server.userRepo)
	server.vinylService = service.NewVinylService(
		server.vinylRepo, server.likeRepo, server.commentRepo, server.userRepo, server.followRepo)

	return server
}

// SetMediaStore wires the object store used by the image upload endpoints.
// Without a media store those endpoints respond 503.
func (s *Server) SetMediaStore(media storage.MediaStore) {
	s.media = media
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public routes
	api.Post("/users", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	api.Post("/auth", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "auth"), s.Authenticate)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired(s.config))

	// User routes. Specific /users/:id/:resource and static routes go before
	// the generic /users/:id route.
	users := protected.Group("/users")
	users.Get("/", s.GetUsers)
	users.Get("/search/:query?", s.SearchUsers)
	users.Get("/user/:id", s.GetGalleryUsers)
	users.Get("/:id/follows", s.GetFollows)
	users.Patch("/:id/follows", s.AddFollow)
	users.Delete("/:id/follows", s.RemoveFollow)
	users.Get("/:id/followsList", s.GetFollowsList)
	users.Get("/:id/followersList", s.GetFollowersList)
	users.Get("/:id/followeesVinyls", s.GetFolloweesVinyls)
	users.Patch("/:id/connected", s.SetConnected)
	users.Patch("/:id/disconnected", s.SetDisconnected)
	users.Patch("/:id/disconnected/close", s.SetDisconnected)
	users.Post("/:id/profilePicture", s.UploadProfilePicture)
	users.Patch("/:id", s.UpdateUser)
	users.Get("/:id", s.GetUser)

	// Vinyl routes
	vinyls := protected.Group("/vinyls")
	vinyls.Get("/", s.GetVinyls)
	vinyls.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_vinyl"), s.CreateVinyl)
	vinyls.Get("/search/:query?", s.SearchVinyls)
	vinyls.Get("/user/:id/favourites", s.GetFavouriteVinyls)
	vinyls.Get("/user/:id", s.GetUserVinyls)
	vinyls.Get("/:id/likes", s.GetLikes)
	vinyls.Patch("/:id/likes", s.AddLike)
	vinyls.Delete("/:id/likes", s.RemoveLike)
	vinyls.Get("/:id/comments", s.GetComments)
	vinyls.Patch("/:id/comments", middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.AddComment)
	vinyls.Patch("/:id/edit", s.EditVinyl)
	vinyls.Post("/:id/image", s.UploadVinylPicture)
	vinyls.Delete("/:id", s.DeleteVinyl)
	vinyls.Get("/:id", s.GetVinyl)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional; the app degrades to cache-off mode without it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Vinyls API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
