package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"classroom/internal/auth"
	"classroom/internal/config"
	"classroom/internal/database"
	"classroom/internal/handler"
	"classroom/internal/media"
	"classroom/internal/middleware"
	"classroom/internal/repository"
	"classroom/internal/response"
	"classroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

func Init(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	ctx := context.Background()

	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := database.Migrate(sqlDB, logger); err != nil {
		return nil, err
	}

	s3Client, err := media.NewS3Client(ctx, media.ClientConfig{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	uploader := media.NewS3Uploader(s3Client, cfg.S3Bucket, cfg.MediaKeyPrefix, mediaBaseURL(cfg))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	// Initialize services
	users := service.NewUserService(userRepo, uploader, logger)
	assignments := service.NewAssignmentService(assignmentRepo, attachmentRepo, uploader, logger)

	if cfg.AdminEmail != "" {
		created, err := users.EnsureUser(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap admin user: %w", err)
		}
		if created {
			logger.Info("admin user created", zap.String("email", cfg.AdminEmail))
		}
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Initialize handlers
	userHandler := handler.NewUserHandler(users)
	profileHandler := handler.NewProfileHandler(users)
	authHandler := handler.NewAuthHandler(users, tokens)
	assignmentHandler := handler.NewAssignmentHandler(assignments)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		gin.Recovery(),
		middleware.Metrics(),
	)

	// Public routes
	r.POST("/login", authHandler.Login)
	r.GET("/health", func(c *gin.Context) {
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		response.OK(c, gin.H{"database": "up"}, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		// User routes
		authorized.GET("/users", userHandler.List)
		authorized.GET("/users/:id", userHandler.Show)
		authorized.POST("/users", userHandler.Store)
		authorized.PUT("/users/:id", userHandler.Update)
		authorized.PATCH("/users/:id", userHandler.Update)
		authorized.DELETE("/users/:id", userHandler.Destroy)

		// Profile routes
		authorized.PUT("/profile", profileHandler.Update)
		authorized.PUT("/profile/password", profileHandler.ChangePassword)

		// Assignment routes
		authorized.POST("/assignments", assignmentHandler.Create)
		authorized.GET("/assignments/:id", assignmentHandler.Show)
		authorized.POST("/assignments/:id/attachments", assignmentHandler.Submit)
		authorized.GET("/assignments/:id/attachments", assignmentHandler.Attachments)
		authorized.DELETE("/attachments/:id", assignmentHandler.DeleteAttachment)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Logger: logger,
	}, nil
}

// mediaBaseURL is the public prefix of uploaded objects. Without an explicit
// MEDIA_PUBLIC_URL the bucket is assumed to be served path-style by the S3 endpoint.
func mediaBaseURL(cfg *config.Config) string {
	if cfg.MediaPublicURL != "" {
		return cfg.MediaPublicURL
	}
	return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to listen: %w", err)
	case <-quit:
	}
	s.Logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	s.Logger.Info("server exited properly")
	return nil
}
