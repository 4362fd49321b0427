package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/application/service"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/config"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/infrastructure/database"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/infrastructure/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/infrastructure/storage"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/handler"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/routes"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/oauth"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Drop the stale unique index left behind by the old receipt schema
	if err := database.CleanupLegacyReceiptIndex(db); err != nil {
		log.Printf("Warning: Failed to clean up legacy receipt index: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	itemRepo := repository.NewFinancedItemRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	planRepo := repository.NewInstallmentPlanRepository(db)
	paymentRepo := repository.NewPlanPaymentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize local file storage for receipt uploads
	fileStore, err := storage.NewLocalFileStore(cfg.Storage.Path, "/uploads")
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, sessionRepo, jwtManager, googleOAuthService)
	dashboardService := service.NewDashboardService(userRepo, itemRepo, receiptRepo, paymentRepo)
	itemService := service.NewItemService(itemRepo, userRepo)
	receiptService := service.NewReceiptService(receiptRepo, itemRepo, auditRepo, fileStore)
	planService := service.NewPlanService(planRepo, paymentRepo, itemRepo, receiptRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)
	adminService := service.NewAdminService(userRepo, itemRepo, receiptRepo, sessionRepo, auditRepo, dashboardService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Item:      handler.NewItemHandler(itemService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Plan:      handler.NewPlanHandler(planService),
		User:      handler.NewUserHandler(userService, profileService),
		Admin:     handler.NewAdminHandler(adminService),
	}

	// Periodic cleanup of expired sessions and idempotency keys
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx := context.Background()
			if err := sessionRepo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: Failed to delete expired sessions: %v", err)
			}
			if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: Failed to delete expired idempotency keys: %v", err)
			}
		}
	}()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Sessions:        authService,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
