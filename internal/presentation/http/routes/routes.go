package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/config"
	domainRepo "github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/handler"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/middleware"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Item      *handler.ItemHandler
	Receipt   *handler.ReceiptHandler
	Plan      *handler.PlanHandler
	User      *handler.UserHandler
	Admin     *handler.AdminHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Sessions        middleware.SessionChecker
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Uploaded receipt files are served from local storage.
	router.Static("/uploads", deps.Cfg.Storage.Path)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Sessions))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Account routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/me", h.User.Me)
	protected.PUT("/me", h.User.UpdateMe)
	protected.GET("/me/profile", h.User.GetProfile)
	protected.PUT("/me/profile", h.User.UpsertProfile)

	// Dashboard
	protected.GET("/dashboard", middleware.RequirePermission("view-dashboard"), h.Dashboard.Get)

	// Catalog is readable by every signed-in user
	protected.GET("/catalog", h.Item.Catalog)

	// Customer-facing item and receipt routes
	protected.GET("/items/mine", h.Item.ListMine)
	protected.GET("/items/:id", h.Item.Get)
	protected.POST("/receipts", middleware.RequirePermission("upload-receipts"), idempotent, h.Receipt.Upload)
	protected.GET("/receipts/mine", h.Receipt.ListMine)

	// Plan routes
	protected.GET("/plans/active", h.Plan.GetActive)
	protected.POST("/plans/payments", idempotent, h.Plan.CreatePayment)
	protected.GET("/plans/payments", h.Plan.ListPayments)

	registerAdminRoutes(protected, h, idempotent)
	registerSuperAdminRoutes(protected, h)
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	admin := protected.Group("")
	admin.Use(middleware.RequireRole("admin", "super-admin"))
	{
		admin.POST("/items", middleware.RequirePermission("manage-items"), h.Item.Create)
		admin.GET("/items", middleware.RequirePermission("manage-items"), h.Item.List)
		admin.DELETE("/items/:id", middleware.RequirePermission("manage-items"), h.Item.Delete)

		admin.GET("/receipts/pending", middleware.RequirePermission("manage-receipts"), h.Receipt.ListPending)
		admin.POST("/receipts/:id/approve", middleware.RequirePermission("manage-receipts"), h.Receipt.Approve)
		admin.POST("/receipts/:id/reject", middleware.RequirePermission("manage-receipts"), h.Receipt.Reject)

		admin.POST("/plans", middleware.RequirePermission("manage-plans"), idempotent, h.Plan.Create)

		admin.GET("/users", middleware.RequirePermission("manage-users"), h.Admin.ListUsers)
		admin.GET("/users/with-items", middleware.RequirePermission("manage-users"), h.Admin.ListUsersWithItems)
		admin.POST("/users", middleware.RequirePermission("manage-users"), h.User.CreateCustomer)

		admin.GET("/audit-logs", middleware.RequirePermission("view-audit-logs"), h.Admin.ListAuditLogs)
	}
}

func registerSuperAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	super := protected.Group("")
	super.Use(middleware.RequireRole("super-admin"))
	{
		super.POST("/admins", h.User.CreateAdmin)
		super.DELETE("/users/:id", h.Admin.DeleteUser)
		super.GET("/login-stats", h.Admin.LoginStats)

		override := super.Group("")
		override.Use(middleware.RequirePermission("override-billing"))
		{
			override.POST("/users/:id/next-due-date/preview", h.Admin.PreviewNextDueDate)
			override.PUT("/users/:id/next-due-date", h.Admin.UpdateNextDueDate)
			override.PUT("/items/:id/created-date", h.Admin.OverrideItemCreatedAt)
			override.PUT("/receipts/:id/uploaded-date", h.Admin.OverrideReceiptUploadedAt)
		}
	}
}
