package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/config"
	"github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/handlers"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httperr"
	"github.com/BruksfildServices01/bookmylook-auth/internal/metrics"
	"github.com/BruksfildServices01/bookmylook-auth/internal/middleware"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
	"github.com/BruksfildServices01/bookmylook-auth/internal/notify"
	"github.com/BruksfildServices01/bookmylook-auth/internal/security"
	ucAuth "github.com/BruksfildServices01/bookmylook-auth/internal/usecase/auth"
)

// Dependencies are the process singletons the router is built from.
type Dependencies struct {
	Config   *config.Config
	Repo     account.Repository
	Hasher   *security.Hasher
	Tokens   *security.TokenIssuer
	Audit    *audit.Dispatcher
	Notifier notify.Dispatcher
	Metrics  *metrics.Metrics
	Log      *zap.Logger

	AuditLogs handlers.AuditLister

	// Limiter guards /api/auth. Nil disables rate limiting.
	Limiter middleware.Limiter
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {
	cfg := d.Config
	production := cfg.IsProduction()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Log, d.Metrics),
		middleware.Recovery(d.Log, production),
		middleware.CORSMiddleware(cfg.FrontendURL, production),
		middleware.ErrorHandler(d.Log, production),
	)

	r.NoRoute(func(c *gin.Context) {
		httperr.Write(c, httperr.NotFound("Route not found"), production)
	})

	// ======================================================
	// USE CASES
	// ======================================================
	deps := ucAuth.Deps{
		Repo:        d.Repo,
		Hasher:      d.Hasher,
		Tokens:      d.Tokens,
		Audit:       d.Audit,
		Notifier:    d.Notifier,
		Metrics:     d.Metrics,
		Log:         d.Log.Named("auth"),
		FrontendURL: cfg.FrontendURL,
	}

	registerUC := ucAuth.NewRegister(deps)
	loginUC := ucAuth.NewLogin(deps)
	refreshUC := ucAuth.NewRefreshTokens(deps)
	requestResetUC := ucAuth.NewRequestPasswordReset(deps)
	resetPasswordUC := ucAuth.NewResetPassword(deps)
	getProfileUC := ucAuth.NewGetProfile(deps)
	getUserUC := ucAuth.NewGetUser(deps)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		registerUC,
		loginUC,
		refreshUC,
		requestResetUC,
		resetPasswordUC,
	)
	meHandler := handlers.NewMeHandler(getProfileUC)
	adminHandler := handlers.NewAdminHandler(getUserUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	requireAuth := middleware.AuthMiddleware(d.Tokens, production)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		if d.Limiter != nil {
			authAPI.Use(middleware.RateLimit(d.Limiter, cfg.RateLimitMax, d.Log))
		}
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
			authAPI.POST("/refresh", authHandler.Refresh)
			authAPI.POST("/logout", authHandler.Logout)
			authAPI.POST("/request-password-reset", authHandler.RequestPasswordReset)
			authAPI.POST("/reset-password", authHandler.ResetPassword)

			authAPI.GET("/me", requireAuth, meHandler.GetMe)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(
			requireAuth,
			middleware.RequireRoles(production, models.RoleAdmin),
			middleware.RequireActiveRoles(d.Repo, production, models.RoleAdmin),
		)
		{
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
