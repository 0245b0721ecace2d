package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"celebrai-backend/config"
	"celebrai-backend/internal/delivery/http/middleware"
	"celebrai-backend/internal/delivery/http/response"
	"celebrai-backend/internal/domain"
	"celebrai-backend/internal/usecase"
	"celebrai-backend/pkg/auth"
	"celebrai-backend/pkg/logger"
)

type RouterDeps struct {
	NotificationUC domain.NotificationUsecase
	ContractUC     domain.ContractUsecase
	DashboardUC    domain.DashboardUsecase
	HealthUC       usecase.HealthUsecase
	Verifier       *auth.Verifier
	RateLimiter    *middleware.RateLimiter
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()
	// X-Forwarded-For is only honoured from these hops; rate limits key on ClientIP
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Log.Warn("Invalid TRUSTED_PROXIES, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.OtelServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Called from the public signing page with the project anon key, hence
	// wildcard CORS. It sends email, so the limiter fails closed.
	functions := v1.Group("/functions")
	functions.Use(middleware.FunctionCORS())
	functions.Use(middleware.FunctionAuth(cfg.SupabaseAnonKey, deps.Verifier))
	functions.Use(deps.RateLimiter.Middleware(middleware.RateLimitConfig{
		Limit:      cfg.RateLimitNotifyThreshold,
		Window:     window,
		KeyPrefix:  "rl:notify:",
		FailClosed: true,
		Reject: func(c *gin.Context, status int, message string) {
			c.JSON(status, gin.H{"error": message})
		},
	}))
	{
		NewNotificationHandler(functions, deps.NotificationUC)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AdminCORS(cfg.FrontendURL, cfg.Mode))
	// preflights must reach the CORS middleware before auth
	admin.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier))
	protected.Use(deps.RateLimiter.Middleware(middleware.RateLimitConfig{
		Limit:     cfg.RateLimitAdminThreshold,
		Window:    window,
		KeyPrefix: "rl:admin:",
		KeyFunc:   middleware.UserID,
	}))
	{
		NewContractHandler(protected, deps.ContractUC)
		NewDashboardHandler(protected, deps.DashboardUC)
	}

	return r
}
