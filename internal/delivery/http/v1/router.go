package v1

import (
	"net/http"
	"time"

	"job-tracker-backend/config"
	"job-tracker-backend/internal/delivery/http/middleware"
	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const avatarUploadsPerHour = 10

type RouterDeps struct {
	JobUC     domain.JobUsecase
	AuthUC    domain.AuthUsecase
	ProfileUC domain.ProfileUsecase
	ExportUC  domain.ExportUsecase
	HealthUC  usecase.HealthUsecase
	Verifier  middleware.SessionVerifier
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators()

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	r.Use(middleware.CSRFMiddleware(cfg.CookieSecure))
	r.Use(middleware.ResolveIdentity(deps.Verifier))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, ok := deps.HealthUC.Check(c)
		if !ok {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	authLimit := middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window))
	NewAuthHandler(v1, deps.AuthUC, cfg, authLimit)

	// Protected routes
	uploadLimit := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(avatarUploadsPerHour, time.Hour))
	protected := v1.Group("")
	protected.Use(middleware.RequireIdentity())
	{
		NewJobHandler(protected, deps.JobUC, deps.AuthUC, deps.ExportUC)
		NewProfileHandler(protected, deps.ProfileUC, uploadLimit)
	}

	return r
}
