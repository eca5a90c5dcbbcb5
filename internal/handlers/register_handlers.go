package handlers

import (
	"net/http"

	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	caseFileService portssvc.CaseFileSvcFacade,
	documentService portssvc.DocumentSvcFacade,
) {
	r.Use(cors.New(corsConfig(cfg)))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, caseFileService, documentService)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	caseFileService portssvc.CaseFileSvcFacade,
	documentService portssvc.DocumentSvcFacade,
) {
	v1 := r.Group("/api/v1")

	registerHomeRoutes(v1)
	registerCaseFileRoutes(v1, caseFileService, documentService)
	registerDocumentRoutes(v1, documentService, newRegisterLimiter(cfg))
}

// newRegisterLimiter builds the in-memory rate limiter guarding document
// registration.
func newRegisterLimiter(cfg *config.Config) *limiter.Limiter {
	rate := limiter.Rate{
		Period: cfg.RegisterRatePeriod,
		Limit:  cfg.RegisterRateLimit,
	}
	return limiter.New(memory.NewStore(), rate)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.IsProduction {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-User-ID")
	return corsCfg
}
