// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldops/internal/http/handlers"
	"fieldops/internal/http/middleware"
	"fieldops/internal/infra"
	"fieldops/internal/modules/pricing"
	"fieldops/internal/modules/remotesite"
)

type RouterDeps struct {
	Pricing    *pricing.Service
	RemoteSite *remotesite.Service
	// Verifier may be nil in local development; every caller is then
	// served the customer view.
	Verifier       infra.TokenVerifier
	AllowedOrigins []string
	Log            *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logging(log))
	corsConfig := cors.Config{
		AllowOrigins:  deps.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(deps.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	if deps.Verifier != nil {
		api.Use(middleware.Auth(deps.Verifier))
	}

	pricingHandler := handlers.NewPricingHandler(deps.Pricing, deps.RemoteSite)
	api.POST("/pricing/quote", pricingHandler.Quote)
	api.POST("/pricing/range", pricingHandler.Range)
	api.POST("/pricing/ooh", pricingHandler.OOH)

	siteHandler := handlers.NewRemoteSiteHandler(deps.RemoteSite)
	api.POST("/remote-site-fee", siteHandler.Fee)

	return r
}
