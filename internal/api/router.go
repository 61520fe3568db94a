package api

import (
	"time"

	"github.com/Marga-Ghale/ora-member-service/internal/api/handlers"
	"github.com/Marga-Ghale/ora-member-service/internal/api/middleware"
	"github.com/Marga-Ghale/ora-member-service/internal/logger"
	"github.com/Marga-Ghale/ora-member-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDeps wires the HTTP layer.
type RouterDeps struct {
	Services       *service.Services
	DB             handlers.Pinger
	Notifier       string
	AllowedOrigins []string
}

// NewRouter builds the gin engine. Member routes pass through the JSON
// header check before authentication.
func NewRouter(deps *RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger.Component("http")))
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	h := handlers.NewHandlers(deps.Services, deps.DB, deps.Notifier)

	r.GET("/health", h.Health.Check)

	api := r.Group("/api")
	{
		members := api.Group("/members")
		members.Use(middleware.RequireJSON())
		members.Use(middleware.AuthMiddleware(deps.Services.Auth))
		{
			members.GET("", h.Member.List)
			members.POST("", h.Member.Create)
			members.PUT("/:id", h.Member.Update)
			members.DELETE("/:id", h.Member.Delete)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "Authentication", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
