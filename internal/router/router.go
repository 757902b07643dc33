package router

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/peakspace-dev/peakspace/internal/config"
	"github.com/peakspace-dev/peakspace/internal/handlers"
	"github.com/peakspace-dev/peakspace/internal/metrics"
	"github.com/peakspace-dev/peakspace/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(metrics.Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		// Public capture endpoints
		api.POST("/questionnaire-submit", handlers.SubmitQuestionnaire)
		api.POST("/lead-capture", handlers.CaptureLead)
		api.POST("/track-event", handlers.TrackEvent)
		api.POST("/send-email", handlers.SendEmail)

		// Wizard drafts
		api.POST("/questionnaire-draft", handlers.CreateDraft)
		api.GET("/questionnaire-draft/:session_id", handlers.GetDraft)
		api.PUT("/questionnaire-draft/:session_id", handlers.SaveDraft)
		api.DELETE("/questionnaire-draft/:session_id", handlers.DeleteDraft)

		// Property catalog
		api.GET("/properties", handlers.ListProperties)
		api.GET("/properties/:id", handlers.GetProperty)

		// Admin surface is only mounted when a JWT secret is configured
		if cfg.AdminEnabled() {
			api.POST("/admin/login", handlers.LoginAdmin)

			admin := api.Group("/admin", middleware.AuthMiddleware())
			{
				admin.GET("/me", handlers.MeAdmin)
				admin.POST("/logout", handlers.LogoutAdmin)
				admin.GET("/inquiries", handlers.ListInquiries)
				admin.GET("/inquiries/:id", handlers.GetInquiry)
				admin.PATCH("/inquiries/:id", handlers.UpdateInquiry)
				admin.GET("/stats", handlers.GetStats)
				admin.GET("/export", handlers.ExportResponses)
				admin.GET("/ws", handlers.DashboardWebSocket)
			}
		} else {
			log.Println("JWT_SECRET not set, admin endpoints disabled")
		}
	}

	return r
}
