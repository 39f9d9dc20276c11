package routes

import (
	"net/http"
	"time"

	"venuedesk/handlers"
	"venuedesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes registers the event list, detail and edit endpoints.
func RegisterEventRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	eventsGroup := api.Group("/events")
	{
		eventsGroup.GET("", hb.ListEventsHandler)
		eventsGroup.GET("/segments", hb.SegmentsHandler)
		eventsGroup.GET("/calendar.ics", hb.CalendarHandler)
		eventsGroup.GET("/:id", hb.GetEventHandler)
		eventsGroup.PUT("/:id", hb.UpdateEventHandler)
	}
}

// RegisterPlanningRoutes registers availability and report endpoints.
func RegisterPlanningRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/availability", hb.AvailabilityHandler)

	reports := api.Group("/reports")
	{
		reports.GET("/financial", hb.FinancialReportHandler)
		reports.GET("/occupancy", hb.OccupancyReportHandler)
	}
}

// RegisterHealthRoute registers the public health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.HealthHandler == nil {
		r.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return
	}
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	corsConfig := cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	RegisterHealthRoute(r, hb)

	api := r.Group("/api")
	api.Use(middleware.StaffAuth())
	RegisterEventRoutes(api, hb)
	RegisterPlanningRoutes(api, hb)
}
