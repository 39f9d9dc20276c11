package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	// Event endpoints
	ListEventsHandler  gin.HandlerFunc
	SegmentsHandler    gin.HandlerFunc
	CalendarHandler    gin.HandlerFunc
	GetEventHandler    gin.HandlerFunc
	UpdateEventHandler gin.HandlerFunc

	// Planning endpoints
	AvailabilityHandler    gin.HandlerFunc
	FinancialReportHandler gin.HandlerFunc
	OccupancyReportHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
