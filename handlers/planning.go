package handlers

import (
	"net/http"

	"venuedesk/services/availability"
	"venuedesk/services/report"
	"venuedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanningHandler serves room availability and the reports.
type PlanningHandler struct {
	Availability availability.AvailabilityService
	Reports      report.ReportService
}

func NewPlanningHandler(avail availability.AvailabilityService, reports report.ReportService) *PlanningHandler {
	return &PlanningHandler{Availability: avail, Reports: reports}
}

// AvailabilityHandler handles GET /api/availability?from=&to=.
func (h *PlanningHandler) AvailabilityHandler(c *gin.Context) {
	window, err := parseRange(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	res, err := h.Availability.AvailableRooms(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// FinancialReportHandler handles GET /api/reports/financial.
func (h *PlanningHandler) FinancialReportHandler(c *gin.Context) {
	window, err := parseRange(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	includeCancelled, err := parseBool(c, "includeCancelled")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	rep, err := h.Reports.Financial(c.Request.Context(), window, includeCancelled)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Debug("financial report built", zap.Int("rows", len(rep.Rows)))
	c.JSON(http.StatusOK, rep)
}

// OccupancyReportHandler handles GET /api/reports/occupancy.
func (h *PlanningHandler) OccupancyReportHandler(c *gin.Context) {
	window, err := parseRange(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	rep, err := h.Reports.Occupancy(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// HealthHandler reports the latest snapshot of the health monitor.
func HealthHandler(c *gin.Context) {
	h := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !h.CheckedAt.IsZero() && !h.Healthy() {
		code, state = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(code, gin.H{"status": state, "checks": h})
}
