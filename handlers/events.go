package handlers

import (
	"net/http"
	"time"

	"venuedesk/models"
	"venuedesk/services/calendar"
	"venuedesk/services/events"
	"venuedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	Service events.EventService
}

func NewEventHandler(svc events.EventService) *EventHandler {
	return &EventHandler{Service: svc}
}

// ListEventsHandler handles GET /api/events.
func (h *EventHandler) ListEventsHandler(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	summaries, err := h.Service.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": summaries, "count": len(summaries)})
}

// SegmentsHandler handles GET /api/events/segments.
func (h *EventHandler) SegmentsHandler(c *gin.Context) {
	window, err := parseRange(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	segments, err := h.Service.Segments(c.Request.Context(), events.Filter{From: window.Start, To: window.End})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": segments})
}

// CalendarHandler handles GET /api/events/calendar.ics with the list filters.
func (h *EventHandler) CalendarHandler(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	summaries, err := h.Service.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="eventos.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.BuildCalendar(summaries, time.Now().UTC())))
}

// GetEventHandler handles GET /api/events/:id.
func (h *EventHandler) GetEventHandler(c *gin.Context) {
	detail, err := h.Service.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateEventHandler handles PUT /api/events/:id.
func (h *EventHandler) UpdateEventHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var update models.EventUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid event update", err.Error())
		return
	}
	detail, err := h.Service.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("event updated by staff", zap.String("event", id), zap.String("staff", c.GetString("staff")))
	c.JSON(http.StatusOK, detail)
}
