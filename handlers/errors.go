package handlers

import (
	"context"
	"errors"
	"net/http"

	"venuedesk/bookingapi"
	"venuedesk/services/availability"
	"venuedesk/services/events"
	"venuedesk/services/report"
	"venuedesk/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto a status code and a JSON body.
func respondError(c *gin.Context, err error) {
	var apiErr *bookingapi.APIError
	var verr *events.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid event update", verr.Error())
	case errors.Is(err, events.ErrInvalidID), errors.Is(err, events.ErrInvalidUpdate),
		errors.Is(err, availability.ErrInvalidRange):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, events.ErrEventNotFound), errors.Is(err, bookingapi.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Event not found", err.Error())
	case errors.Is(err, report.ErrEmptyReport):
		utils.JSONError(c, http.StatusNotFound, "No events in range", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		utils.JSONError(c, http.StatusGatewayTimeout, "Booking API timed out", err.Error())
	case errors.As(err, &apiErr):
		utils.JSONError(c, http.StatusBadGateway, "Booking API error", err.Error())
	default:
		utils.JSONError(c, http.StatusBadGateway, "Booking API unavailable", err.Error())
	}
}
