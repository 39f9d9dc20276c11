package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"venuedesk/bookingapi"
	"venuedesk/models"
	"venuedesk/services/availability"
	"venuedesk/services/events"
	"venuedesk/services/report"
	"venuedesk/services/status"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeEvents struct {
	lastFilter events.Filter
	summaries  []models.EventSummary
	err        error
}

func (f *fakeEvents) Search(_ context.Context, filter events.Filter) ([]models.EventSummary, error) {
	f.lastFilter = filter
	return f.summaries, f.err
}

func (f *fakeEvents) Fetch(context.Context, events.Filter) ([]map[string]any, error) {
	return nil, f.err
}

func (f *fakeEvents) Detail(_ context.Context, id string) (*models.EventDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != "1" {
		return nil, events.ErrEventNotFound
	}
	return &models.EventDetail{Summary: models.EventSummary{ID: "1", Title: "Congreso"}}, nil
}

func (f *fakeEvents) Update(ctx context.Context, id string, u models.EventUpdate) (*models.EventDetail, error) {
	if err := events.ValidateUpdate(u); err != nil {
		return nil, err
	}
	return f.Detail(ctx, id)
}

func (f *fakeEvents) Segments(context.Context, events.Filter) ([]models.SegmentOption, error) {
	return []models.SegmentOption{{Key: "social", Label: "Social", Count: 2}}, f.err
}

type fakePlanning struct {
	err error
}

func (f *fakePlanning) AvailableRooms(_ context.Context, w events.DateRange) (*models.AvailabilityResult, error) {
	if err := availability.ValidateRange(w); err != nil {
		return nil, err
	}
	return &models.AvailabilityResult{From: w.Start.Format(events.DateLayout)}, f.err
}

func (f *fakePlanning) Financial(context.Context, events.DateRange, bool) (*models.FinancialReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.FinancialReport{GrandTotal: 10}, nil
}

func (f *fakePlanning) Occupancy(context.Context, events.DateRange) (*models.OccupancyReport, error) {
	return nil, f.err
}

func newRouter(ev *fakeEvents, pl *fakePlanning) *gin.Engine {
	eh := NewEventHandler(ev)
	ph := NewPlanningHandler(pl, pl)
	r := gin.New()
	r.GET("/events", eh.ListEventsHandler)
	r.GET("/events/segments", eh.SegmentsHandler)
	r.GET("/events/calendar.ics", eh.CalendarHandler)
	r.GET("/events/:id", eh.GetEventHandler)
	r.PUT("/events/:id", eh.UpdateEventHandler)
	r.GET("/availability", ph.AvailabilityHandler)
	r.GET("/reports/financial", ph.FinancialReportHandler)
	r.GET("/reports/occupancy", ph.OccupancyReportHandler)
	r.GET("/health", HealthHandler)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListEventsParsesFilter(t *testing.T) {
	ev := &fakeEvents{summaries: []models.EventSummary{{ID: "1"}}}
	r := newRouter(ev, &fakePlanning{})

	w := serve(r, http.MethodGet, "/events?q=boda&status=confirmado,Opci%C3%B3n%201&segment=social&from=2026-05-01&to=2026-05-31&excludeCancelled=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	f := ev.lastFilter
	if f.Query != "boda" || len(f.Statuses) != 2 || f.Statuses[1] != status.Opcion1 || !f.ExcludeCancelled {
		t.Errorf("filter = %+v", f)
	}
	if len(f.Segments) != 1 || f.From.Format(events.DateLayout) != "2026-05-01" || f.To.Day() != 31 {
		t.Errorf("filter = %+v", f)
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Count != 1 {
		t.Errorf("body = %s", w.Body)
	}
}

func TestListEventsRejectsBadQuery(t *testing.T) {
	r := newRouter(&fakeEvents{}, &fakePlanning{})
	for _, target := range []string{
		"/events?status=unknown",
		"/events?from=05/01/2026",
		"/events?from=2026-05-10&to=2026-05-01",
		"/events?excludeCancelled=maybe",
	} {
		if w := serve(r, http.MethodGet, target, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", target, w.Code)
		}
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"upstream 500", &bookingapi.APIError{Status: 500, Body: "x"}, http.StatusBadGateway},
		{"network", errors.New("connection refused"), http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"not found", bookingapi.ErrNotFound, http.StatusNotFound},
		{"empty report", report.ErrEmptyReport, http.StatusNotFound},
	}
	for _, tt := range tests {
		r := newRouter(&fakeEvents{err: tt.err}, &fakePlanning{err: tt.err})
		if w := serve(r, http.MethodGet, "/reports/financial?from=2026-05-01", ""); w.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, w.Code, tt.want)
		}
	}
}

func TestGetEvent(t *testing.T) {
	r := newRouter(&fakeEvents{}, &fakePlanning{})
	if w := serve(r, http.MethodGet, "/events/1", ""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Congreso") {
		t.Errorf("GET /events/1 = %d %s", w.Code, w.Body)
	}
	if w := serve(r, http.MethodGet, "/events/2", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET /events/2 = %d", w.Code)
	}
}

func TestUpdateEvent(t *testing.T) {
	r := newRouter(&fakeEvents{}, &fakePlanning{})
	tests := []struct {
		body string
		want int
	}{
		{`{"title":"Nuevo"}`, http.StatusOK},
		{`{"title":"  "}`, http.StatusBadRequest},
		{`{"contactEmail":"not-an-email"}`, http.StatusBadRequest},
		{`{"attendees":-1}`, http.StatusBadRequest},
		{`not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := serve(r, http.MethodPut, "/events/1", tt.body); w.Code != tt.want {
			t.Errorf("PUT %s: status = %d, want %d (%s)", tt.body, w.Code, tt.want, w.Body)
		}
	}
}

func TestCalendarHandler(t *testing.T) {
	ev := &fakeEvents{summaries: []models.EventSummary{{ID: "1", Title: "Congreso", StartDate: "2026-05-10", Status: status.Confirmado}}}
	w := serve(newRouter(ev, &fakePlanning{}), http.MethodGet, "/events/calendar.ics", "")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar") {
		t.Fatalf("status = %d, type = %s", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VEVENT") {
		t.Errorf("body = %s", w.Body)
	}
}

func TestSegmentsAndAvailability(t *testing.T) {
	r := newRouter(&fakeEvents{}, &fakePlanning{})
	if w := serve(r, http.MethodGet, "/events/segments", ""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "social") {
		t.Errorf("segments = %d %s", w.Code, w.Body)
	}
	if w := serve(r, http.MethodGet, "/availability?from=2026-05-01", ""); w.Code != http.StatusOK {
		t.Errorf("availability = %d %s", w.Code, w.Body)
	}
	if w := serve(r, http.MethodGet, "/availability", ""); w.Code != http.StatusBadRequest {
		t.Errorf("availability without range = %d", w.Code)
	}
}

func TestHealthHandlerBeforeFirstCheck(t *testing.T) {
	w := serve(newRouter(&fakeEvents{}, &fakePlanning{}), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("health = %d %s", w.Code, w.Body)
	}
}
