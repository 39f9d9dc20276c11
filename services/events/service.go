package events

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"venuedesk/bookingapi"
	"venuedesk/models"
	"venuedesk/services/quote"
	"venuedesk/services/status"

	"go.uber.org/zap"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// DefaultEventService implements EventService over the booking API.
type DefaultEventService struct {
	Upstream Upstream
	Logger   *zap.Logger
}

func NewEventService(upstream Upstream, logger *zap.Logger) *DefaultEventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEventService{Upstream: upstream, Logger: logger}
}

// Fetch returns the raw events overlapping the filter's date window.
func (s *DefaultEventService) Fetch(ctx context.Context, f Filter) ([]map[string]any, error) {
	raw, err := s.Upstream.ListEvents(ctx, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	window := DateRange{Start: f.From, End: f.To}
	out := make([]map[string]any, 0, len(raw))
	for _, ev := range raw {
		// Upstream may ignore the range parameters.
		if window.Overlaps(EventDates(ev)) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Search lists the events matching f, ordered by start date then id.
func (s *DefaultEventService) Search(ctx context.Context, f Filter) ([]models.EventSummary, error) {
	raw, err := s.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	return FilterSummaries(raw, f), nil
}

// FilterSummaries summarizes events and keeps the ones matching f.
func FilterSummaries(raw []map[string]any, f Filter) []models.EventSummary {
	statuses := make(map[status.Category]bool, len(f.Statuses))
	for _, c := range f.Statuses {
		statuses[c] = true
	}
	segments := make(map[string]bool, len(f.Segments))
	for _, seg := range f.Segments {
		segments[status.MarketSegmentKeyFromLabel(seg)] = true
	}

	out := make([]models.EventSummary, 0, len(raw))
	for _, ev := range raw {
		sum := Summarize(ev)
		if f.ExcludeCancelled && sum.Status == status.Cancelado {
			continue
		}
		if len(statuses) > 0 && !statuses[sum.Status] {
			continue
		}
		if len(segments) > 0 && !segments[sum.SegmentKey] {
			continue
		}
		if !matchesText(sum, f.Query) {
			continue
		}
		out = append(out, sum)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Segments lists the distinct market segments of the events in the window.
func (s *DefaultEventService) Segments(ctx context.Context, f Filter) ([]models.SegmentOption, error) {
	raw, err := s.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	byKey := map[string]*models.SegmentOption{}
	for _, ev := range raw {
		label := status.MarketSegmentLabel(ev)
		key := status.MarketSegmentKeyFromLabel(label)
		if key == "" {
			continue
		}
		opt, ok := byKey[key]
		if !ok {
			opt = &models.SegmentOption{Key: key, Label: label}
			byKey[key] = opt
		}
		opt.Count++
	}
	out := make([]models.SegmentOption, 0, len(byKey))
	for _, opt := range byKey {
		out = append(out, *opt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Detail loads an event and its quote. A failing quote fetch is logged and
// the detail is built from the event alone.
func (s *DefaultEventService) Detail(ctx context.Context, id string) (*models.EventDetail, error) {
	if !validID.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	event, err := s.Upstream.GetEvent(ctx, id)
	if errors.Is(err, bookingapi.ErrNotFound) || (err == nil && event == nil) {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}

	quoteObj, err := s.Upstream.GetEventQuote(ctx, id)
	if err != nil {
		s.Logger.Warn("quote fetch failed, using line items only", zap.String("event", id), zap.Error(err))
		quoteObj = nil
	}

	return &models.EventDetail{
		Summary:    SummarizeWithQuote(event, quoteObj),
		Activities: ActivityViews(event),
		Lines:      quote.EventLines(event),
		Resolution: quote.ResolveGrandTotal(event, quoteObj),
		Event:      event,
		Quote:      quoteObj,
	}, nil
}

// Update validates an edit, sends it upstream and returns the refreshed event.
func (s *DefaultEventService) Update(ctx context.Context, id string, update models.EventUpdate) (*models.EventDetail, error) {
	if !validID.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if err := ValidateUpdate(update); err != nil {
		return nil, err
	}
	err := s.Upstream.UpdateEvent(ctx, id, update)
	if errors.Is(err, bookingapi.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("update event %s: %w", id, err)
	}
	s.Logger.Info("event updated", zap.String("event", id))
	return s.Detail(ctx, id)
}

// ValidateUpdate checks an edit before it is sent upstream.
func ValidateUpdate(u models.EventUpdate) error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	var start, end time.Time
	if u.StartDate != nil {
		t, err := time.Parse(DateLayout, *u.StartDate)
		if err != nil {
			return &ValidationError{Field: "startDate", Reason: "must be YYYY-MM-DD"}
		}
		start = t
	}
	if u.EndDate != nil {
		t, err := time.Parse(DateLayout, *u.EndDate)
		if err != nil {
			return &ValidationError{Field: "endDate", Reason: "must be YYYY-MM-DD"}
		}
		end = t
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return &ValidationError{Field: "endDate", Reason: "must not be before startDate"}
	}
	if u.MarketSegment != nil && status.MarketSegmentKeyFromLabel(*u.MarketSegment) == "" {
		return &ValidationError{Field: "marketSegment", Reason: "must not be blank"}
	}
	return nil
}
