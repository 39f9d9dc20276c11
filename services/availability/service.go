package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"venuedesk/models"
	"venuedesk/payload"
	"venuedesk/services/events"

	"go.uber.org/zap"
)

// ErrInvalidRange is returned when a range lacks a bound, ends before it
// starts or spans more than MaxRangeDays.
var ErrInvalidRange = errors.New("invalid date range")

// MaxRangeDays bounds availability and occupancy queries.
const MaxRangeDays = 731

// AvailabilityService answers which catalogue rooms are free in a date range.
type AvailabilityService interface {
	AvailableRooms(ctx context.Context, window events.DateRange) (*models.AvailabilityResult, error)
}

// DefaultAvailabilityService is a best-effort heuristic over upstream
// events; it never books or reserves anything.
type DefaultAvailabilityService struct {
	Upstream events.Upstream
	Events   events.EventService
	Logger   *zap.Logger
}

func NewAvailabilityService(upstream events.Upstream, eventSvc events.EventService, logger *zap.Logger) *DefaultAvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAvailabilityService{Upstream: upstream, Events: eventSvc, Logger: logger}
}

// ValidateRange checks that a range is closed, ordered and at most
// MaxRangeDays long.
func ValidateRange(window events.DateRange) error {
	if window.Start.IsZero() || window.End.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidRange)
	}
	if window.End.Before(window.Start) {
		return fmt.Errorf("%w: to is before from", ErrInvalidRange)
	}
	if window.DayCount() > MaxRangeDays {
		return fmt.Errorf("%w: range is longer than %d days", ErrInvalidRange, MaxRangeDays)
	}
	return nil
}

func (s *DefaultAvailabilityService) AvailableRooms(ctx context.Context, window events.DateRange) (*models.AvailabilityResult, error) {
	if err := ValidateRange(window); err != nil {
		return nil, err
	}
	rooms, err := s.Upstream.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	evs, err := s.Events.Fetch(ctx, events.Filter{From: window.Start, To: window.End})
	if err != nil {
		return nil, err
	}

	res := Compute(rooms, BlockingHolds(evs, window))
	res.From = window.Start.Format(events.DateLayout)
	res.To = window.End.Format(events.DateLayout)
	s.Logger.Debug("availability computed",
		zap.String("from", res.From),
		zap.String("to", res.To),
		zap.Int("available", len(res.Available)),
		zap.Int("occupied", len(res.Occupied)))
	return res, nil
}

// Compute splits the room catalogue into available and occupied rooms.
// An occupied room lists each holding event once per day.
func Compute(rooms []map[string]any, holds []Hold) *models.AvailabilityResult {
	res := &models.AvailabilityResult{
		Available: []models.RoomAvailability{},
		Occupied:  []models.RoomAvailability{},
	}
	for _, obj := range rooms {
		room := RoomOf(obj)
		if room.ID == "" && room.Name == "" {
			continue
		}
		capacity, _ := payload.FirstNumber(obj, "capacity", "maxCapacity", "pax")
		ra := models.RoomAvailability{ID: room.ID, Name: room.Name, Capacity: int(capacity)}
		for _, h := range holds {
			if !room.Matches(h.Room) {
				continue
			}
			ra.HeldBy = append(ra.HeldBy, models.RoomBlocking{
				EventID:    h.EventID,
				Title:      h.Title,
				Date:       h.Day.Format(events.DateLayout),
				Status:     h.Category,
				StatusText: h.StatusText,
			})
		}
		if len(ra.HeldBy) == 0 {
			ra.Available = true
			res.Available = append(res.Available, ra)
			continue
		}
		sort.SliceStable(ra.HeldBy, func(i, j int) bool {
			if ra.HeldBy[i].Date != ra.HeldBy[j].Date {
				return ra.HeldBy[i].Date < ra.HeldBy[j].Date
			}
			return ra.HeldBy[i].EventID < ra.HeldBy[j].EventID
		})
		res.Occupied = append(res.Occupied, ra)
	}
	return res
}
