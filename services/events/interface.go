package events

import (
	"context"
	"time"

	"venuedesk/models"
	"venuedesk/services/status"
)

// Upstream is the part of the booking API the dashboard services use.
type Upstream interface {
	ListEvents(ctx context.Context, from, to time.Time) ([]map[string]any, error)
	GetEvent(ctx context.Context, id string) (map[string]any, error)
	GetEventQuote(ctx context.Context, id string) (map[string]any, error)
	UpdateEvent(ctx context.Context, id string, update any) error
	ListRooms(ctx context.Context) ([]map[string]any, error)
}

// Filter narrows the event list. Zero values match everything.
type Filter struct {
	Query            string
	Statuses         []status.Category
	Segments         []string
	From             time.Time
	To               time.Time
	ExcludeCancelled bool
}

// EventService defines the dashboard operations over events.
type EventService interface {
	Search(ctx context.Context, f Filter) ([]models.EventSummary, error)
	Fetch(ctx context.Context, f Filter) ([]map[string]any, error)
	Detail(ctx context.Context, id string) (*models.EventDetail, error)
	Update(ctx context.Context, id string, update models.EventUpdate) (*models.EventDetail, error)
	Segments(ctx context.Context, f Filter) ([]models.SegmentOption, error)
}
