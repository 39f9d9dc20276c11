package models

import (
	"venuedesk/services/quote"
	"venuedesk/services/status"
)

// EventSummary is one row of the event list.
type EventSummary struct {
	ID             string          `json:"id"`
	EventNumber    string          `json:"eventNumber,omitempty"`
	Title          string          `json:"title"`
	StartDate      string          `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate        string          `json:"endDate,omitempty"`   // YYYY-MM-DD
	Status         status.Category `json:"status"`
	StatusText     string          `json:"statusText"`
	MarketSegment  string          `json:"marketSegment,omitempty"`
	SegmentKey     string          `json:"segmentKey,omitempty"`
	ActivityCount  int             `json:"activityCount"`
	Totals         quote.Totals    `json:"totals"`
	GrandTotal     float64         `json:"grandTotal"`
	TotalSource    string          `json:"totalSource"`
	HasPricingNote bool            `json:"hasPricingNote,omitempty"` // some line has inconsistent tax data
}

// EventDetail is the event page: summary, priced lines and the raw payloads.
type EventDetail struct {
	Summary    EventSummary     `json:"summary"`
	Activities []ActivityView   `json:"activities"`
	Lines      []quote.Line     `json:"lines"`
	Resolution quote.Resolution `json:"resolution"`
	Event      map[string]any   `json:"event"`
	Quote      map[string]any   `json:"quote,omitempty"`
}

// ActivityView is the classified status of one activity.
type ActivityView struct {
	Index      int             `json:"index"`
	Date       string          `json:"date,omitempty"`
	Status     status.Category `json:"status"`
	StatusText string          `json:"statusText"`
	Cancelled  bool            `json:"cancelled"`
	Rooms      int             `json:"rooms"`
	Services   int             `json:"services"`
}

// EventUpdate is the editable subset of an event sent back to the booking API.
type EventUpdate struct {
	Title         *string `json:"title,omitempty"`
	StartDate     *string `json:"startDate,omitempty"`
	EndDate       *string `json:"endDate,omitempty"`
	MarketSegment *string `json:"marketSegment,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	ContactName   *string `json:"contactName,omitempty"`
	ContactEmail  *string `json:"contactEmail,omitempty" binding:"omitempty,email"`
	Attendees     *int    `json:"attendees,omitempty" binding:"omitempty,min=0"`
}

// SegmentOption is one entry of the market segment filter.
type SegmentOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
