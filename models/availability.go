package models

import "venuedesk/services/status"

// RoomAvailability is a catalogue room and what holds it in the queried range.
type RoomAvailability struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name"`
	Capacity  int            `json:"capacity,omitempty"`
	Available bool           `json:"available"`
	HeldBy    []RoomBlocking `json:"heldBy,omitempty"`
}

// RoomBlocking is an activity holding a room.
type RoomBlocking struct {
	EventID    string          `json:"eventId"`
	Title      string          `json:"title"`
	Date       string          `json:"date,omitempty"`
	Status     status.Category `json:"status"`
	StatusText string          `json:"statusText"`
}

// AvailabilityResult answers "which rooms are free between From and To".
type AvailabilityResult struct {
	From      string             `json:"from"`
	To        string             `json:"to"`
	Available []RoomAvailability `json:"available"`
	Occupied  []RoomAvailability `json:"occupied"`
}
