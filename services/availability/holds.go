package availability

import (
	"time"

	"venuedesk/bookingapi"
	"venuedesk/payload"
	"venuedesk/services/events"
	"venuedesk/services/status"
)

var (
	roomIDKeys   = []string{"idRoom", "roomId", "id"}
	roomNameKeys = []string{"name", "roomName", "description"}
)

// Room identifies a catalogue room or a room line.
type Room struct {
	ID   string
	Name string
}

// RoomOf reads the identity of a catalogue room or a room line.
func RoomOf(obj map[string]any) Room {
	return Room{
		ID:   payload.FirstString(obj, roomIDKeys...),
		Name: payload.FirstString(obj, roomNameKeys...),
	}
}

// Matches reports whether two rooms are the same, by id when both carry one,
// otherwise by normalized name.
func (r Room) Matches(o Room) bool {
	if r.ID != "" && o.ID != "" {
		return r.ID == o.ID
	}
	n := payload.Normalize(r.Name)
	return n != "" && n == payload.Normalize(o.Name)
}

// Hold is one room held on one day by a blocking activity.
type Hold struct {
	EventID    string
	Title      string
	Room       Room
	Day        time.Time
	Category   status.Category
	StatusText string
}

// BlockingHolds lists, for every day of window, the rooms held by blocking
// activities. Activity dates are clipped to window before they are listed. Cancelled activities and cancelled room lines hold nothing.
// An activity without a status label inherits the event's status.
func BlockingHolds(evs []map[string]any, window events.DateRange) []Hold {
	var holds []Hold
	for _, ev := range evs {
		eventID := bookingapi.EventID(ev)
		title := events.Title(ev)
		for _, a := range status.Activities(ev) {
			cl, ok := status.ClassifyActivity(a)
			if !ok {
				cl = status.ClassifyEvent(ev)
			}
			if cl.Category == status.Cancelado || !cl.Category.IsBlocking() {
				continue
			}
			text := cl.Text
			if text == "" {
				text = cl.Category.Label()
			}

			span := events.ActivityDates(ev, a)
			if span.Start.IsZero() || span.End.IsZero() {
				continue
			}
			days := span.Clip(window).Days()
			if len(days) == 0 {
				continue
			}

			for _, line := range payload.Objects(a["rooms"]) {
				if status.IsItemCancelled(line) {
					continue
				}
				room := RoomOf(line)
				if room.ID == "" && room.Name == "" {
					continue
				}
				for _, d := range days {
					holds = append(holds, Hold{
						EventID:    eventID,
						Title:      title,
						Room:       room,
						Day:        d,
						Category:   cl.Category,
						StatusText: text,
					})
				}
			}
		}
	}
	return holds
}
