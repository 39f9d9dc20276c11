package calendar

import (
	"fmt"
	"time"

	"venuedesk/models"
	"venuedesk/services/events"
	"venuedesk/services/status"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//venuedesk//Event Calendar//ES"

// EventStatus maps a status category onto the iCalendar STATUS vocabulary.
func EventStatus(c status.Category) ics.ObjectStatus {
	switch c {
	case status.Confirmado:
		return ics.ObjectStatusConfirmed
	case status.Cancelado:
		return ics.ObjectStatusCancelled
	}
	return ics.ObjectStatusTentative
}

// BuildCalendar renders one all-day VEVENT per event. Events without a start
// date are skipped. DTEND is exclusive, so it is the day after the end date.
func BuildCalendar(summaries []models.EventSummary, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName("Eventos")

	for _, s := range summaries {
		start, err := time.Parse(events.DateLayout, s.StartDate)
		if err != nil {
			continue
		}
		end := start
		if t, err := time.Parse(events.DateLayout, s.EndDate); err == nil && !t.Before(start) {
			end = t
		}

		ev := cal.AddEvent(fmt.Sprintf("event-%s@venuedesk", s.ID))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetSummary(Summary(s))
		ev.SetStatus(EventStatus(s.Status))
		ev.AddCategory(string(s.Status))
		if s.SegmentKey != "" {
			ev.AddCategory(s.SegmentKey)
		}
		if s.EventNumber != "" {
			ev.SetDescription("Evento " + s.EventNumber)
		}
	}
	return cal.Serialize()
}

// Summary is the calendar title of an event: "<title> (<status text>)".
func Summary(s models.EventSummary) string {
	title := s.Title
	if title == "" {
		title = "Evento " + s.ID
	}
	text := s.StatusText
	if text == "" {
		text = s.Status.Label()
	}
	return fmt.Sprintf("%s (%s)", title, text)
}
