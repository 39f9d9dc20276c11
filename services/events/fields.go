package events

import (
	"strings"
	"time"

	"venuedesk/bookingapi"
	"venuedesk/models"
	"venuedesk/payload"
	"venuedesk/services/quote"
	"venuedesk/services/status"
)

const DateLayout = "2006-01-02"

var (
	titleKeys       = []string{"title", "name", "eventName", "description"}
	eventNumberKeys = []string{"eventNumber", "number", "eventNo", "code"}
	startDateKeys   = []string{"startDate", "dateStart", "fromDate", "date"}
	endDateKeys     = []string{"endDate", "dateEnd", "toDate"}
)

// ParseDate reads a calendar date; any time-of-day suffix is ignored.
func ParseDate(v any) (time.Time, bool) {
	s := payload.Text(v)
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func firstDate(obj map[string]any, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		if t, ok := ParseDate(obj[k]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateRange is an inclusive span of calendar days. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two inclusive ranges share at least one day.
func (r DateRange) Overlaps(o DateRange) bool {
	if !r.Start.IsZero() && !o.End.IsZero() && o.End.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !o.Start.IsZero() && o.Start.After(r.End) {
		return false
	}
	return true
}

// Clip narrows r to the days it shares with w. An open bound of w leaves the
// matching bound of r as it is.
func (r DateRange) Clip(w DateRange) DateRange {
	if !w.Start.IsZero() && (r.Start.IsZero() || w.Start.After(r.Start)) {
		r.Start = w.Start
	}
	if !w.End.IsZero() && (r.End.IsZero() || w.End.Before(r.End)) {
		r.End = w.End
	}
	return r
}

// DayCount is len(r.Days()) without listing the days.
func (r DateRange) DayCount() int {
	if r.Start.IsZero() || r.End.IsZero() || r.End.Before(r.Start) {
		return 0
	}
	return int((r.End.Unix()-r.Start.Unix())/86400) + 1
}

// Days lists every day of a closed range; nil when either bound is open.
func (r DateRange) Days() []time.Time {
	if r.Start.IsZero() || r.End.IsZero() || r.End.Before(r.Start) {
		return nil
	}
	var out []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// EventDates returns the dates of an event. A missing end date equals the start.
func EventDates(event map[string]any) DateRange {
	var r DateRange
	r.Start, _ = firstDate(event, startDateKeys...)
	r.End, _ = firstDate(event, endDateKeys...)
	if r.End.IsZero() {
		r.End = r.Start
	}
	if r.Start.IsZero() {
		r.Start = r.End
	}
	return r
}

// ActivityDates returns the dates of an activity, or the event's when the
// activity carries none.
func ActivityDates(event, activity map[string]any) DateRange {
	r := EventDates(activity)
	if r.Start.IsZero() {
		return EventDates(event)
	}
	return r
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func Title(event map[string]any) string {
	return payload.FirstString(event, titleKeys...)
}

func EventNumber(event map[string]any) string {
	return payload.FirstString(event, eventNumberKeys...)
}

// Summarize derives the list row of an event without fetching its quote.
func Summarize(event map[string]any) models.EventSummary {
	return SummarizeWithQuote(event, nil)
}

// SummarizeWithQuote derives the list row of an event, reconciling its grand
// total against the quote when one is given.
func SummarizeWithQuote(event, quoteObj map[string]any) models.EventSummary {
	cl := status.ClassifyEvent(event)
	dates := EventDates(event)
	segment := status.MarketSegmentLabel(event)
	lines := quote.EventLines(event)
	resolution := quote.ResolveGrandTotal(event, quoteObj)

	s := models.EventSummary{
		ID:            bookingapi.EventID(event),
		EventNumber:   EventNumber(event),
		Title:         Title(event),
		StartDate:     formatDate(dates.Start),
		EndDate:       formatDate(dates.End),
		Status:        cl.Category,
		StatusText:    cl.Text,
		MarketSegment: segment,
		SegmentKey:    status.MarketSegmentKeyFromLabel(segment),
		ActivityCount: len(status.Activities(event)),
		Totals:        quote.SumLines(lines),
		GrandTotal:    resolution.GrandTotal,
		TotalSource:   string(resolution.Source),
	}
	if s.StatusText == "" {
		s.StatusText = cl.Category.Label()
	}
	for _, l := range lines {
		if l.Counted && l.Amounts.TaxRateMismatch {
			s.HasPricingNote = true
			break
		}
	}
	return s
}

// ActivityViews classifies every activity of an event for the detail page.
func ActivityViews(event map[string]any) []models.ActivityView {
	acts := status.Activities(event)
	out := make([]models.ActivityView, 0, len(acts))
	for i, a := range acts {
		v := models.ActivityView{
			Index:     i,
			Date:      formatDate(ActivityDates(event, a).Start),
			Cancelled: status.IsItemCancelled(a),
			Rooms:     len(payload.List(a["rooms"])),
			Services:  len(payload.List(a["services"])),
		}
		if cl, ok := status.ClassifyActivity(a); ok {
			v.Status, v.StatusText = cl.Category, cl.Text
		} else {
			v.Status, v.StatusText = status.Otros, status.Otros.Label()
		}
		out = append(out, v)
	}
	return out
}

func matchesText(s models.EventSummary, query string) bool {
	q := payload.Normalize(query)
	if q == "" {
		return true
	}
	for _, field := range []string{s.Title, s.EventNumber, s.ID, s.MarketSegment} {
		if strings.Contains(payload.Normalize(field), q) {
			return true
		}
	}
	return false
}
