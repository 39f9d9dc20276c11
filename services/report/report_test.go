package report

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"venuedesk/services/availability"
	"venuedesk/services/events"
)

func day(s string) time.Time {
	t, _ := time.Parse(events.DateLayout, s)
	return t
}

type fakeUpstream struct {
	events   []map[string]any
	rooms    []map[string]any
	quotes   map[string]map[string]any
	failing  map[string]bool
	mu       sync.Mutex
	inFlight int32
	peak     int32
}

func (f *fakeUpstream) ListEvents(context.Context, time.Time, time.Time) ([]map[string]any, error) {
	return f.events, nil
}
func (f *fakeUpstream) GetEvent(context.Context, string) (map[string]any, error) { return nil, nil }
func (f *fakeUpstream) UpdateEvent(context.Context, string, any) error { return nil }
func (f *fakeUpstream) ListRooms(context.Context) ([]map[string]any, error) {
	return f.rooms, nil
}

func (f *fakeUpstream) GetEventQuote(_ context.Context, id string) (map[string]any, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	f.mu.Lock()
	if n > f.peak {
		f.peak = n
	}
	f.mu.Unlock()
	time.Sleep(5 * time.Millisecond)
	if f.failing[id] {
		return nil, errors.New("quote service unavailable")
	}
	return f.quotes[id], nil
}

func newService(up *fakeUpstream, concurrency int) *DefaultReportService {
	return NewReportService(up, events.NewEventService(up, nil), concurrency, nil)
}

func reportEvents() []map[string]any {
	room := func(price float64) []any {
		return []any{map[string]any{"name": "Salón A", "priceTNI": price, "priceTI": price * 1.1}}
	}
	return []map[string]any{
		{"idEvent": 1.0, "title": "A", "startDate": "2026-05-02", "marketSegment": "Corporativo",
			"activities": []any{map[string]any{"status": "Confirmado", "rooms": room(100.005)}}},
		{"idEvent": 2.0, "title": "B", "startDate": "2026-05-01", "marketSegment": "Social",
			"activities": []any{map[string]any{"status": "Opción 2"}}},
		{"idEvent": 3.0, "title": "C", "startDate": "2026-05-03",
			"activities": []any{map[string]any{"status": "Cancelado", "rooms": room(50)}}},
	}
}

func TestFinancial(t *testing.T) {
	up := &fakeUpstream{
		events:  reportEvents(),
		quotes:  map[string]map[string]any{"2": {"grandTotal": "1.234,5"}},
		failing: map[string]bool{"1": true},
	}
	svc := newService(up, 2)
	window := events.DateRange{Start: day("2026-05-01"), End: day("2026-05-31")}

	rep, err := svc.Financial(context.Background(), window, false)
	if err != nil {
		t.Fatalf("Financial: %v", err)
	}
	if len(rep.Rows) != 2 || rep.Rows[0].EventID != "2" || rep.Rows[1].EventID != "1" {
		t.Fatalf("rows = %+v", rep.Rows)
	}
	// Separators other than "." are dropped, so "1.234,5" reads as 1.2345.
	if rep.Rows[0].GrandTotal != 1.23 || rep.Rows[0].TotalSource != "provided" {
		t.Errorf("provided row = %+v", rep.Rows[0])
	}
	failed := rep.Rows[1]
	if failed.QuoteError == "" || failed.GrandTotal != 110.01 || failed.Net != 100.01 {
		t.Errorf("degraded row = %+v", failed)
	}
	if rep.GrandTotal != 111.24 || rep.From != "2026-05-01" {
		t.Errorf("report = %+v", rep)
	}
	if len(rep.ByStatus) != 2 || len(rep.BySegment) != 2 {
		t.Errorf("buckets = %+v / %+v", rep.ByStatus, rep.BySegment)
	}

	all, err := svc.Financial(context.Background(), window, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Rows) != 3 || len(all.BySegment) != 3 || all.BySegment[1].Key != noSegmentKey {
		t.Errorf("with cancelled = %+v", all.BySegment)
	}
}

func TestFinancialRespectsConcurrency(t *testing.T) {
	var evs []map[string]any
	for i := 0; i < 12; i++ {
		evs = append(evs, map[string]any{"idEvent": float64(i + 1), "startDate": "2026-05-01"})
	}
	up := &fakeUpstream{events: evs}
	if _, err := newService(up, 3).Financial(context.Background(), events.DateRange{}, false); err != nil {
		t.Fatal(err)
	}
	if up.peak > 3 || up.peak == 0 {
		t.Errorf("peak concurrent quote fetches = %d, want 1..3", up.peak)
	}
}

func TestFinancialEmpty(t *testing.T) {
	up := &fakeUpstream{events: []map[string]any{
		{"idEvent": 1.0, "startDate": "2026-05-01", "activities": []any{map[string]any{"status": "Cancelado"}}},
	}}
	if _, err := newService(up, 0).Financial(context.Background(), events.DateRange{}, false); !errors.Is(err, ErrEmptyReport) {
		t.Errorf("err = %v, want ErrEmptyReport", err)
	}
}

func TestOccupancy(t *testing.T) {
	up := &fakeUpstream{
		rooms: []map[string]any{{"idRoom": 1.0, "name": "Salón A"}, {"idRoom": 2.0, "name": "Salón B"}},
		events: []map[string]any{
			{"idEvent": 1.0, "startDate": "2026-05-01", "endDate": "2026-05-03",
				"activities": []any{map[string]any{"status": "Confirmado", "rooms": []any{map[string]any{"idRoom": 1.0}}}}},
			{"idEvent": 2.0, "startDate": "2026-05-03", "endDate": "2026-05-04",
				"activities": []any{map[string]any{"status": "Por confirmar", "rooms": []any{map[string]any{"name": "salon a"}}}}},
			{"idEvent": 3.0, "startDate": "2026-05-02",
				"activities": []any{map[string]any{"status": "Reunión interna", "rooms": []any{map[string]any{"name": "Sala Junta"}}}}},
		},
	}
	rep, err := newService(up, 1).Occupancy(context.Background(), events.DateRange{Start: day("2026-05-01"), End: day("2026-05-10")})
	if err != nil {
		t.Fatalf("Occupancy: %v", err)
	}
	if rep.Days != 10 || len(rep.Rows) != 3 {
		t.Fatalf("report = %+v", rep)
	}
	a := rep.Rows[0]
	// 1-3 confirmed, 3 also pending (confirmed wins), 4 pending.
	if a.Room != "Salón A" || a.BookedDays != 4 || a.Confirmed != 3 || a.Pending != 1 || a.Events != 2 {
		t.Errorf("Salón A = %+v", a)
	}
	if rep.Rows[1].Room != "Sala Junta" || rep.Rows[1].InternalOnly != 1 {
		t.Errorf("Sala Junta = %+v", rep.Rows[1])
	}
	if rep.Rows[2].Room != "Salón B" || rep.Rows[2].BookedDays != 0 {
		t.Errorf("Salón B = %+v", rep.Rows[2])
	}

	if _, err := newService(up, 1).Occupancy(context.Background(), events.DateRange{}); !errors.Is(err, availability.ErrInvalidRange) {
		t.Errorf("open range err = %v", err)
	}
	huge := events.DateRange{Start: day("0002-01-01"), End: day("9999-12-31")}
	if _, err := newService(up, 1).Occupancy(context.Background(), huge); !errors.Is(err, availability.ErrInvalidRange) {
		t.Errorf("oversized range err = %v", err)
	}
}
