package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"venuedesk/models"
	"venuedesk/payload"
	"venuedesk/services/availability"
	"venuedesk/services/events"
	"venuedesk/services/status"
)

// Rank of the categories that hold a room; the strongest hold of a day wins.
var holdRank = map[status.Category]int{
	status.Confirmado:     3,
	status.PorConfirmar:   2,
	status.ReunionInterna: 1,
}

type roomTally struct {
	room   availability.Room
	days   map[time.Time]status.Category
	events map[string]bool
}

func roomKey(r availability.Room) string {
	if r.ID != "" {
		return "id:" + r.ID
	}
	return "name:" + payload.Normalize(r.Name)
}

// Occupancy counts, per room, the days of the window held by blocking
// activities. Catalogue rooms with no hold are listed with zero days.
func (s *DefaultReportService) Occupancy(ctx context.Context, window events.DateRange) (*models.OccupancyReport, error) {
	if err := availability.ValidateRange(window); err != nil {
		return nil, err
	}
	evs, err := s.Events.Fetch(ctx, events.Filter{From: window.Start, To: window.End})
	if err != nil {
		return nil, err
	}
	if len(evs) == 0 {
		return nil, ErrEmptyReport
	}
	rooms, err := s.Upstream.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return occupancy(rooms, availability.BlockingHolds(evs, window), window), nil
}

func occupancy(rooms []map[string]any, holds []availability.Hold, window events.DateRange) *models.OccupancyReport {
	var order []string
	tallies := map[string]*roomTally{}
	tallyFor := func(r availability.Room) *roomTally {
		// Prefer the catalogue entry the hold refers to.
		for _, k := range order {
			if tallies[k].room.Matches(r) {
				return tallies[k]
			}
		}
		k := roomKey(r)
		t := &roomTally{room: r, days: map[time.Time]status.Category{}, events: map[string]bool{}}
		tallies[k] = t
		order = append(order, k)
		return t
	}

	for _, obj := range rooms {
		if r := availability.RoomOf(obj); r.ID != "" || r.Name != "" {
			tallyFor(r)
		}
	}
	for _, h := range holds {
		t := tallyFor(h.Room)
		if holdRank[h.Category] > holdRank[t.days[h.Day]] {
			t.days[h.Day] = h.Category
		}
		t.events[h.EventID] = true
	}

	rep := &models.OccupancyReport{
		From: formatBound(window.Start),
		To:   formatBound(window.End),
		Days: window.DayCount(),
		Rows: make([]models.OccupancyRow, 0, len(order)),
	}
	for _, k := range order {
		t := tallies[k]
		row := models.OccupancyRow{Room: t.room.Name, BookedDays: len(t.days), Events: len(t.events)}
		if row.Room == "" {
			row.Room = t.room.ID
		}
		for _, c := range t.days {
			switch c {
			case status.Confirmado:
				row.Confirmed++
			case status.PorConfirmar:
				row.Pending++
			case status.ReunionInterna:
				row.InternalOnly++
			}
		}
		rep.Rows = append(rep.Rows, row)
	}
	sort.SliceStable(rep.Rows, func(i, j int) bool {
		if rep.Rows[i].BookedDays != rep.Rows[j].BookedDays {
			return rep.Rows[i].BookedDays > rep.Rows[j].BookedDays
		}
		return rep.Rows[i].Room < rep.Rows[j].Room
	})
	return rep
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(events.DateLayout)
}
