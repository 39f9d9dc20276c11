package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"venuedesk/services/events"
	"venuedesk/services/status"

	"github.com/gin-gonic/gin"
)

func parseDateParam(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(events.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD", name)
	}
	return t, nil
}

// parseRange reads from and to. A missing to defaults to from.
func parseRange(c *gin.Context) (events.DateRange, error) {
	from, err := parseDateParam(c, "from")
	if err != nil {
		return events.DateRange{}, err
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		return events.DateRange{}, err
	}
	if to.IsZero() {
		to = from
	}
	if !from.IsZero() && to.Before(from) {
		return events.DateRange{}, fmt.Errorf("to is before from")
	}
	return events.DateRange{Start: from, End: to}, nil
}

func parseBool(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", name)
	}
	return b, nil
}

// splitList accepts both repeated parameters and comma-separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseFilter reads the event list query: q, status, segment, from, to and
// excludeCancelled.
func parseFilter(c *gin.Context) (events.Filter, error) {
	window, err := parseRange(c)
	if err != nil {
		return events.Filter{}, err
	}
	excludeCancelled, err := parseBool(c, "excludeCancelled")
	if err != nil {
		return events.Filter{}, err
	}
	f := events.Filter{
		Query:            c.Query("q"),
		Segments:         splitList(c.QueryArray("segment")),
		From:             window.Start,
		To:               window.End,
		ExcludeCancelled: excludeCancelled,
	}
	for _, s := range splitList(c.QueryArray("status")) {
		cat, ok := status.ParseCategory(s)
		if !ok {
			return events.Filter{}, fmt.Errorf("unknown status %q", s)
		}
		f.Statuses = append(f.Statuses, cat)
	}
	return f, nil
}
