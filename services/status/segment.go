package status

import (
	"strings"

	"venuedesk/payload"
)

// InternalMeetingSegmentKey is the key every internal meeting/reservation
// segment label collapses to.
const InternalMeetingSegmentKey = "reunion-interna"

var segmentKeys = []string{
	"marketSegment",
	"marketSegmentName",
	"marketSegmentDescription",
	"segment",
	"segmentName",
	"mercado",
}

// MarketSegmentLabel returns the free-text market segment of an event.
func MarketSegmentLabel(event map[string]any) string {
	return payload.FirstString(event, segmentKeys...)
}

// MarketSegmentKeyFromLabel turns a segment label into a stable filter key:
// accents stripped, lowercased, runs of non-alphanumerics replaced by a single
// hyphen, no leading or trailing hyphen.
func MarketSegmentKeyFromLabel(label string) string {
	s := payload.Normalize(label)
	if s == "" {
		return ""
	}
	if payload.ContainsAll(s, "reserva", "interna") || payload.ContainsAll(s, "reunion", "interna") {
		return InternalMeetingSegmentKey
	}

	var b strings.Builder
	hyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
