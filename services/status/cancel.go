package status

import (
	"strings"

	"venuedesk/payload"
)

var cancelFlagKeys = []string{"isCancelled", "cancelled", "isCanceled", "canceled"}

// Status-ish fields known to appear on events, activities, rooms and services.
var cancelStatusKeys = []string{
	"status",
	"statusName",
	"statusDescription",
	"activityStatus",
	"eventStatus",
	"bookingStatus",
	"roomStatus",
	"serviceStatus",
	"estado",
	"estatus",
	"state",
}

var cancelTokens = []string{"cancelado", "cancelled", "anulado"}

func isCancelText(v any) bool {
	s := payload.Normalize(payload.Text(v))
	return s != "" && payload.ContainsAny(s, cancelTokens...)
}

// IsItemCancelled reports whether an event, activity or line item is cancelled.
// Besides the explicit flags and the known status fields, every property whose
// key mentions "status" or "state" is inspected so that status fields the
// upstream adds later are still honoured.
func IsItemCancelled(item map[string]any) bool {
	if item == nil {
		return false
	}
	for _, k := range cancelFlagKeys {
		if payload.Truthy(item[k]) {
			return true
		}
	}
	for _, k := range cancelStatusKeys {
		if isCancelText(item[k]) {
			return true
		}
	}
	for k, v := range item {
		lk := strings.ToLower(k)
		if !strings.Contains(lk, "status") && !strings.Contains(lk, "state") {
			continue
		}
		if isCancelText(v) {
			return true
		}
	}
	return false
}
