package quote

import (
	"venuedesk/payload"
	"venuedesk/services/status"
)

// Totals are recomputed from line items on every call; they are never stored.
type Totals struct {
	TotalNet      float64 `json:"totalNet"`
	TotalDiscount float64 `json:"totalDiscount"`
	TotalTax      float64 `json:"totalTax"`
	GrandTotal    float64 `json:"grandTotal"`
}

// LineKind distinguishes room lines from service lines.
type LineKind string

const (
	RoomLine    LineKind = "room"
	ServiceLine LineKind = "service"
)

// Line is one priced room or service line of an event.
type Line struct {
	Activity  int         `json:"activity"`
	Kind      LineKind    `json:"kind"`
	Name      string      `json:"name"`
	Quantity  float64     `json:"quantity"`
	Cancelled bool        `json:"cancelled"`
	Counted   bool        `json:"counted"`
	Amounts   ItemAmounts `json:"amounts"`
}

var lineNameKeys = []string{"name", "roomName", "serviceName", "description", "title"}

// EventLines lists every room and service line of the event in upstream order.
// Lines under a cancelled activity are reported as cancelled.
func EventLines(event map[string]any) []Line {
	var lines []Line
	for i, activity := range status.Activities(event) {
		activityCancelled := status.IsItemCancelled(activity)
		for _, room := range payload.Objects(activity["rooms"]) {
			lines = append(lines, newLine(i, RoomLine, room, 1, activityCancelled))
		}
		for _, service := range payload.Objects(activity["services"]) {
			lines = append(lines, newLine(i, ServiceLine, service, ServiceQuantity(service), activityCancelled))
		}
	}
	return lines
}

func newLine(activity int, kind LineKind, item map[string]any, qty float64, parentCancelled bool) Line {
	l := Line{
		Activity:  activity,
		Kind:      kind,
		Name:      payload.FirstString(item, lineNameKeys...),
		Quantity:  qty,
		Cancelled: parentCancelled || status.IsItemCancelled(item),
		Amounts:   CalculateItemAmounts(item, qty),
	}
	l.Counted = !l.Cancelled && l.Amounts.counts()
	return l
}

// HasLineItems reports whether any activity of the event lists a room or a
// service, cancelled or not.
func HasLineItems(event map[string]any) bool {
	for _, activity := range status.Activities(event) {
		if len(payload.List(activity["rooms"])) > 0 || len(payload.List(activity["services"])) > 0 {
			return true
		}
	}
	return false
}

// SumLines accumulates the counted lines. GrandTotal is net minus discount
// plus tax.
func SumLines(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		if !l.Counted {
			continue
		}
		t.TotalNet += l.Amounts.Net
		t.TotalDiscount += l.Amounts.Discount
		t.TotalTax += l.Amounts.Tax
	}
	t.GrandTotal = t.TotalNet - t.TotalDiscount + t.TotalTax
	return t
}

// CalculateEventQuoteTotals sums the non-cancelled room and service lines of
// the non-cancelled activities of an event.
func CalculateEventQuoteTotals(event map[string]any) Totals {
	return SumLines(EventLines(event))
}
