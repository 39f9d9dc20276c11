package status

import (
	"strings"

	"venuedesk/payload"
)

// Key names under which an activity carries its status label.
var activityStatusKeys = []string{
	"status",
	"statusName",
	"activityStatus",
	"statusDescription",
	"estado",
	"estatus",
}

// Key names under which an event carries its own status label.
var eventStatusKeys = []string{
	"status",
	"eventStatus",
	"statusName",
	"statusDescription",
	"bookingStatus",
	"estado",
	"estatus",
	"state",
}

// ClassifyStatusText maps one upstream status label to a Category. Rules are
// checked in order and the first match wins.
func ClassifyStatusText(raw string) Category {
	s := payload.Normalize(raw)
	if s == "" {
		return Otros
	}
	c := payload.Compact(raw)

	switch {
	case payload.ContainsAny(s, "cancelado", "cancelada"):
		return Cancelado
	case payload.ContainsAll(s, "reunion", "interna") || strings.Contains(c, "reunioninterna"):
		return ReunionInterna
	case payload.ContainsAll(s, "reserva", "interna") || strings.Contains(c, "reservainterna"):
		return ReunionInterna
	case payload.ContainsAll(s, "evento", "interno") || strings.Contains(c, "eventointerno"):
		return EventoInterno
	// Highest option number first.
	case strings.Contains(s, "opcion 3") || strings.Contains(c, "opcion3"):
		return Opcion3
	case strings.Contains(s, "opcion 2") || strings.Contains(c, "opcion2"):
		return Opcion2
	case strings.Contains(s, "opcion 1") || strings.Contains(c, "opcion1"):
		return Opcion1
	case payload.ContainsAny(s, "por confirmar", "confirmar"):
		return PorConfirmar
	case strings.Contains(s, "confirmado") && !strings.Contains(s, "confirmar"):
		return Confirmado
	}
	return Otros
}

// Classification is a category together with the upstream wording it came from.
type Classification struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// ActivityStatus returns the raw status label of an activity.
func ActivityStatus(activity map[string]any) string {
	return payload.FirstString(activity, activityStatusKeys...)
}

// EventOwnStatus returns the raw status label stored on the event itself.
func EventOwnStatus(event map[string]any) string {
	return payload.FirstString(event, eventStatusKeys...)
}

// Activities returns the activity objects of an event in upstream order.
func Activities(event map[string]any) []map[string]any {
	return payload.Objects(event["activities"])
}

// ActivityStatuses classifies every activity of the event that carries a
// status. A cancelled activity counts as Cancelado whatever its label says,
// so it can never confirm the event.
func ActivityStatuses(event map[string]any) []Classification {
	var out []Classification
	for _, a := range Activities(event) {
		if cl, ok := ClassifyActivity(a); ok {
			out = append(out, cl)
		}
	}
	return out
}

// ClassifyActivity classifies a single activity. ok is false when the
// activity has no status label and is not cancelled.
func ClassifyActivity(activity map[string]any) (Classification, bool) {
	text := ActivityStatus(activity)
	if IsItemCancelled(activity) {
		if !isCancelText(text) && ClassifyStatusText(text) != Cancelado {
			text = Cancelado.Label()
		}
		return Classification{Category: Cancelado, Text: text}, true
	}
	if text == "" {
		return Classification{}, false
	}
	return Classification{Category: ClassifyStatusText(text), Text: text}, true
}

// aggregate folds per-activity classifications into the event status:
//
//	A. any Confirmado wins;
//	B. all Cancelado gives Cancelado;
//	C. all sharing one category gives that category;
//	D. otherwise the first non-cancelled activity, or the first activity.
//
// The returned pair is the activity that decided the outcome, so category and
// display text always agree.
func aggregate(items []Classification) (Classification, bool) {
	if len(items) == 0 {
		return Classification{}, false
	}
	for _, it := range items {
		if it.Category == Confirmado {
			return it, true
		}
	}

	allCancelled, allSame := true, true
	for _, it := range items {
		if it.Category != Cancelado {
			allCancelled = false
		}
		if it.Category != items[0].Category {
			allSame = false
		}
	}
	if allCancelled || allSame {
		return items[0], true
	}

	for _, it := range items {
		if it.Category != Cancelado {
			return it, true
		}
	}
	// Unreachable after rule B; kept so the fold is total.
	return items[0], true
}

// ClassifyEvent derives the event status from its activities, falling back to
// the event's own status label when no activity yields one.
func ClassifyEvent(event map[string]any) Classification {
	if cl, ok := aggregate(ActivityStatuses(event)); ok {
		return cl
	}
	text := EventOwnStatus(event)
	return Classification{Category: ClassifyStatusText(text), Text: text}
}

// ClassifyEventStatus returns the canonical category of an event.
func ClassifyEventStatus(event map[string]any) Category {
	return ClassifyEvent(event).Category
}

// EventStatusText returns the upstream wording of the status that decided the
// event category, or the category label when upstream gave none.
func EventStatusText(event map[string]any) string {
	cl := ClassifyEvent(event)
	if cl.Text == "" {
		return cl.Category.Label()
	}
	return cl.Text
}
