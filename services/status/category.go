package status

import "venuedesk/payload"

// Category is the canonical display status of an event or activity.
type Category string

const (
	Confirmado     Category = "confirmado"
	PorConfirmar   Category = "porConfirmar"
	Opcion1        Category = "opcion1"
	Opcion2        Category = "opcion2"
	Opcion3        Category = "opcion3"
	ReunionInterna Category = "reunionInterna"
	EventoInterno  Category = "eventoInterno"
	Cancelado      Category = "cancelado"
	Otros          Category = "otros"
)

// Categories lists every category in dashboard order.
var Categories = []Category{
	Confirmado,
	PorConfirmar,
	Opcion1,
	Opcion2,
	Opcion3,
	ReunionInterna,
	EventoInterno,
	Cancelado,
	Otros,
}

var labels = map[Category]string{
	Confirmado:     "Confirmado",
	PorConfirmar:   "Por confirmar",
	Opcion1:        "Opción 1",
	Opcion2:        "Opción 2",
	Opcion3:        "Opción 3",
	ReunionInterna: "Reunión interna",
	EventoInterno:  "Evento interno",
	Cancelado:      "Cancelado",
	Otros:          "Otros",
}

// Label is the text shown when no upstream wording is available.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return labels[Otros]
}

// IsBlocking reports whether the category holds a room for availability.
func (c Category) IsBlocking() bool {
	switch c {
	case Confirmado, PorConfirmar, ReunionInterna:
		return true
	}
	return false
}

// ParseCategory accepts a category name in any case, or one of the display
// labels, and reports whether it is known.
func ParseCategory(s string) (Category, bool) {
	key := payload.Compact(s)
	if key == "" {
		return "", false
	}
	for _, c := range Categories {
		if payload.Compact(string(c)) == key || payload.Compact(c.Label()) == key {
			return c, true
		}
	}
	return "", false
}
