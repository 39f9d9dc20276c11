package quote

import (
	"math"
	"regexp"

	"venuedesk/payload"
)

// GrandTotalSource tells where a resolved grand total came from.
type GrandTotalSource string

const (
	SourceComputed GrandTotalSource = "computed"
	SourceProvided GrandTotalSource = "provided"
	SourceFallback GrandTotalSource = "fallback"
)

// Key names that usually hold an event or quote grand total, most specific first.
var totalKeys = []string{
	"totalAmount",
	"grandTotal",
	"eventTotal",
	"total",
	"totalTI",
	"totalWithTax",
	"totalPrice",
	"amountTotal",
	"quoteTotal",
	"totalQuote",
}

var totalKeyPattern = regexp.MustCompile(`(?i)total`)

// Sub-paths of the event and of the quote searched for a provided total, in
// order of preference.
var (
	quotePaths = [][]string{
		{},
		{"totals"},
		{"summary"},
		{"quote"},
		{"quote", "totals"},
		{"data"},
		{"data", "totals"},
		{"data", "summary"},
		{"financial"},
		{"financialSummary"},
		{"budget"},
	}
	eventPaths = [][]string{
		{},
		{"totals"},
		{"summary"},
		{"financial"},
		{"financialSummary"},
		{"quote"},
		{"quote", "totals"},
		{"quoteSummary"},
		{"budget"},
	}
)

// Resolution explains how an event grand total was chosen.
type Resolution struct {
	GrandTotal    float64          `json:"grandTotal"`
	Source        GrandTotalSource `json:"source"`
	Computed      float64          `json:"computed"`
	Provided      float64          `json:"provided,omitempty"`
	ProvidedFound bool             `json:"providedFound"`
}

func candidateSources(event, quote map[string]any) []map[string]any {
	var out []map[string]any
	add := func(root map[string]any, paths [][]string) {
		if root == nil {
			return
		}
		for _, p := range paths {
			if m, ok := payload.Object(payload.Path(root, p...)); ok {
				out = append(out, m)
			}
		}
	}
	add(event, eventPaths[:1])
	add(quote, quotePaths)
	add(event, eventPaths[1:])
	return out
}

// ProvidedGrandTotal looks for a total embedded in the event or quote payload:
// first by well-known key in every candidate source, then by a deep scan of
// each source for any key containing "total".
func ProvidedGrandTotal(event, quote map[string]any) (float64, bool) {
	sources := candidateSources(event, quote)
	for _, src := range sources {
		if n, ok := payload.FirstNumber(src, totalKeys...); ok {
			return n, true
		}
	}
	for _, src := range sources {
		if n, ok := payload.DeepFindNumber(src, totalKeyPattern.MatchString, payload.DefaultMaxDepth); ok {
			return n, true
		}
	}
	return 0, false
}

// ResolveGrandTotal picks the authoritative grand total of an event. Line
// items win whenever they produce a positive total; otherwise a total found
// in the payload is used; otherwise the computed value, possibly zero.
func ResolveGrandTotal(event, quote map[string]any) Resolution {
	r := Resolution{}
	if event != nil {
		r.Computed = CalculateEventQuoteTotals(event).GrandTotal
	}
	r.Provided, r.ProvidedFound = ProvidedGrandTotal(event, quote)

	switch {
	case HasLineItems(event) && r.Computed > 0:
		r.GrandTotal, r.Source = r.Computed, SourceComputed
	case r.ProvidedFound && !math.IsInf(r.Provided, 0) && !math.IsNaN(r.Provided):
		r.GrandTotal, r.Source = r.Provided, SourceProvided
	default:
		r.GrandTotal, r.Source = r.Computed, SourceFallback
	}
	return r
}

// ResolveEventQuoteGrandTotal returns the authoritative grand total of an event.
func ResolveEventQuoteGrandTotal(event, quote map[string]any) float64 {
	return ResolveGrandTotal(event, quote).GrandTotal
}
