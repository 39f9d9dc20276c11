package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"venuedesk/models"
	"venuedesk/services/events"
	"venuedesk/services/quote"
	"venuedesk/services/status"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Inspection is what the cores derive from one raw event.
type Inspection struct {
	Status     status.Classification `json:"status" yaml:"status"`
	Activities []models.ActivityView `json:"activities" yaml:"activities"`
	Lines      []quote.Line          `json:"lines" yaml:"lines"`
	Totals     quote.Totals          `json:"totals" yaml:"totals"`
	Resolution quote.Resolution      `json:"resolution" yaml:"resolution"`
	Segment    string                `json:"segment,omitempty" yaml:"segment,omitempty"`
	SegmentKey string                `json:"segmentKey,omitempty" yaml:"segmentKey,omitempty"`
}

// Inspect runs classification and reconciliation over an event and an
// optional quote.
func Inspect(event, quoteObj map[string]any) Inspection {
	cl := status.ClassifyEvent(event)
	if cl.Text == "" {
		cl.Text = cl.Category.Label()
	}
	segment := status.MarketSegmentLabel(event)
	return Inspection{
		Status:     cl,
		Activities: events.ActivityViews(event),
		Lines:      quote.EventLines(event),
		Totals:     quote.CalculateEventQuoteTotals(event),
		Resolution: quote.ResolveGrandTotal(event, quoteObj),
		Segment:    segment,
		SegmentKey: status.MarketSegmentKeyFromLabel(segment),
	}
}

func readObject(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

func writeInspection(w io.Writer, in Inspection, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(in)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(in)
}

func inspectCmd() *cobra.Command {
	var quotePath string
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "inspect <event.json>",
		Short: "Classify and price a raw event payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := readObject(args[0])
			if err != nil {
				return err
			}
			var quoteObj map[string]any
			if quotePath != "" {
				if quoteObj, err = readObject(quotePath); err != nil {
					return err
				}
			}
			return writeInspection(cmd.OutOrStdout(), Inspect(event, quoteObj), asYAML)
		},
	}
	cmd.Flags().StringVar(&quotePath, "quote", "", "Quote JSON file to reconcile against")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output YAML instead of JSON")
	return cmd
}
