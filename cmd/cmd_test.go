package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"venuedesk/services/quote"
	"venuedesk/services/status"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspect(t *testing.T) {
	event := map[string]any{
		"marketSegment": "Reserva Interna",
		"activities": []any{
			map[string]any{"status": "Cancelado"},
			map[string]any{"status": "Por confirmar", "services": []any{
				map[string]any{"priceTNI": 10.0, "quantity": 3.0},
			}},
		},
	}
	got := Inspect(event, map[string]any{"total": 99.0})
	if got.Status.Category != status.PorConfirmar || got.Status.Text != "Por confirmar" {
		t.Errorf("status = %+v", got.Status)
	}
	if got.SegmentKey != status.InternalMeetingSegmentKey {
		t.Errorf("segment key = %s", got.SegmentKey)
	}
	if got.Totals.GrandTotal != 30 || got.Resolution.Source != quote.SourceComputed || len(got.Lines) != 1 {
		t.Errorf("inspection = %+v", got)
	}
}

func TestInspectCommand(t *testing.T) {
	eventPath := writeFile(t, "event.json", `{"status":"Opción 2"}`)
	quotePath := writeFile(t, "quote.json", `{"data":{"grandTotal":"250.50"}}`)

	for _, asYAML := range []bool{false, true} {
		cmd := inspectCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		args := []string{eventPath, "--quote", quotePath}
		if asYAML {
			args = append(args, "--yaml")
		}
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("inspect (yaml=%v): %v", asYAML, err)
		}
		if !strings.Contains(out.String(), "opcion2") || !strings.Contains(out.String(), "250.5") {
			t.Errorf("output (yaml=%v) = %s", asYAML, out.String())
		}
	}
}

func TestInspectCommandMissingFile(t *testing.T) {
	cmd := inspectCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.json")})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a missing file")
	}
}
