package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/inspekt/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeCompleter struct {
	output string
	err    error
	prompt string
	calls  int
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.output, f.err
}

func newTestAnalyzer(t *testing.T, c *fakeCompleter) (*Analyzer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	a, err := NewAnalyzer(c, zap.New(core))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return a, logs
}

func TestAnalyze_validJSON(t *testing.T) {
	output := `{"summary":"Roof needs work","categories":[{"name":"Structural","issues":["Roof leaking"],"recommendations":["Replace shingles"]}],"priority_repairs":["Roof"]}`
	c := &fakeCompleter{output: output}
	a, logs := newTestAnalyzer(t, c)

	got, err := a.Analyze(context.Background(), "Roof leaking")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !strings.Contains(c.prompt, "Text: Roof leaking") {
		t.Errorf("prompt does not embed text: %q", c.prompt)
	}
	raw, ok := got.(json.RawMessage)
	if !ok {
		t.Fatalf("result type: got %T, want json.RawMessage", got)
	}
	var parsed models.Analysis
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if parsed.Summary != "Roof needs work" || len(parsed.Categories) != 1 || parsed.Categories[0].Issues[0] != "Roof leaking" {
		t.Errorf("parsed: got %+v", parsed)
	}
	if n := logs.FilterMessage("completion does not match the requested shape").Len(); n != 0 {
		t.Errorf("unexpected shape warning for well-formed output")
	}
}

func TestAnalyze_plainTextFallback(t *testing.T) {
	c := &fakeCompleter{output: "The roof is leaking badly."}
	a, _ := newTestAnalyzer(t, c)

	got, err := a.Analyze(context.Background(), "Roof leaking")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("result type: got %T, want map", got)
	}
	if m["summary"] != "The roof is leaking badly." || len(m) != 1 {
		t.Errorf("fallback: got %v", m)
	}
}

func TestAnalyze_truncatedJSONFallsBackWithWarning(t *testing.T) {
	c := &fakeCompleter{output: `{"summary":"Roof needs`}
	a, logs := newTestAnalyzer(t, c)

	got, err := a.Analyze(context.Background(), "Roof leaking")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok || m["summary"] != `{"summary":"Roof needs` {
		t.Errorf("fallback: got %#v", got)
	}
	if logs.FilterMessage("completion looks like truncated JSON, returning raw text as summary").Len() != 1 {
		t.Error("expected a truncation warning")
	}
}

func TestAnalyze_shapeMismatchStillReturned(t *testing.T) {
	c := &fakeCompleter{output: `{"findings":["Roof"]}`}
	a, logs := newTestAnalyzer(t, c)

	got, err := a.Analyze(context.Background(), "Roof leaking")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if string(got.(json.RawMessage)) != `{"findings":["Roof"]}` {
		t.Errorf("got %s", got)
	}
	if logs.FilterMessage("completion does not match the requested shape").Len() != 1 {
		t.Error("expected a shape warning")
	}
}

func TestAnalyze_noText(t *testing.T) {
	c := &fakeCompleter{output: "{}"}
	a, _ := newTestAnalyzer(t, c)

	for _, text := range []string{"", "   ", "\n\t\n"} {
		if _, err := a.Analyze(context.Background(), text); !errors.Is(err, models.ErrNoText) {
			t.Errorf("Analyze(%q): got %v, want ErrNoText", text, err)
		}
	}
	if c.calls != 0 {
		t.Errorf("completer called %d times for empty text", c.calls)
	}
}

func TestAnalyze_completerError(t *testing.T) {
	c := &fakeCompleter{err: errors.New("quota exceeded")}
	a, _ := newTestAnalyzer(t, c)

	_, err := a.Analyze(context.Background(), "Roof leaking")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("got %v, want wrapped completer error", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Water stains on ceiling")
	for _, want := range []string{
		"Home Inspection Analysis Expert",
		`"priority_repairs"`,
		"Text: Water stains on ceiling",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCombineText(t *testing.T) {
	if got := CombineText("notes", "from file"); got != "notes\nfrom file" {
		t.Errorf("got %q", got)
	}
	if got := CombineText("", "from file"); got != "\nfrom file" {
		t.Errorf("got %q", got)
	}
}
