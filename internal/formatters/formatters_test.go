package formatters

import (
	"strings"
	"testing"
	"time"

	"smartresume/internal/generate"
	"smartresume/internal/store"
)

func TestJSONFallbackForAnyType(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(map[string]int{"count": 3}, "json")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if !strings.Contains(out, `"count": 3`) {
		t.Errorf("output = %q", out)
	}
}

func TestResultTextFormatting(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(generate.Result{Success: true, Content: "A polished summary."}, "text")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if out != "A polished summary.\n" {
		t.Errorf("output = %q", out)
	}

	out, err = registry.Format(generate.Result{Success: false, Error: "Rate limit reached."}, "text")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if out != "Error: Rate limit reached.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestListResultTextFormatting(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(generate.ListResult{Success: true, Items: []string{"Go", "Kafka"}}, "text")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if out != "- Go\n- Kafka\n" {
		t.Errorf("output = %q", out)
	}
}

func TestResumeListTextFormatting(t *testing.T) {
	registry := NewFormatterRegistry()

	updated := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	summaries := []store.ResumeSummary{
		{ID: 2, Name: "Dana Smith", TargetRole: "Engineer", UpdatedAt: updated},
	}

	out, err := registry.Format(summaries, "text")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	for _, want := range []string{"2\t", "Dana Smith", "Engineer", "2026-03-14 09:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	out, err = registry.Format([]store.ResumeSummary{}, "text")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if out != "No saved resumes.\n" {
		t.Errorf("empty list output = %q", out)
	}
}

func TestUnknownFormatErrors(t *testing.T) {
	registry := NewFormatterRegistry()

	if _, err := registry.Format(generate.Result{}, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
