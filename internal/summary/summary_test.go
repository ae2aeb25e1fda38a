package summary

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/querybox-dev/querybox/internal/api"
)

func TestAssemble(t *testing.T) {
	payload := &api.SummaryPayload{
		FinalScore:     7.4,
		TotalQuestions: 5,
		Strengths:      []string{"Clear communication"},
		Improvements:   []string{"More examples"},
		Resources:      []string{"System design practice"},
		SessionID:      "abc-123",
		Role:           "Software Engineer",
		CompletedAt:    "2025-06-01T12:00:00",
	}

	s := Assemble(payload)
	if s.OverallScore != 7.4 {
		t.Errorf("OverallScore: got %v, want 7.4", s.OverallScore)
	}
	if s.Weaknesses[0] != "More examples" {
		t.Errorf("Weaknesses: got %v", s.Weaknesses)
	}
	if s.SessionID != "abc-123" || s.Role != "Software Engineer" {
		t.Errorf("provenance: got %q / %q", s.SessionID, s.Role)
	}
}

func TestAssembleFillsMissingArrays(t *testing.T) {
	s := Assemble(&api.SummaryPayload{FinalScore: 5, TotalQuestions: 2})
	if s.Strengths == nil || s.Weaknesses == nil || s.Resources == nil {
		t.Error("nil arrays should be normalized to empty slices")
	}
	if len(s.Strengths) != 0 {
		t.Errorf("Strengths: got %v, want empty", s.Strengths)
	}
}

func TestFallback(t *testing.T) {
	s := Fallback("abc-123", "Data Analyst", 6, 5)
	if s.OverallScore != 6 || s.TotalQuestions != 5 {
		t.Errorf("scores: got %v/%d", s.OverallScore, s.TotalQuestions)
	}
	if !reflect.DeepEqual(s.Strengths, []string{"Completed the interview"}) {
		t.Errorf("Strengths: got %v", s.Strengths)
	}
	if !reflect.DeepEqual(s.Weaknesses, []string{"Summary generation failed"}) {
		t.Errorf("Weaknesses: got %v", s.Weaknesses)
	}
	if !reflect.DeepEqual(s.Resources, []string{"Please try again"}) {
		t.Errorf("Resources: got %v", s.Resources)
	}
}

func TestExportRoundTrip(t *testing.T) {
	original := &Summary{
		OverallScore:   8.2,
		TotalQuestions: 5,
		Strengths:      []string{"a", "b"},
		Weaknesses:     []string{"c"},
		Resources:      []string{"d", "e"},
		SessionID:      "abc-123",
		Role:           "Product Manager",
		CompletedAt:    "2025-06-01T12:00:00",
	}

	var buf bytes.Buffer
	if err := Export(&buf, original); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(parsed, original) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", parsed, original)
	}
}

func TestExportDeterministic(t *testing.T) {
	s := Fallback("abc", "Software Engineer", 7, 3)

	var a, b bytes.Buffer
	if err := Export(&a, s); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if err := Export(&b, s); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("identical Summary state should export identical bytes")
	}
}

func TestExportFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, Fallback("abc", "r", 5, 2)); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := buf.String()
	for _, field := range []string{`"overallScore"`, `"totalQuestions"`, `"strengths"`, `"weaknesses"`, `"resources"`, `"sessionId"`} {
		if !strings.Contains(out, field) {
			t.Errorf("artifact missing field %s", field)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, Fallback("abc", "r", 5, 2))
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.HasPrefix(ExportFileName(time.Now()), "interview-summary-") {
		t.Error("unexpected artifact name convention")
	}
}
