package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/london-culture/internal/event"
)

func sampleResult() *OutputResult {
	return &OutputResult{
		CheckedAt: time.Date(2026, time.February, 12, 9, 0, 0, 0, time.UTC),
		Events: []event.Event{
			{
				Title:     "Life Drawing Social",
				Venue:     "Rich Mix",
				URL:       "https://richmix.org.uk/event/life-drawing-social/",
				StartDate: time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
				IsFree:    true,
				Area:      "Shoreditch",
			},
			{
				Title: "Artist Film Season",
				Venue: "Rich Mix",
				URL:   "https://richmix.org.uk/event/now-showing/",
			},
		},
		EventCount: 2,
		PagePath:   "public/index.html",
	}
}

func TestWriteOutputText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false); err != nil {
		t.Fatalf("failed to write output: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Life Drawing Social",
		"[free]",
		"Date TBC",
		"Total: 2 events",
		"public/index.html",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteOutputTextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true); err != nil {
		t.Fatalf("failed to write output: %v", err)
	}
	if !strings.Contains(buf.String(), "URL: https://richmix.org.uk/event/life-drawing-social/") {
		t.Error("expected verbose output to include URLs")
	}
}

func TestWriteOutputTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := &OutputResult{CheckedAt: time.Now()}
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("failed to write output: %v", err)
	}
	if !strings.Contains(buf.String(), "No events found.") {
		t.Errorf("expected empty-state message, got %q", buf.String())
	}
}

func TestWriteOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, false); err != nil {
		t.Fatalf("failed to write output: %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.EventCount != 2 || len(decoded.Events) != 2 {
		t.Errorf("unexpected decoded result: %+v", decoded)
	}
	if decoded.Events[0].Title != "Life Drawing Social" {
		t.Errorf("unexpected first event %q", decoded.Events[0].Title)
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("xml"), false); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
