package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// testToday pins year inference and past-event filtering for fixture tests.
var testToday = time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

func loadDoc(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base     string
		href     string
		expected string
	}{
		{"https://example.org", "/events/talk", "https://example.org/events/talk"},
		{"https://example.org", "https://other.org/talk", "https://other.org/talk"},
		{"https://example.org", "", ""},
	}

	for _, tt := range tests {
		if got := absoluteURL(tt.base, tt.href); got != tt.expected {
			t.Errorf("absoluteURL(%q, %q) = %q, expected %q", tt.base, tt.href, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected short string untouched, got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Errorf("expected 'abc', got %q", got)
	}
	// Multi-byte runes must not be split.
	if got := truncate("éclat", 4); got != "écla" {
		t.Errorf("expected four runes, got %q", got)
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("  In   Conversation:\n\tDesign Futures  ")
	if got != "In Conversation: Design Futures" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}
}
