package pipeline

import (
	"testing"

	"github.com/pfrederiksen/london-culture/internal/event"
)

func TestRulesExcluded(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name     string
		evt      event.Event
		excluded bool
	}{
		{"plain talk", event.Event{Title: "In Conversation: Design Futures", Category: "Talks"}, false},
		{"music category", event.Event{Title: "The Midnight Sessions", Category: "Music"}, true},
		{"one excluded tag among several", event.Event{Title: "Season Launch", Category: "Talks, Cinema"}, true},
		{"category case-insensitive", event.Event{Title: "Recital", Category: "Classical Music"}, true},
		{"performance word in title", event.Event{Title: "Gig: The Quiet Ones", Category: "Talks"}, true},
		{"family word in title", event.Event{Title: "Design Baby Morning", Category: "Workshops"}, true},
		{"livestream marker", event.Event{Title: "Artist Talk (Livestream)", Category: "Talks"}, true},
		{"no category", event.Event{Title: "Life Drawing Social"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Excluded(tt.evt); got != tt.excluded {
				t.Errorf("Excluded(%q) = %v, expected %v", tt.evt.Title, got, tt.excluded)
			}
		})
	}
}

func TestRulesZeroValueExcludesNothing(t *testing.T) {
	var rules Rules
	if rules.Excluded(event.Event{Title: "Gig: Concert (Livestream)", Category: "Music"}) {
		t.Error("expected empty rules to exclude nothing")
	}
}
