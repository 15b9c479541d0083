package pipeline

import (
	"strings"

	"github.com/pfrederiksen/london-culture/internal/event"
)

// Rules holds the exclusion configuration applied to every collected event.
// The filter is taste, not correctness: it removes whole programme strands
// (gigs, cinema, kids programming) that the adapters cannot filter reliably
// on their own because sources label them inconsistently.
type Rules struct {
	// ExcludedCategories matches lowercased raw source categories. An
	// event whose comma-separated category list contains any entry here
	// is dropped.
	ExcludedCategories map[string]bool

	// PerformanceWords and FamilyWords match anywhere in the lowercased
	// title.
	PerformanceWords []string
	FamilyWords      []string

	// LivestreamMarker drops online-only listings by title marker.
	LivestreamMarker string
}

// DefaultRules returns the standard exclusion set.
func DefaultRules() Rules {
	return Rules{
		ExcludedCategories: map[string]bool{
			"music":                    true,
			"cinema":                   true,
			"film":                     true,
			"gigs":                     true,
			"live events":              true,
			"music / performance":      true,
			"classical music":          true,
			"contemporary music":       true,
			"performing & visual arts": true,
		},
		PerformanceWords: []string{"concert", "gig:", "dj set", "live band"},
		FamilyWords: []string{
			"family workshop", "design baby", "kids", "children",
			"toddler", "baby", "under 5", "school of", "schools live",
			"play after school", "sound explorers", "mini jam",
			"teacher drop-in", "ks1", "ks2", "eyfs",
		},
		LivestreamMarker: "(livestream)",
	}
}

// Excluded reports whether e matches any exclusion rule.
func (r Rules) Excluded(e event.Event) bool {
	title := strings.ToLower(e.Title)

	if r.LivestreamMarker != "" && strings.Contains(title, r.LivestreamMarker) {
		return true
	}

	// Sources like the Barbican emit several comma-joined tags; one
	// excluded tag is enough.
	for _, part := range strings.Split(e.Category, ",") {
		if r.ExcludedCategories[strings.ToLower(strings.TrimSpace(part))] {
			return true
		}
	}

	for _, w := range r.PerformanceWords {
		if strings.Contains(title, w) {
			return true
		}
	}
	for _, w := range r.FamilyWords {
		if strings.Contains(title, w) {
			return true
		}
	}
	return false
}
