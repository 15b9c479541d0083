package source

import (
	"context"
	"strings"

	"github.com/pfrederiksen/london-culture/internal/event"
)

// maxDescription caps event descriptions at the teaser length the sites use
// themselves.
const maxDescription = 200

// Source turns one upstream listing into zero or more canonical events.
// Implementations are independent and share no state; a Fetch error means
// the source contributed whatever it had parsed so far (usually nothing),
// and never affects other sources.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]event.Event, error)
}

// absoluteURL resolves href against base when the source emits
// site-relative links.
func absoluteURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return base + href
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// cleanText collapses the whitespace goquery keeps from markup indentation.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
