package notifier

import (
	"github.com/pfrederiksen/london-culture/internal/event"
)

// Digest is one week's outgoing digest: the rendered HTML body plus the
// events it covers, for channels that compose their own message.
type Digest struct {
	HTML    string
	Events  []event.Event
	WeekOf  string
	PageURL string
}

// Notifier defines the interface for sending a digest out on one channel
type Notifier interface {
	// Notify sends the digest
	Notify(digest Digest) error
}
