package notifier

import (
	"fmt"
)

// DryRunNotifier prints what would be sent without actually sending
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the digest that would be sent
func (n *DryRunNotifier) Notify(digest Digest) error {
	fmt.Printf("--- Digest: week of %s (%d events) ---\n", digest.WeekOf, len(digest.Events))
	fmt.Println(formatAnnouncement(digest))
	fmt.Printf("\n(HTML body: %d bytes)\n", len(digest.HTML))
	return nil
}
