package notifier

import (
	"fmt"
	"os"
	"strings"

	"github.com/resend/resend-go/v2"
)

const defaultFromEmail = "London Culture <onboarding@resend.dev>"

// EmailNotifier sends the digest by email through Resend
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     []string
}

// NewEmailNotifier creates a new email notifier using environment variables
// Required environment variables:
// - RESEND_API_KEY
// - DIGEST_EMAIL (comma-separated recipient list)
// Optional:
// - FROM_EMAIL
func NewEmailNotifier() (*EmailNotifier, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	toList := os.Getenv("DIGEST_EMAIL")
	if apiKey == "" || toList == "" {
		return nil, fmt.Errorf("missing required email settings in environment variables")
	}

	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = defaultFromEmail
	}

	var to []string
	for _, addr := range strings.Split(toList, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("no recipients in DIGEST_EMAIL")
	}

	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}, nil
}

// Notify sends the digest HTML to every recipient
func (n *EmailNotifier) Notify(digest Digest) error {
	_, err := n.client.Emails.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("London Culture — Week of %s", digest.WeekOf),
		Html:    digest.HTML,
	})
	if err != nil {
		return fmt.Errorf("sending digest email: %w", err)
	}
	return nil
}
