package notifier

import (
	"fmt"
	"os"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
)

// TwitterNotifier announces the weekly digest with a single tweet
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one announcement tweet for the digest
func (n *TwitterNotifier) Notify(digest Digest) error {
	_, _, err := n.client.Statuses.Update(formatAnnouncement(digest), nil)
	if err != nil {
		return fmt.Errorf("failed to post announcement: %w", err)
	}
	return nil
}

// formatAnnouncement formats the digest as a single tweet
func formatAnnouncement(digest Digest) string {
	tweet := fmt.Sprintf("London Culture, week of %s: %d talks, workshops, openings and socials.\n", digest.WeekOf, len(digest.Events))
	if digest.PageURL != "" {
		tweet += fmt.Sprintf("\n%s", digest.PageURL)
	}

	// Twitter limit is 280 characters
	if len(tweet) > 280 {
		tweet = tweet[:277] + "..."
	}
	return tweet
}
