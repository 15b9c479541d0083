// Package notifier sends the weekly digest out: by email through Resend,
// as a single announcement tweet, or to stdout for dry runs.
//
// Notifiers read their credentials from environment variables and fail
// construction, not delivery, when credentials are missing; callers decide
// whether that is a warning or an error.
package notifier
