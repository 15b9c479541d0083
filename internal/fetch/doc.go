// Package fetch provides the document-fetching capabilities the source
// adapters are built over: a plain HTTP client returning queryable HTML
// trees, raw text, or decoded JSON, and an optional headless-browser variant
// for pages that render their listings client-side.
package fetch
