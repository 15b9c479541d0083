// Package source contains one adapter per upstream venue or listing site.
// Every adapter maps its source's markup or API payload to canonical event
// records, applying the skip rules specific to that source before emission.
// Most adapters work from plain HTTP documents; ICA needs the browser-driven
// fetch capability and is skipped when none is available.
package source
