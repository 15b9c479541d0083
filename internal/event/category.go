package event

import "strings"

// Buckets are the display categories the page and email facet on, in fixed
// presentation order.
var Buckets = []string{"Talks", "Workshops", "Openings", "Social", "Art & Design", "Other"}

type bucketRule struct {
	bucket   string
	keywords []string
}

// First match wins, so "panel discussion + workshop" files under Talks.
var bucketRules = []bucketRule{
	{"Talks", []string{"talk", "lecture", "conversation", "panel", "discussion"}},
	{"Workshops", []string{"workshop", "class", "course", "drawing"}},
	{"Openings", []string{"opening", "private view", "exhibition"}},
	{"Social", []string{"network", "social", "meet", "supper"}},
	{"Art & Design", []string{"art", "visual", "design"}},
}

// NormalizeCategory maps a source's raw category label to one display
// bucket. The bucket is a filter facet only; exclusion decisions never look
// at it.
func NormalizeCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range bucketRules {
		for _, kw := range rule.keywords {
			if strings.Contains(c, kw) {
				return rule.bucket
			}
		}
	}
	return "Other"
}
