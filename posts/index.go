package posts

import (
	"sort"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the ISO-8601 forms accepted in front-matter.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByDateDescending returns a newly allocated copy of summaries ordered
// newest first. Parseable dates compare chronologically and come before
// unparseable ones, which compare as strings among themselves. Equal dates
// keep their input order.
func SortByDateDescending(summaries []Summary) []Summary {
	sorted := make([]Summary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newer(sorted[i].Date, sorted[j].Date)
	})
	return sorted
}

func newer(a, b string) bool {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case okA && okB:
		return ta.After(tb)
	case okA != okB:
		return okA
	default:
		return a > b
	}
}
