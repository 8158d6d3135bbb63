package analytics

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDate reads the review date formats seen in exports. A blank or
// unreadable value yields the zero time.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
