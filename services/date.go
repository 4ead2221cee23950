package services

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the accepted start-date formats: the HTML5 date input, then
// the dotted and compact forms used in file names.
var dateLayouts = []string{"2006-01-02", "2006.01.02", "20060102"}

// ParseDate parses a calendar date at midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, dateStr); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
}
