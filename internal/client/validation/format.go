package validation

import (
	"fmt"
	"strings"
)

// FormatDuration renders a duration in seconds as human-readable text such
// as "1 hour and 30 minutes". Zero-valued units are omitted, seconds are
// dropped entirely once hours are present, the remaining parts are joined
// with "and", and a zero duration falls back to "0 seconds".
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string

	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, plural(hours, "hour")))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, plural(minutes, "minute")))
	}
	if secs > 0 && hours == 0 {
		parts = append(parts, fmt.Sprintf("%d %s", secs, plural(secs, "second")))
	}

	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " and ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
