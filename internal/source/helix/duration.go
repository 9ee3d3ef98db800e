package helix

import (
	"fmt"
	"time"
)

// LiveDuration formats the time elapsed since startedAt as HH:MM. Hours are not
// wrapped into days. It returns "" when startedAt is not an RFC 3339 timestamp.
func LiveDuration(startedAt string, now time.Time) string {
	start, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return ""
	}

	diff := now.Sub(start)
	if diff < 0 {
		diff = 0
	}

	totalMinutes := int64(diff / time.Minute)
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
