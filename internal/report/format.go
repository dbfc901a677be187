package report

import (
	"fmt"
	"time"
)

// FormatDate renders a unix round date in UTC.
func FormatDate(unix int64) string {
	if unix == 0 {
		return "—"
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

// FormatLength renders a round length in seconds as m:ss.
func FormatLength(seconds float64) string {
	s := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
