package leadtime

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration the way the floor displays it, e.g.
// "2 hours 30 minutes". Sub-minute remainders are dropped.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	switch {
	case hours == 0 && minutes == 0:
		return "0 minutes"
	case hours == 0:
		return fmt.Sprintf("%d %s", minutes, plural("minute", minutes))
	case minutes == 0:
		return fmt.Sprintf("%d %s", hours, plural("hour", hours))
	default:
		return fmt.Sprintf("%d %s %d %s", hours, plural("hour", hours), minutes, plural("minute", minutes))
	}
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
