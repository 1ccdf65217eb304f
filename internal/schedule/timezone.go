package schedule

import (
	"strings"
	"time"
)

// Resolve maps an IANA timezone name to its location. Unknown or empty
// names fall back to the host-local rules so simulation can always proceed
// (degraded accuracy, never a failure).
func Resolve(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// CronWeekday maps a Go weekday to cron's day-of-week convention,
// 0=Sunday..6=Saturday. Kept as a named mapping rather than inline
// arithmetic so a calendar-library convention change cannot silently shift
// schedules.
func CronWeekday(wd time.Weekday) int {
	return int(wd) % 7
}
