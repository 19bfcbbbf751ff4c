package utils

import (
	"time"
)

const DateTimeLayout = "2006-01-02 15:04:05"

// LoadLocation resolves an IANA zone name, falling back to UTC.
func LoadLocation(timezone string) *time.Location {
	if timezone == "" {
		timezone = DefaultTimeZone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatEpochMillis floors milliseconds to whole seconds before formatting,
// so sub-second precision never rounds up.
func FormatEpochMillis(millis int64, loc *time.Location) string {
	seconds := millis / 1000
	if millis%1000 < 0 {
		seconds--
	}
	return time.Unix(seconds, 0).In(loc).Format(DateTimeLayout)
}
