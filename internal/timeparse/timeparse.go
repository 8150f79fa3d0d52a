// Package timeparse turns local tip-off time strings plus timezone hints
// into absolute UTC instants.
package timeparse

import (
	"regexp"
	"strings"
	"time"

	"scout-data-service/internal/timeutil"
)

// zoneNames maps US broadcast timezone abbreviations to IANA zone names.
// Standard and daylight variants map to the same zone; the zone database
// picks the correct offset for the date.
var zoneNames = map[string]string{
	"ET":  "America/New_York",
	"EST": "America/New_York",
	"EDT": "America/New_York",
	"CT":  "America/Chicago",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"MT":  "America/Denver",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"PT":  "America/Los_Angeles",
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
}

var trailingZoneRe = regexp.MustCompile(`(?i)\s*(ET|EST|EDT|CT|CST|CDT|MT|MST|MDT|PT|PST|PDT)\s*$`)

// timeLayouts are tried in order against the cleaned time string.
var timeLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04:05",
	"15:04",
}

const defaultHour = 19 // 7 PM Eastern when the time string is unparseable

// Resolve parses a YYYY-MM-DD date plus a local time string into a UTC
// instant. It never fails: on any parse problem it returns the date at 7 PM
// Eastern converted to UTC, because a game with an approximate time is still
// worth displaying.
//
// Zone precedence: abbreviation embedded as the trailing token of timeStr,
// then the explicit tzHint, then Eastern.
func Resolve(date, timeStr, tzHint string) time.Time {
	zone := ""
	if m := trailingZoneRe.FindStringSubmatch(timeStr); m != nil {
		zone = strings.ToUpper(m[1])
		timeStr = trailingZoneRe.ReplaceAllString(timeStr, "")
	} else if tzHint != "" {
		zone = strings.ToUpper(strings.TrimSpace(tzHint))
	}

	loc := locationFor(zone)
	timeStr = strings.TrimSpace(timeStr)

	for _, layout := range timeLayouts {
		parsed, err := time.ParseInLocation(timeutil.DateLayout+" "+layout, date+" "+timeStr, loc)
		if err == nil {
			return parsed.UTC()
		}
	}

	return defaultInstant(date)
}

// defaultInstant is the given date at 7 PM Eastern, in UTC. Falls back to the
// current date when even the date string is unparseable.
func defaultInstant(date string) time.Time {
	loc := locationFor("ET")
	day, err := time.ParseInLocation(timeutil.DateLayout, date, loc)
	if err != nil {
		day = time.Now().In(loc).Truncate(24 * time.Hour)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), defaultHour, 0, 0, 0, loc).UTC()
}

func locationFor(abbr string) *time.Location {
	name, ok := zoneNames[abbr]
	if !ok {
		name = "America/New_York"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
