package timetable

import (
	"strings"
	"time"
)

// Canonical weekday names used across the engine. Intervals carry the full
// name rather than time.Weekday so that permissive pass-through of unknown
// day tokens (below) stays representable.
const (
	Monday    = "Monday"
	Tuesday   = "Tuesday"
	Wednesday = "Wednesday"
	Thursday  = "Thursday"
	Friday    = "Friday"
	Saturday  = "Saturday"
	Sunday    = "Sunday"
)

// Weekdays lists the canonical names in calendar order.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// compoundDays maps multi-day codes that cannot be resolved one token at a
// time. TH is Tuesday/Thursday by convention in the source data, not
// Thursday alone.
var compoundDays = map[string][]string{
	"MWF": {Monday, Wednesday, Friday},
	"MW":  {Monday, Wednesday},
	"TTH": {Tuesday, Thursday},
	"TH":  {Tuesday, Thursday},
}

var singleDays = map[string]string{
	"M":         Monday,
	"MON":       Monday,
	"MONDAY":    Monday,
	"T":         Tuesday,
	"TU":        Tuesday,
	"TUE":       Tuesday,
	"TUES":      Tuesday,
	"TUESDAY":   Tuesday,
	"W":         Wednesday,
	"WED":       Wednesday,
	"WEDNESDAY": Wednesday,
	"THU":       Thursday,
	"THUR":      Thursday,
	"THURS":     Thursday,
	"THURSDAY":  Thursday,
	"F":         Friday,
	"FRI":       Friday,
	"FRIDAY":    Friday,
	"S":         Saturday,
	"SAT":       Saturday,
	"SATURDAY":  Saturday,
	"SU":        Sunday,
	"SUN":       Sunday,
	"SUNDAY":    Sunday,
}

// ExpandDays normalizes a raw day-code string into canonical weekday names.
// Compound codes ("MWF", "TTH") expand to multiple days and slash-delimited
// lists ("M/W/F") are split and resolved token by token. Unrecognized tokens
// pass through capitalized instead of being rejected; upstream data quality
// is not guaranteed and a bad day code must not hide the row entirely.
func ExpandDays(code string) []string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var days []string
	add := func(day string) {
		if _, dup := seen[day]; dup {
			return
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	for _, token := range strings.Split(trimmed, "/") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		upper := strings.ToUpper(token)
		if expansion, ok := compoundDays[upper]; ok {
			for _, day := range expansion {
				add(day)
			}
			continue
		}
		if day, ok := singleDays[upper]; ok {
			add(day)
			continue
		}
		add(capitalize(token))
	}
	return days
}

// MatchesDay reports whether the day code covers the given weekday.
func MatchesDay(code string, day time.Weekday) bool {
	name := day.String()
	for _, expanded := range ExpandDays(code) {
		if expanded == name {
			return true
		}
	}
	return false
}

// IsCanonicalDay reports whether name is one of the seven weekday names.
func IsCanonicalDay(name string) bool {
	for _, day := range Weekdays {
		if day == name {
			return true
		}
	}
	return false
}

func capitalize(token string) string {
	lower := strings.ToLower(token)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
