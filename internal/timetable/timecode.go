package timetable

import (
	"fmt"
	"strings"
)

// MinutesPerDay bounds every minute-of-day value handled by this package.
const MinutesPerDay = 24 * 60

// defaultRangeMinutes is applied when a time-range string carries a single
// clock token and no end time. Some imported legacy rows store only a start
// time; the 60-minute default is a documented lossy accommodation for that
// data, not an inference the parser is confident about.
const defaultRangeMinutes = 60

// ClockRange is a parsed time range expressed in minutes from midnight.
// End is exclusive and always greater than Start.
type ClockRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
	// AssumedDuration marks ranges built from a single clock token via the
	// 60-minute default. Consumers surface it as a data-quality flag.
	AssumedDuration bool `json:"assumed_duration,omitempty"`
}

// ParseClock converts one clock token into a minute-of-day value.
// "7:00 AM", "7 pm", "13:30" and "9" are all accepted. When an AM/PM
// suffix is present the hour is read as 12-hour and converted; without a
// suffix the hour is taken literally as 24-hour, never guessed into the
// afternoon. Returns false for text with no usable digits or out-of-range
// components.
func ParseClock(text string) (int, bool) {
	token := strings.TrimSpace(text)
	if token == "" {
		return 0, false
	}

	upper := strings.ToUpper(token)
	meridiem := ""
	for _, suffix := range []string{"AM", "A.M.", "PM", "P.M."} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = string(suffix[0])
			upper = strings.TrimSpace(strings.TrimSuffix(upper, suffix))
			break
		}
	}

	hourPart := upper
	minutePart := ""
	if idx := strings.Index(upper, ":"); idx >= 0 {
		hourPart = strings.TrimSpace(upper[:idx])
		minutePart = strings.TrimSpace(upper[idx+1:])
	}

	hour, ok := parseDigits(hourPart)
	if !ok {
		return 0, false
	}
	minute := 0
	if minutePart != "" {
		minute, ok = parseDigits(minutePart)
		if !ok {
			return 0, false
		}
	}
	if minute < 0 || minute > 59 {
		return 0, false
	}

	switch meridiem {
	case "A":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "P":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, false
		}
	}

	return hour*60 + minute, true
}

// ParseRange parses a "start - end" time-range string. The two tokens are
// split on a single hyphen with optional surrounding whitespace. A lone
// clock token yields a range covering the 60-minute legacy default, marked
// with AssumedDuration. Returns false for unparseable text or for ranges
// that do not end after they start.
func ParseRange(text string) (ClockRange, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ClockRange{}, false
	}

	parts := strings.Split(trimmed, "-")
	switch len(parts) {
	case 1:
		start, ok := ParseClock(parts[0])
		if !ok {
			return ClockRange{}, false
		}
		end := start + defaultRangeMinutes
		if end >= MinutesPerDay {
			end = MinutesPerDay - 1
		}
		if end <= start {
			return ClockRange{}, false
		}
		return ClockRange{Start: start, End: end, AssumedDuration: true}, true
	case 2:
		start, ok := ParseClock(parts[0])
		if !ok {
			return ClockRange{}, false
		}
		end, ok := ParseClock(parts[1])
		if !ok {
			return ClockRange{}, false
		}
		if end <= start {
			return ClockRange{}, false
		}
		return ClockRange{Start: start, End: end}, true
	default:
		return ClockRange{}, false
	}
}

// FormatClock renders a minute-of-day value in the canonical 12-hour
// display form, e.g. "7:00 AM". FormatClock is the round-trip inverse of
// ParseClock for every valid minute value.
func FormatClock(minute int) string {
	minute = ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	hour := minute / 60
	min := minute % 60

	meridiem := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		display = hour - 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, min, meridiem)
}

// FormatRange renders a range in the canonical "H:MM AM - H:MM AM" form.
func FormatRange(start, end int) string {
	return FormatClock(start) + " - " + FormatClock(end)
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	value := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		value = value*10 + int(r-'0')
		if value > 9999 {
			return 0, false
		}
	}
	return value, true
}
