package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/uniplan/timetable-api/internal/timetable"
)

// byDayCodes maps canonical weekday names onto RFC 5545 BYDAY codes.
var byDayCodes = map[string]string{
	timetable.Monday:    "MO",
	timetable.Tuesday:   "TU",
	timetable.Wednesday: "WE",
	timetable.Thursday:  "TH",
	timetable.Friday:    "FR",
	timetable.Saturday:  "SA",
	timetable.Sunday:    "SU",
}

var weekdayIndex = map[string]int{
	timetable.Monday:    0,
	timetable.Tuesday:   1,
	timetable.Wednesday: 2,
	timetable.Thursday:  3,
	timetable.Friday:    4,
	timetable.Saturday:  5,
	timetable.Sunday:    6,
}

// ICSExporter serializes merged timetable blocks as an iCalendar feed of
// weekly recurring events, importable into any calendar client.
type ICSExporter struct{}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{}
}

// Render emits one weekly VEVENT per block. weekOf anchors the first
// occurrence: each event starts on its block's weekday within the week
// beginning at weekOf's Monday. Blocks on pass-through day labels have no
// calendar date and are skipped.
func (e *ICSExporter) Render(calendarName string, blocks []timetable.Block, weekOf time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//uniplan//timetable-api//EN")
	if calendarName != "" {
		cal.SetXWRCalName(calendarName)
	}

	monday := startOfWeek(weekOf)
	for i, block := range blocks {
		dayOffset, ok := weekdayIndex[block.Day]
		if !ok {
			continue
		}
		code := byDayCodes[block.Day]

		date := monday.AddDate(0, 0, dayOffset)
		start := time.Date(date.Year(), date.Month(), date.Day(), block.Start/60, block.Start%60, 0, 0, weekOf.Location())
		end := time.Date(date.Year(), date.Month(), date.Day(), block.End/60, block.End%60, 0, 0, weekOf.Location())

		uid := fmt.Sprintf("%s-%s-%d@timetable", block.CourseCode, block.Day, i)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(time.Now().UTC())
		event.SetStartAt(start)
		event.SetEndAt(end)

		summary := block.CourseCode
		if block.Section != "" {
			summary += " " + block.Section
		}
		event.SetSummary(summary)
		if block.CourseName != "" {
			event.SetDescription(block.CourseName)
		}
		location := block.Room
		if block.Building != "" {
			location = block.Building + " " + block.Room
		}
		event.SetLocation(location)
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + code)
	}

	return []byte(cal.Serialize()), nil
}

// startOfWeek returns midnight on the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}
