package timetable

import (
	"github.com/uniplan/timetable-api/internal/models"
)

// Interval is a single (day, start, end) occupancy span derived from one
// allocation for one expanded day. Intervals are recomputed from raw
// allocation rows on every read and never persisted. Course, section, room
// and faculty are carried along so grid cells, merged blocks and conflict
// reports can be rendered without another lookup.
type Interval struct {
	AllocationID int64  `json:"allocation_id"`
	Day          string `json:"day"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	Section      string `json:"section"`
	Room         string `json:"room"`
	Building     string `json:"building"`
	FacultyName  string `json:"faculty_name,omitempty"`
	// AssumedDuration propagates the single-token 60-minute parsing default
	// so downstream views can flag the row.
	AssumedDuration bool `json:"assumed_duration,omitempty"`
}

// TimeLabel renders the interval's span in the canonical display form.
func (iv Interval) TimeLabel() string {
	return FormatRange(iv.Start, iv.End)
}

// Diagnostic records one allocation row that could not contribute intervals.
// Unparseable rows are common in imported legacy data; they are excluded
// from computation and reported, never treated as batch failures.
type Diagnostic struct {
	AllocationID int64  `json:"allocation_id"`
	Field        string `json:"field"`
	Raw          string `json:"raw"`
	Reason       string `json:"reason"`
}

// BuildIntervals derives canonical intervals from one allocation, one per
// expanded day. An unparseable time range yields zero intervals and a
// diagnostic instead of an error.
func BuildIntervals(alloc models.Allocation) ([]Interval, []Diagnostic) {
	days := ExpandDays(alloc.DayCode)
	if len(days) == 0 {
		return nil, []Diagnostic{{
			AllocationID: alloc.ID,
			Field:        "day_code",
			Raw:          alloc.DayCode,
			Reason:       "empty day code",
		}}
	}

	span, ok := ParseRange(alloc.TimeRange)
	if !ok {
		return nil, []Diagnostic{{
			AllocationID: alloc.ID,
			Field:        "time_range",
			Raw:          alloc.TimeRange,
			Reason:       "unparseable time range",
		}}
	}

	intervals := make([]Interval, 0, len(days))
	for _, day := range days {
		intervals = append(intervals, Interval{
			AllocationID:    alloc.ID,
			Day:             day,
			Start:           span.Start,
			End:             span.End,
			CourseCode:      alloc.CourseCode,
			CourseName:      alloc.CourseName,
			Section:         alloc.Section,
			Room:            alloc.Room,
			Building:        alloc.Building,
			FacultyName:     alloc.Faculty(),
			AssumedDuration: span.AssumedDuration,
		})
	}
	return intervals, nil
}

// BuildAllIntervals derives intervals for a whole allocation batch.
// Diagnostics accumulate per bad row; one malformed allocation never blocks
// the rest.
func BuildAllIntervals(allocs []models.Allocation) ([]Interval, []Diagnostic) {
	var intervals []Interval
	var diags []Diagnostic
	for _, alloc := range allocs {
		ivs, ds := BuildIntervals(alloc)
		intervals = append(intervals, ivs...)
		diags = append(diags, ds...)
	}
	return intervals, diags
}
