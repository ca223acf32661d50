package timetable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uniplan/timetable-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildIntervalsOnePerDay(t *testing.T) {
	alloc := models.Allocation{
		ID:          7,
		CourseCode:  "CS101",
		CourseName:  "Intro to Computing",
		Section:     "A",
		Room:        "R101",
		Building:    "Main",
		FacultyName: strPtr("Cruz"),
		DayCode:     "MWF",
		TimeRange:   "9:00 AM - 10:00 AM",
	}

	intervals, diags := BuildIntervals(alloc)
	require.Empty(t, diags)
	require.Len(t, intervals, 3)
	require.Equal(t, Monday, intervals[0].Day)
	require.Equal(t, Wednesday, intervals[1].Day)
	require.Equal(t, Friday, intervals[2].Day)
	for _, iv := range intervals {
		require.Equal(t, int64(7), iv.AllocationID)
		require.Equal(t, 9*60, iv.Start)
		require.Equal(t, 10*60, iv.End)
		require.Equal(t, "CS101", iv.CourseCode)
		require.Equal(t, "Cruz", iv.FacultyName)
	}
}

func TestBuildIntervalsUnparseableTimeYieldsDiagnostic(t *testing.T) {
	alloc := models.Allocation{ID: 3, DayCode: "M", TimeRange: "TBA"}

	intervals, diags := BuildIntervals(alloc)
	require.Empty(t, intervals)
	require.Len(t, diags, 1)
	require.Equal(t, int64(3), diags[0].AllocationID)
	require.Equal(t, "time_range", diags[0].Field)
	require.Equal(t, "TBA", diags[0].Raw)
}

func TestBuildIntervalsEmptyDayCode(t *testing.T) {
	alloc := models.Allocation{ID: 4, DayCode: "  ", TimeRange: "9:00 AM - 10:00 AM"}

	intervals, diags := BuildIntervals(alloc)
	require.Empty(t, intervals)
	require.Len(t, diags, 1)
	require.Equal(t, "day_code", diags[0].Field)
}

func TestBuildIntervalsPropagatesAssumedDuration(t *testing.T) {
	alloc := models.Allocation{ID: 5, DayCode: "T", TimeRange: "3:00 PM"}

	intervals, diags := BuildIntervals(alloc)
	require.Empty(t, diags)
	require.Len(t, intervals, 1)
	require.True(t, intervals[0].AssumedDuration)
	require.Equal(t, 15*60, intervals[0].Start)
	require.Equal(t, 16*60, intervals[0].End)
}

func TestBuildAllIntervalsBadRowNeverBlocksBatch(t *testing.T) {
	allocs := []models.Allocation{
		{ID: 1, DayCode: "M", TimeRange: "8:00 AM - 9:00 AM"},
		{ID: 2, DayCode: "TTH", TimeRange: "garbled"},
		{ID: 3, DayCode: "F", TimeRange: "1:00 PM - 2:30 PM"},
	}

	intervals, diags := BuildAllIntervals(allocs)
	require.Len(t, intervals, 2)
	require.Len(t, diags, 1)
	require.Equal(t, int64(2), diags[0].AllocationID)
}

func TestIntervalTimeLabel(t *testing.T) {
	iv := Interval{Start: 9 * 60, End: 10*60 + 30}
	require.Equal(t, "9:00 AM - 10:30 AM", iv.TimeLabel())
}
