package timetable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uniplan/timetable-api/internal/models"
)

func allocationFixture(id int64, room, dayCode, timeRange string) models.Allocation {
	return models.Allocation{
		ID:         id,
		CourseCode: "CS101",
		Section:    "A",
		Room:       room,
		DayCode:    dayCode,
		TimeRange:  timeRange,
	}
}

func TestFindConflictsOverlapByRoom(t *testing.T) {
	existing := []Interval{
		{AllocationID: 1, Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R101"},
	}
	proposal := Proposal{Day: Monday, Start: 9*60 + 30, End: 10*60 + 30, Room: "R101"}

	conflicts := FindConflicts(ByRoom, proposal, existing, 0)
	require.Len(t, conflicts, 1)
	require.Equal(t, int64(1), conflicts[0].AllocationID)
}

func TestFindConflictsBackToBackIsLegal(t *testing.T) {
	existing := []Interval{
		{AllocationID: 1, Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R101"},
	}
	after := Proposal{Day: Monday, Start: 10 * 60, End: 11 * 60, Room: "R101"}
	before := Proposal{Day: Monday, Start: 8 * 60, End: 9 * 60, Room: "R101"}

	require.Empty(t, FindConflicts(ByRoom, after, existing, 0))
	require.Empty(t, FindConflicts(ByRoom, before, existing, 0))
}

func TestFindConflictsRequiresSameDiscriminant(t *testing.T) {
	existing := []Interval{
		{AllocationID: 1, Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R101", FacultyName: "Cruz"},
	}
	otherRoom := Proposal{Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R102", FacultyName: "Cruz"}

	require.Empty(t, FindConflicts(ByRoom, otherRoom, existing, 0))
	require.Len(t, FindConflicts(ByFaculty, otherRoom, existing, 0), 1)
}

func TestFindConflictsCaseInsensitiveDiscriminant(t *testing.T) {
	existing := []Interval{
		{AllocationID: 1, Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "r101"},
	}
	proposal := Proposal{Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R101"}

	require.Len(t, FindConflicts(ByRoom, proposal, existing, 0), 1)
}

func TestFindConflictsExcludesSelf(t *testing.T) {
	existing := []Interval{
		{AllocationID: 5, Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R101"},
	}
	proposal := Proposal{Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R101"}

	require.Empty(t, FindConflicts(ByRoom, proposal, existing, 5))
}

func TestFindConflictsUnassignedFacultyNeverConflicts(t *testing.T) {
	existing := []Interval{
		{AllocationID: 1, Day: Monday, Start: 9 * 60, End: 10 * 60, FacultyName: ""},
	}
	proposal := Proposal{Day: Monday, Start: 9 * 60, End: 10 * 60, FacultyName: ""}

	require.Empty(t, FindConflicts(ByFaculty, proposal, existing, 0))
}

func TestFindConflictsCompoundDayOnlyOverlappingDayFlagged(t *testing.T) {
	// A runs MWF 9:00-10:00 in R101; B proposes Monday 9:30-10:30 in R101.
	// Only the Monday occurrence collides.
	a, diags := BuildIntervals(allocationFixture(1, "R101", "MWF", "9:00 AM - 10:00 AM"))
	require.Empty(t, diags)

	conflicts, ok := FindPlacementConflicts("M", "9:30 AM - 10:30 AM", "R101", "", a, 2)
	require.True(t, ok)
	require.Len(t, conflicts, 1)
	require.Equal(t, Monday, conflicts[0].Day)

	// Wednesday and Friday occurrences of A have no Monday counterpart.
	conflicts, ok = FindPlacementConflicts("T", "9:30 AM - 10:30 AM", "R101", "", a, 2)
	require.True(t, ok)
	require.Empty(t, conflicts)
}

func TestFindPlacementConflictsDedupesRoomAndFacultyHits(t *testing.T) {
	existing := []Interval{
		{AllocationID: 1, Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R101", FacultyName: "Cruz"},
	}

	conflicts, ok := FindPlacementConflicts("M", "9:00 AM - 10:00 AM", "R101", "Cruz", existing, 0)
	require.True(t, ok)
	// Same interval collides on both discriminants but is reported once.
	require.Len(t, conflicts, 1)
}

func TestFindPlacementConflictsUnparseableRange(t *testing.T) {
	_, ok := FindPlacementConflicts("M", "whenever", "R101", "", nil, 0)
	require.False(t, ok)
}
