package timetable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func gridFixture() GridConfig {
	return GridConfig{
		SlotMinutes:    30,
		DayStartMinute: 7 * 60,
		DayEndMinute:   21 * 60,
		Days:           []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday},
	}
}

func TestStartingSlotAndSpan(t *testing.T) {
	cfg := gridFixture()
	// 9:00 - 10:30 on a 30-minute grid from 7:00.
	iv := Interval{Day: Monday, Start: 9 * 60, End: 10*60 + 30}

	require.Equal(t, 4, cfg.StartingSlot(iv))
	require.Equal(t, 3, cfg.SlotSpan(iv))
}

func TestSlotSpanRoundsUpPartialSlots(t *testing.T) {
	cfg := gridFixture()
	iv := Interval{Day: Monday, Start: 9 * 60, End: 9*60 + 40}
	require.Equal(t, 2, cfg.SlotSpan(iv))

	short := Interval{Day: Monday, Start: 9 * 60, End: 9*60 + 10}
	require.Equal(t, 1, cfg.SlotSpan(short))
}

func TestIsContinuation(t *testing.T) {
	intervals := []Interval{{Day: Monday, Start: 9 * 60, End: 10*60 + 30}}

	require.True(t, IsContinuation(intervals, Monday, 9*60+30))
	require.True(t, IsContinuation(intervals, Monday, 10*60))
	// The starting slot itself is not a continuation.
	require.False(t, IsContinuation(intervals, Monday, 9*60))
	require.False(t, IsContinuation(intervals, Monday, 10*60+30))
	require.False(t, IsContinuation(intervals, Tuesday, 9*60+30))
}

func TestPlaceOnGridMarksStartAndContinuations(t *testing.T) {
	cfg := gridFixture()
	intervals := []Interval{{AllocationID: 1, Day: Monday, Start: 9 * 60, End: 10*60 + 30}}

	grid := PlaceOnGrid(cfg, intervals)
	monday := grid.Cells[Monday]

	require.Len(t, monday[4], 1)
	require.True(t, monday[4][0].IsStart)
	require.Equal(t, 3, monday[4][0].SlotSpan)

	require.Len(t, monday[5], 1)
	require.False(t, monday[5][0].IsStart)
	require.Len(t, monday[6], 1)
	require.False(t, monday[6][0].IsStart)

	require.Empty(t, monday[7])
	require.Empty(t, monday[3])
}

func TestPlaceOnGridSurfacesDoubleBookings(t *testing.T) {
	cfg := gridFixture()
	intervals := []Interval{
		{AllocationID: 1, Day: Monday, Start: 9 * 60, End: 10 * 60},
		{AllocationID: 2, Day: Monday, Start: 9 * 60, End: 10 * 60},
	}

	grid := PlaceOnGrid(cfg, intervals)
	cell := grid.Cells[Monday][4]
	// Both colliding intervals stay visible; the caller decides stacking.
	require.Len(t, cell, 2)
	require.True(t, cell[0].IsStart)
	require.True(t, cell[1].IsStart)
}

func TestPlaceOnGridClampsToWindow(t *testing.T) {
	cfg := gridFixture()
	intervals := []Interval{
		{AllocationID: 1, Day: Monday, Start: 6 * 60, End: 8 * 60},   // spills before day start
		{AllocationID: 2, Day: Monday, Start: 22 * 60, End: 23 * 60}, // fully after day end
		{AllocationID: 3, Day: "Daily", Start: 9 * 60, End: 10 * 60}, // pass-through day label
	}

	grid := PlaceOnGrid(cfg, intervals)
	monday := grid.Cells[Monday]

	require.Len(t, monday[0], 1)
	require.True(t, monday[0][0].IsStart)
	require.Equal(t, 2, monday[0][0].SlotSpan)

	total := 0
	for _, cells := range monday {
		total += len(cells)
	}
	require.Equal(t, 2, total, "only the clamped early interval is placed")
}

func TestSlotTimes(t *testing.T) {
	cfg := GridConfig{SlotMinutes: 60, DayStartMinute: 8 * 60, DayEndMinute: 11 * 60, Days: []string{Monday}}
	require.Equal(t, []int{480, 540, 600}, cfg.SlotTimes())
	require.Equal(t, 3, cfg.SlotCount())
}
