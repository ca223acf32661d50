package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mondayAt returns a wall-clock instant on a known Monday.
func mondayAt(hour, min int) time.Time {
	return time.Date(2024, time.January, 8, hour, min, 0, 0, time.UTC)
}

func TestOccupancyUnknownWithoutIntervals(t *testing.T) {
	status, active := Occupancy(nil, mondayAt(9, 0))
	require.Equal(t, StatusUnknown, status)
	require.Nil(t, active)
}

func TestOccupancyAvailableOutsideIntervals(t *testing.T) {
	intervals := []Interval{{Day: Monday, Start: 9 * 60, End: 10 * 60}}

	status, active := Occupancy(intervals, mondayAt(11, 0))
	require.Equal(t, StatusAvailable, status)
	require.Nil(t, active)

	// Same time band, wrong weekday.
	tuesday := mondayAt(9, 30).AddDate(0, 0, 1)
	status, _ = Occupancy(intervals, tuesday)
	require.Equal(t, StatusAvailable, status)
}

func TestOccupancyOccupiedInsideInterval(t *testing.T) {
	intervals := []Interval{{AllocationID: 9, Day: Monday, Start: 9 * 60, End: 10 * 60, Room: "R101"}}

	status, active := Occupancy(intervals, mondayAt(9, 30))
	require.Equal(t, StatusOccupied, status)
	require.NotNil(t, active)
	require.Equal(t, int64(9), active.AllocationID)
}

func TestOccupancyHalfOpenBoundaries(t *testing.T) {
	intervals := []Interval{{Day: Monday, Start: 9 * 60, End: 10 * 60}}

	status, _ := Occupancy(intervals, mondayAt(9, 0))
	require.Equal(t, StatusOccupied, status, "start minute is occupied")

	status, _ = Occupancy(intervals, mondayAt(10, 0))
	require.Equal(t, StatusAvailable, status, "end minute is already free")
}

func TestPresenceBuckets(t *testing.T) {
	now := mondayAt(12, 0)

	require.Equal(t, PresenceOnline, Presence(now.Add(-2*time.Minute), now, 0, 0))
	require.Equal(t, PresenceAway, Presence(now.Add(-10*time.Minute), now, 0, 0))
	require.Equal(t, PresenceOffline, Presence(now.Add(-2*time.Hour), now, 0, 0))
	require.Equal(t, PresenceOffline, Presence(time.Time{}, now, 0, 0))
}

func TestPresenceBoundaryValues(t *testing.T) {
	now := mondayAt(12, 0)

	require.Equal(t, PresenceAway, Presence(now.Add(-5*time.Minute), now, 0, 0))
	require.Equal(t, PresenceOffline, Presence(now.Add(-30*time.Minute), now, 0, 0))
}

func TestPresenceCustomThresholds(t *testing.T) {
	now := mondayAt(12, 0)

	require.Equal(t, PresenceOnline, Presence(now.Add(-9*time.Minute), now, 10*time.Minute, time.Hour))
	require.Equal(t, PresenceAway, Presence(now.Add(-30*time.Minute), now, 10*time.Minute, time.Hour))
}
