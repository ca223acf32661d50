package timetable

import "time"

// Status is the real-time occupancy answer for one resource.
type Status string

const (
	// StatusOccupied means some interval covers the queried instant.
	StatusOccupied Status = "OCCUPIED"
	// StatusAvailable means the resource has known intervals but none are
	// active right now.
	StatusAvailable Status = "AVAILABLE"
	// StatusUnknown means the resource has no known intervals at all.
	// Distinct from Available: "nothing scheduled ever" is not the same
	// answer as "free at this moment".
	StatusUnknown Status = "UNKNOWN"
)

// Occupancy reports whether the resource owning the given intervals is in
// use at now. An interval is active when its day matches now's weekday and
// start <= minuteOfDay(now) < end; the end minute itself is already free.
// When occupied, the active interval is returned alongside the status.
func Occupancy(intervals []Interval, now time.Time) (Status, *Interval) {
	if len(intervals) == 0 {
		return StatusUnknown, nil
	}

	day := now.Weekday().String()
	minute := now.Hour()*60 + now.Minute()
	for i := range intervals {
		iv := intervals[i]
		if iv.Day != day {
			continue
		}
		if iv.Start <= minute && minute < iv.End {
			return StatusOccupied, &iv
		}
	}
	return StatusAvailable, nil
}

// PresenceLevel buckets elapsed time since a person's last activity.
type PresenceLevel string

const (
	PresenceOnline  PresenceLevel = "ONLINE"
	PresenceAway    PresenceLevel = "AWAY"
	PresenceOffline PresenceLevel = "OFFLINE"
)

// Presence infers a human-presence indicator from the last-seen timestamp.
// It is a heuristic for UI badges, independent of the scheduling grid.
// Zero thresholds fall back to the conventional 5/30 minute buckets.
func Presence(lastSeen, now time.Time, onlineWithin, awayWithin time.Duration) PresenceLevel {
	if onlineWithin <= 0 {
		onlineWithin = 5 * time.Minute
	}
	if awayWithin <= onlineWithin {
		awayWithin = 30 * time.Minute
	}
	elapsed := now.Sub(lastSeen)
	switch {
	case elapsed < onlineWithin:
		return PresenceOnline
	case elapsed < awayWithin:
		return PresenceAway
	default:
		return PresenceOffline
	}
}
