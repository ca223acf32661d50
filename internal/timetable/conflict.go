package timetable

import "strings"

// Discriminant selects the dimension a conflict check runs along. Two
// intervals can only collide when they share the discriminant value: the
// same room, or the same faculty member.
type Discriminant string

const (
	ByRoom    Discriminant = "room"
	ByFaculty Discriminant = "faculty"
)

// Proposal is a candidate placement to validate against existing intervals.
type Proposal struct {
	Day         string `json:"day"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Room        string `json:"room"`
	FacultyName string `json:"faculty_name,omitempty"`
}

// FindConflicts returns every existing interval that overlaps the proposal
// on the same day and discriminant value. Overlap is the standard half-open
// test: back-to-back placements (a.end == b.start) are legal. The allocation
// being moved excludes itself via excludeAllocationID. The function is pure;
// an empty result means no conflict.
func FindConflicts(d Discriminant, p Proposal, existing []Interval, excludeAllocationID int64) []Interval {
	want := p.Room
	if d == ByFaculty {
		want = p.FacultyName
	}
	if strings.TrimSpace(want) == "" {
		// Unassigned faculty (or blank room) cannot collide with anything.
		return nil
	}

	var conflicts []Interval
	for _, iv := range existing {
		if iv.AllocationID == excludeAllocationID {
			continue
		}
		if !strings.EqualFold(iv.Day, p.Day) {
			continue
		}
		have := iv.Room
		if d == ByFaculty {
			have = iv.FacultyName
		}
		if !strings.EqualFold(have, want) {
			continue
		}
		if p.Start < iv.End && iv.Start < p.End {
			conflicts = append(conflicts, iv)
		}
	}
	return conflicts
}

// FindPlacementConflicts expands a raw proposed placement (day code plus
// time-range text) and validates every resulting day against the existing
// intervals along both discriminants. Room conflicts come first, then
// faculty conflicts, preserving interval order within each.
func FindPlacementConflicts(dayCode, timeRange, room, facultyName string, existing []Interval, excludeAllocationID int64) ([]Interval, bool) {
	span, ok := ParseRange(timeRange)
	if !ok {
		return nil, false
	}

	var conflicts []Interval
	seen := make(map[int64]map[string]struct{})
	record := func(found []Interval) {
		for _, iv := range found {
			byDay, ok := seen[iv.AllocationID]
			if !ok {
				byDay = make(map[string]struct{})
				seen[iv.AllocationID] = byDay
			}
			if _, dup := byDay[iv.Day]; dup {
				continue
			}
			byDay[iv.Day] = struct{}{}
			conflicts = append(conflicts, iv)
		}
	}

	for _, day := range ExpandDays(dayCode) {
		proposal := Proposal{
			Day:         day,
			Start:       span.Start,
			End:         span.End,
			Room:        room,
			FacultyName: facultyName,
		}
		record(FindConflicts(ByRoom, proposal, existing, excludeAllocationID))
		record(FindConflicts(ByFaculty, proposal, existing, excludeAllocationID))
	}
	return conflicts, true
}
