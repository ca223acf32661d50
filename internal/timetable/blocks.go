package timetable

import "sort"

// Block is a maximal run of back-to-back intervals of the same class in the
// same room on the same day, folded into one rectangle for export and print
// layouts. Coordinates are minute-of-day and weekday only; pixel layout is
// the consumer's problem.
type Block struct {
	CourseCode    string  `json:"course_code"`
	CourseName    string  `json:"course_name"`
	Section       string  `json:"section"`
	Room          string  `json:"room"`
	Building      string  `json:"building"`
	FacultyName   string  `json:"faculty_name,omitempty"`
	Day           string  `json:"day"`
	Start         int     `json:"start"`
	End           int     `json:"end"`
	AllocationIDs []int64 `json:"allocation_ids"`
}

// TimeLabel renders the block's span in the canonical display form.
func (b Block) TimeLabel() string {
	return FormatRange(b.Start, b.End)
}

type blockKey struct {
	courseCode string
	section    string
	room       string
	day        string
	faculty    string
}

// MergeBlocks coalesces intervals into the minimum number of blocks.
// Intervals merge only when they share the full identity key and the next
// interval starts exactly where the previous one ends. A one-minute gap is
// a real gap: tolerant merging once produced multi-hour blocks across
// intentional breaks, so adjacency is tested with exact equality.
// Output order is deterministic (key, then start) so repeated exports of
// the same data are byte-identical.
func MergeBlocks(intervals []Interval) []Block {
	groups := make(map[blockKey][]Interval)
	for _, iv := range intervals {
		key := blockKey{
			courseCode: iv.CourseCode,
			section:    iv.Section,
			room:       iv.Room,
			day:        iv.Day,
			faculty:    iv.FacultyName,
		}
		groups[key] = append(groups[key], iv)
	}

	keys := make([]blockKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.courseCode != b.courseCode {
			return a.courseCode < b.courseCode
		}
		if a.section != b.section {
			return a.section < b.section
		}
		if a.room != b.room {
			return a.room < b.room
		}
		if a.day != b.day {
			if ra, rb := dayOrder(a.day), dayOrder(b.day); ra != rb {
				return ra < rb
			}
			return a.day < b.day
		}
		return a.faculty < b.faculty
	})

	var blocks []Block
	for _, key := range keys {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Start != group[j].Start {
				return group[i].Start < group[j].Start
			}
			return group[i].AllocationID < group[j].AllocationID
		})

		var open *Block
		for _, iv := range group {
			if open != nil && iv.Start == open.End {
				open.End = iv.End
				open.AllocationIDs = appendID(open.AllocationIDs, iv.AllocationID)
				continue
			}
			if open != nil {
				blocks = append(blocks, *open)
			}
			open = &Block{
				CourseCode:    iv.CourseCode,
				CourseName:    iv.CourseName,
				Section:       iv.Section,
				Room:          iv.Room,
				Building:      iv.Building,
				FacultyName:   iv.FacultyName,
				Day:           iv.Day,
				Start:         iv.Start,
				End:           iv.End,
				AllocationIDs: []int64{iv.AllocationID},
			}
		}
		if open != nil {
			blocks = append(blocks, *open)
		}
	}
	return blocks
}

func appendID(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// dayOrder ranks canonical days Monday-first; pass-through labels sort last
// alphabetically after the real weekdays.
func dayOrder(day string) int {
	for i, name := range Weekdays {
		if name == day {
			return i
		}
	}
	return len(Weekdays)
}
