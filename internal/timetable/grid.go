package timetable

import "sort"

// GridConfig describes the fixed weekly grid a view is laid out on. The
// geometry is passed in explicitly rather than read from globals so that
// placement stays deterministic and testable.
type GridConfig struct {
	SlotMinutes    int      `json:"slot_minutes"`
	DayStartMinute int      `json:"day_start_minute"`
	DayEndMinute   int      `json:"day_end_minute"`
	Days           []string `json:"days"`
}

// DefaultGridConfig mirrors the classic 30-minute, 7 AM - 9 PM class grid.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		SlotMinutes:    30,
		DayStartMinute: 7 * 60,
		DayEndMinute:   21 * 60,
		Days:           []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday},
	}
}

func (c GridConfig) normalized() GridConfig {
	if c.SlotMinutes <= 0 {
		c.SlotMinutes = 30
	}
	if c.DayEndMinute <= c.DayStartMinute {
		c.DayEndMinute = c.DayStartMinute + c.SlotMinutes
	}
	if len(c.Days) == 0 {
		c.Days = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
	}
	return c
}

// SlotCount returns the number of slots between day start and day end.
func (c GridConfig) SlotCount() int {
	c = c.normalized()
	return (c.DayEndMinute - c.DayStartMinute + c.SlotMinutes - 1) / c.SlotMinutes
}

// SlotTimes enumerates each slot's starting minute-of-day.
func (c GridConfig) SlotTimes() []int {
	c = c.normalized()
	times := make([]int, 0, c.SlotCount())
	for t := c.DayStartMinute; t < c.DayEndMinute; t += c.SlotMinutes {
		times = append(times, t)
	}
	return times
}

// StartingSlot returns the zero-based slot index where the interval begins.
func (c GridConfig) StartingSlot(iv Interval) int {
	c = c.normalized()
	return (iv.Start - c.DayStartMinute) / c.SlotMinutes
}

// SlotSpan returns how many slots the interval covers, at least 1.
func (c GridConfig) SlotSpan(iv Interval) int {
	c = c.normalized()
	span := (iv.End - iv.Start + c.SlotMinutes - 1) / c.SlotMinutes
	if span < 1 {
		span = 1
	}
	return span
}

// Cell is one interval's appearance at a (day, slot) coordinate. IsStart is
// false for continuation cells, which a table renderer must skip because a
// spanning cell above already covers them.
type Cell struct {
	Interval Interval `json:"interval"`
	IsStart  bool     `json:"is_start"`
	SlotSpan int      `json:"slot_span"`
}

// Grid is a placed single-subject weekly view. Cells is keyed by canonical
// day name; the inner slice has one entry per slot, each holding zero or
// more cells. Two intervals starting in the same slot are both kept: a
// real double booking has to stay visible to the caller.
type Grid struct {
	Config GridConfig        `json:"config"`
	Cells  map[string][]Cells `json:"cells"`
}

// Cells is the content of one (day, slot) coordinate.
type Cells []Cell

// PlaceOnGrid lays intervals onto the weekly grid. Intervals on days outside
// the configured day set or entirely outside the time window are dropped;
// intervals spilling over an edge are clamped to the visible window.
func PlaceOnGrid(cfg GridConfig, intervals []Interval) Grid {
	cfg = cfg.normalized()
	slotCount := cfg.SlotCount()

	cells := make(map[string][]Cells, len(cfg.Days))
	for _, day := range cfg.Days {
		cells[day] = make([]Cells, slotCount)
	}

	ordered := append([]Interval(nil), intervals...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].AllocationID < ordered[j].AllocationID
	})

	for _, iv := range ordered {
		daySlots, ok := cells[iv.Day]
		if !ok {
			continue
		}
		if iv.End <= cfg.DayStartMinute || iv.Start >= cfg.DayEndMinute {
			continue
		}

		clamped := iv
		if clamped.Start < cfg.DayStartMinute {
			clamped.Start = cfg.DayStartMinute
		}
		if clamped.End > cfg.DayEndMinute {
			clamped.End = cfg.DayEndMinute
		}

		start := cfg.StartingSlot(clamped)
		span := cfg.SlotSpan(clamped)
		if start < 0 {
			span += start
			start = 0
		}
		if start >= slotCount || span < 1 {
			continue
		}
		if start+span > slotCount {
			span = slotCount - start
		}

		daySlots[start] = append(daySlots[start], Cell{Interval: iv, IsStart: true, SlotSpan: span})
		for offset := 1; offset < span; offset++ {
			daySlots[start+offset] = append(daySlots[start+offset], Cell{Interval: iv, IsStart: false, SlotSpan: span})
		}
	}

	return Grid{Config: cfg, Cells: cells}
}

// IsContinuation reports whether some interval strictly covers slotTime on
// the given day without starting exactly at it. Such slots are already
// rendered by a spanning cell and must not be drawn again.
func IsContinuation(intervals []Interval, day string, slotTime int) bool {
	for _, iv := range intervals {
		if iv.Day != day {
			continue
		}
		if iv.Start < slotTime && slotTime < iv.End {
			return true
		}
	}
	return false
}
