package models

import "time"

// Allocation is one scheduled occurrence of a course section in a room.
// Rows are produced by the schedule generator upstream and are read-only to
// this service except for placement moves applied through an approved
// reschedule request. Day and time are kept as raw text because imported
// legacy data is not guaranteed to parse; the timetable core derives
// canonical intervals on every read.
type Allocation struct {
	ID           int64     `db:"id" json:"id"`
	ScheduleID   int64     `db:"schedule_id" json:"schedule_id"`
	CourseCode   string    `db:"course_code" json:"course_code"`
	CourseName   string    `db:"course_name" json:"course_name"`
	Section      string    `db:"section" json:"section"`
	YearLevel    *string   `db:"year_level" json:"year_level,omitempty"`
	Campus       string    `db:"campus" json:"campus"`
	Building     string    `db:"building" json:"building"`
	Room         string    `db:"room" json:"room"`
	Capacity     int       `db:"capacity" json:"capacity"`
	FacultyName  *string   `db:"faculty_name" json:"faculty_name,omitempty"`
	Department   *string   `db:"department" json:"department,omitempty"`
	DayCode      string    `db:"day_code" json:"day_code"`
	TimeRange    string    `db:"time_range" json:"time_range"`
	LectureHours float64   `db:"lecture_hours" json:"lecture_hours"`
	LabHours     float64   `db:"lab_hours" json:"lab_hours"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Faculty returns the responsible party name, empty when unassigned.
func (a Allocation) Faculty() string {
	if a.FacultyName == nil {
		return ""
	}
	return *a.FacultyName
}

// AllocationFilter describes query params for listing allocations.
type AllocationFilter struct {
	ScheduleID  int64
	Room        string
	FacultyName string
	Section     string
	Page        int
	PageSize    int
}

// Placement groups the mutable placement fields of an allocation. An
// approved reschedule request applies exactly one Placement.
type Placement struct {
	DayCode   string `json:"day_code"`
	TimeRange string `json:"time_range"`
	Room      string `json:"room"`
	Building  string `json:"building"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
