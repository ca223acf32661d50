package dto

import (
	"github.com/uniplan/timetable-api/internal/timetable"
)

// TimetableQuery selects the single-subject view a grid is computed for.
// The grid is always one room, one faculty member, or one section at a
// time; "all at once" views are not supported.
type TimetableQuery struct {
	View  string `form:"view" validate:"required,oneof=room faculty section"`
	Value string `form:"value" validate:"required"`
}

// TimetableResponse is the placed weekly grid for one view, with the count
// of rows excluded by parse failures so clients can hint at data quality
// without receiving the full diagnostic list.
type TimetableResponse struct {
	ScheduleID   int64          `json:"schedule_id"`
	View         string         `json:"view"`
	Value        string         `json:"value"`
	Grid         timetable.Grid `json:"grid"`
	UnparsedRows int            `json:"unparsed_rows"`
}

// DiagnosticsResponse is the admin data-quality view of unparsed rows.
type DiagnosticsResponse struct {
	ScheduleID  int64                  `json:"schedule_id"`
	Diagnostics []timetable.Diagnostic `json:"diagnostics"`
}

// BlocksResponse carries merged export-ready blocks plus the grid geometry
// the consumer should lay them out on.
type BlocksResponse struct {
	ScheduleID int64                `json:"schedule_id"`
	View       string               `json:"view"`
	Value      string               `json:"value"`
	Grid       timetable.GridConfig `json:"grid"`
	Blocks     []timetable.Block    `json:"blocks"`
}

// OccupancyResponse answers "is this room busy right now".
type OccupancyResponse struct {
	Room   string              `json:"room"`
	Status timetable.Status    `json:"status"`
	Active *timetable.Interval `json:"active,omitempty"`
	AsOf   string              `json:"as_of"`
}

// PresenceQuery supplies the last-activity timestamp for presence
// inference; activity tracking itself lives with the identity service.
type PresenceQuery struct {
	LastSeen string `form:"lastSeen" validate:"required"`
}

// PresenceResponse is the human-presence badge bucket.
type PresenceResponse struct {
	Name     string                  `json:"name"`
	Presence timetable.PresenceLevel `json:"presence"`
}

// ExportResponse points at a rendered timetable artifact.
type ExportResponse struct {
	Format    string `json:"format"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

// ConflictReport is the advisory or blocking conflict payload shared by
// submission warnings and refused approvals.
type ConflictReport struct {
	Conflicts []timetable.Interval `json:"conflicts"`
}
