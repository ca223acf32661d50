package models

import "time"

// RequestStatus captures workflow states for reschedule requests.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// RescheduleRequest is a proposal to move one allocation to a new placement.
// Course and original-placement fields are denormalized snapshots taken at
// submission so the audit trail survives later edits to the allocation.
// A request is decided at most once; PENDING rows with no decision are valid
// indefinitely.
type RescheduleRequest struct {
	ID            string        `db:"id" json:"id"`
	ScheduleID    int64         `db:"schedule_id" json:"schedule_id"`
	AllocationID  int64         `db:"allocation_id" json:"allocation_id"`
	RequesterID   string        `db:"requester_id" json:"requester_id"`
	RequesterName string        `db:"requester_name" json:"requester_name"`
	CourseCode    string        `db:"course_code" json:"course_code"`
	CourseName    string        `db:"course_name" json:"course_name"`
	Section       string        `db:"section" json:"section"`
	OriginalDay   string        `db:"original_day" json:"original_day"`
	OriginalTime  string        `db:"original_time" json:"original_time"`
	OriginalRoom  string        `db:"original_room" json:"original_room"`
	OriginalBldg  string        `db:"original_building" json:"original_building"`
	ProposedDay   string        `db:"proposed_day" json:"proposed_day"`
	ProposedTime  string        `db:"proposed_time" json:"proposed_time"`
	ProposedRoom  string        `db:"proposed_room" json:"proposed_room"`
	ProposedBldg  string        `db:"proposed_building" json:"proposed_building"`
	Reason        string        `db:"reason" json:"reason"`
	Status        RequestStatus `db:"status" json:"status"`
	DecisionNote  *string       `db:"decision_note" json:"decision_note,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	DecidedAt     *time.Time    `db:"decided_at" json:"decided_at,omitempty"`
}

// RequestFilter constrains reschedule request listings.
type RequestFilter struct {
	ScheduleID  int64
	RequesterID string
	Status      []RequestStatus
	Limit       int
	Offset      int
}

// DecisionEvent is emitted to the notification sink whenever a request is
// decided. It carries enough data for the notification collaborator to
// build the outbound message without re-reading the request.
type DecisionEvent struct {
	Type          string        `json:"type"`
	RequestID     string        `json:"request_id"`
	RequesterID   string        `json:"requester_id"`
	RequesterName string        `json:"requester_name"`
	CourseCode    string        `json:"course_code"`
	Section       string        `json:"section"`
	Decision      RequestStatus `json:"decision"`
	Note          string        `json:"note,omitempty"`
	DecidedAt     time.Time     `json:"decided_at"`
}
