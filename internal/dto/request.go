package dto

import "github.com/uniplan/timetable-api/internal/models"

// CreateRescheduleRequest is the payload for submitting a reschedule
// proposal. The proposed building defaults to the allocation's current
// building when omitted.
type CreateRescheduleRequest struct {
	AllocationID     int64  `json:"allocation_id" validate:"required"`
	ProposedDay      string `json:"proposed_day" validate:"required"`
	ProposedTime     string `json:"proposed_time" validate:"required"`
	ProposedRoom     string `json:"proposed_room" validate:"required"`
	ProposedBuilding string `json:"proposed_building"`
	Reason           string `json:"reason" validate:"required"`
}

// CreateRescheduleResponse echoes the stored request together with any
// advisory conflicts. Conflicts at submission warn, they never block:
// an admin may resolve them by moving the other class first.
type CreateRescheduleResponse struct {
	Request  models.RescheduleRequest `json:"request"`
	Warnings *ConflictReport          `json:"warnings,omitempty"`
}

// DecideRequest is the admin decision payload.
type DecideRequest struct {
	Note string `json:"note"`
}

// RequestQuery filters request listings.
type RequestQuery struct {
	ScheduleID int64  `form:"scheduleId"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}
