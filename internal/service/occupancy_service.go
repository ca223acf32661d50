package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uniplan/timetable-api/internal/dto"
	"github.com/uniplan/timetable-api/internal/timetable"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
)

type intervalProvider interface {
	ScheduleIntervals(ctx context.Context, scheduleID int64) ([]timetable.Interval, error)
}

// OccupancyService answers point-in-time questions: is this room busy right
// now, and is this person likely at their desk. Both answers are derived,
// never stored.
type OccupancyService struct {
	intervals    intervalProvider
	onlineWithin time.Duration
	awayWithin   time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewOccupancyService constructs the occupancy service.
func NewOccupancyService(intervals intervalProvider, onlineWithin, awayWithin time.Duration, logger *zap.Logger) *OccupancyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OccupancyService{
		intervals:    intervals,
		onlineWithin: onlineWithin,
		awayWithin:   awayWithin,
		now:          time.Now,
		logger:       logger,
	}
}

// RoomOccupancy reports whether the room is in use at the current instant.
// A room with no scheduled intervals at all answers UNKNOWN, not AVAILABLE.
func (s *OccupancyService) RoomOccupancy(ctx context.Context, scheduleID int64, room string) (*dto.OccupancyResponse, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "room is required")
	}

	intervals, err := s.intervals.ScheduleIntervals(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	var roomIntervals []timetable.Interval
	for _, iv := range intervals {
		if strings.EqualFold(iv.Room, room) {
			roomIntervals = append(roomIntervals, iv)
		}
	}

	now := s.now()
	status, active := timetable.Occupancy(roomIntervals, now)
	return &dto.OccupancyResponse{
		Room:   room,
		Status: status,
		Active: active,
		AsOf:   now.Format(time.RFC3339),
	}, nil
}

// FacultyPresence buckets the supplied last-activity timestamp into a badge
// level. Activity tracking lives with the identity service; this endpoint
// only interprets the timestamp it is handed.
func (s *OccupancyService) FacultyPresence(name, lastSeenRaw string) (*dto.PresenceResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty name is required")
	}
	lastSeen, err := time.Parse(time.RFC3339, lastSeenRaw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "lastSeen must be an RFC 3339 timestamp")
	}

	return &dto.PresenceResponse{
		Name:     name,
		Presence: timetable.Presence(lastSeen, s.now(), s.onlineWithin, s.awayWithin),
	}, nil
}
