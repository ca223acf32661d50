package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uniplan/timetable-api/internal/dto"
	"github.com/uniplan/timetable-api/internal/models"
	"github.com/uniplan/timetable-api/internal/repository"
	"github.com/uniplan/timetable-api/internal/timetable"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
)

type requestStore interface {
	Create(ctx context.Context, req *models.RescheduleRequest) error
	GetByID(ctx context.Context, id string) (*models.RescheduleRequest, error)
	List(ctx context.Context, filter models.RequestFilter) ([]models.RescheduleRequest, int, error)
	DecideAndApply(ctx context.Context, id string, decision repository.Decision, placement *models.Placement, allocationID, scheduleID int64, check repository.PlacementCheck) error
}

type scheduleReader interface {
	ScheduleIntervals(ctx context.Context, scheduleID int64) ([]timetable.Interval, error)
	InvalidateSchedule(ctx context.Context, scheduleID int64)
}

type decisionNotifier interface {
	NotifyDecision(event models.DecisionEvent)
}

// RequestService runs the reschedule-request workflow. Conflicts found at
// submission are advisory; the authoritative check happens again at
// approval, against the intervals of that moment, and the decision plus the
// placement move commit in one transaction.
type RequestService struct {
	requests  requestStore
	allocs    allocationStore
	schedules scheduleReader
	notifier  decisionNotifier
	validate  *validator.Validate
	now       func() time.Time
	logger    *zap.Logger
}

// NewRequestService constructs the reschedule request service.
func NewRequestService(requests requestStore, allocs allocationStore, schedules scheduleReader, notifier decisionNotifier, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		requests:  requests,
		allocs:    allocs,
		schedules: schedules,
		notifier:  notifier,
		validate:  validate,
		now:       time.Now,
		logger:    logger,
	}
}

// Submit stores a new pending request with denormalized snapshots of the
// course and its current placement. The proposal is checked against current
// intervals and any conflicts come back as warnings, never as a rejection.
func (s *RequestService) Submit(ctx context.Context, req dto.CreateRescheduleRequest, actor *models.JWTClaims) (*dto.CreateRescheduleResponse, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "allocation, proposed placement and reason are required")
	}

	alloc, err := s.allocs.FindByID(ctx, req.AllocationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "allocation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load allocation")
	}

	proposedBldg := req.ProposedBuilding
	if proposedBldg == "" {
		proposedBldg = alloc.Building
	}

	request := &models.RescheduleRequest{
		ID:            uuid.NewString(),
		ScheduleID:    alloc.ScheduleID,
		AllocationID:  alloc.ID,
		RequesterID:   actor.UserID,
		RequesterName: actor.FullName,
		CourseCode:    alloc.CourseCode,
		CourseName:    alloc.CourseName,
		Section:       alloc.Section,
		OriginalDay:   alloc.DayCode,
		OriginalTime:  alloc.TimeRange,
		OriginalRoom:  alloc.Room,
		OriginalBldg:  alloc.Building,
		ProposedDay:   req.ProposedDay,
		ProposedTime:  req.ProposedTime,
		ProposedRoom:  req.ProposedRoom,
		ProposedBldg:  proposedBldg,
		Reason:        req.Reason,
		Status:        models.RequestStatusPending,
		CreatedAt:     s.now().UTC(),
	}

	intervals, err := s.schedules.ScheduleIntervals(ctx, alloc.ScheduleID)
	if err != nil {
		return nil, err
	}
	warnings, err := s.proposalConflicts(request, alloc.Faculty(), intervals)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reschedule request")
	}

	resp := &dto.CreateRescheduleResponse{Request: *request}
	if len(warnings) > 0 {
		resp.Warnings = &dto.ConflictReport{Conflicts: warnings}
	}
	return resp, nil
}

// List returns requests visible to the actor. Faculty see only their own;
// admins see everything.
func (s *RequestService) List(ctx context.Context, query dto.RequestQuery, actor *models.JWTClaims) ([]models.RescheduleRequest, int, error) {
	if actor == nil {
		return nil, 0, appErrors.ErrUnauthorized
	}

	filter := models.RequestFilter{ScheduleID: query.ScheduleID}
	if query.Status != "" {
		filter.Status = []models.RequestStatus{models.RequestStatus(query.Status)}
	}
	if query.Limit > 0 {
		filter.Limit = query.Limit
	}
	if query.Page > 1 {
		filter.Offset = (query.Page - 1) * query.Limit
	}
	if actor.Role != models.RoleAdmin {
		filter.RequesterID = actor.UserID
	}

	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reschedule requests")
	}
	return requests, total, nil
}

// Get returns one request enforcing scope constraints.
func (s *RequestService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.RescheduleRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reschedule request")
	}
	if actor.Role != models.RoleAdmin && request.RequesterID != actor.UserID {
		return nil, appErrors.ErrForbidden
	}
	return request, nil
}

// Approve flips the request to APPROVED and moves the allocation in a single
// transaction. The authoritative conflict check runs inside that transaction
// against the schedule's locked allocation rows, so two concurrent approvals
// into the same slot cannot both commit. A conflict found there refuses the
// approval with the conflicting intervals attached; the request stays
// pending.
func (s *RequestService) Approve(ctx context.Context, id string, req dto.DecideRequest, actor *models.JWTClaims) (*models.RescheduleRequest, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}
	request, err := s.loadPending(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	placement := &models.Placement{
		DayCode:   request.ProposedDay,
		TimeRange: request.ProposedTime,
		Room:      request.ProposedRoom,
		Building:  request.ProposedBldg,
	}
	decision := repository.Decision{Status: models.RequestStatusApproved, Note: req.Note, DecidedAt: now}
	if err := s.requests.DecideAndApply(ctx, request.ID, decision, placement, request.AllocationID, request.ScheduleID, s.placementCheck(request)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "request already decided")
		}
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve reschedule request")
	}

	s.finishDecision(ctx, request, models.RequestStatusApproved, req.Note, now)
	return request, nil
}

// Reject flips the request to REJECTED. No placement changes.
func (s *RequestService) Reject(ctx context.Context, id string, req dto.DecideRequest, actor *models.JWTClaims) (*models.RescheduleRequest, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}
	request, err := s.loadPending(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	decision := repository.Decision{Status: models.RequestStatusRejected, Note: req.Note, DecidedAt: now}
	if err := s.requests.DecideAndApply(ctx, request.ID, decision, nil, 0, request.ScheduleID, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "request already decided")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject reschedule request")
	}

	s.finishDecision(ctx, request, models.RequestStatusRejected, req.Note, now)
	return request, nil
}

func (s *RequestService) loadPending(ctx context.Context, id string) (*models.RescheduleRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reschedule request")
	}
	if request.Status != models.RequestStatusPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "request already decided")
	}
	return request, nil
}

// proposalConflicts validates the proposed placement against the given
// intervals along both the room and faculty dimensions, with the moved
// allocation excluding itself. The faculty discriminant is the allocation's
// own assignment, not one recovered from derived intervals: an allocation
// whose current time range is unparseable has no intervals, and its faculty
// member must still be protected from double booking.
func (s *RequestService) proposalConflicts(request *models.RescheduleRequest, faculty string, intervals []timetable.Interval) ([]timetable.Interval, error) {
	conflicts, ok := timetable.FindPlacementConflicts(
		request.ProposedDay,
		request.ProposedTime,
		request.ProposedRoom,
		faculty,
		intervals,
		request.AllocationID,
	)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "proposed time is not a parseable range")
	}
	return conflicts, nil
}

// placementCheck builds the authoritative conflict check DecideAndApply runs
// against the locked allocation rows inside the decide transaction.
func (s *RequestService) placementCheck(request *models.RescheduleRequest) repository.PlacementCheck {
	return func(allocations []models.Allocation) error {
		faculty := ""
		for i := range allocations {
			if allocations[i].ID == request.AllocationID {
				faculty = allocations[i].Faculty()
				break
			}
		}
		intervals, _ := timetable.BuildAllIntervals(allocations)
		conflicts, err := s.proposalConflicts(request, faculty, intervals)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return appErrors.WithDetails(
				appErrors.Clone(appErrors.ErrConflict, "proposed placement conflicts with the current timetable"),
				dto.ConflictReport{Conflicts: conflicts},
			)
		}
		return nil
	}
}

func (s *RequestService) finishDecision(ctx context.Context, request *models.RescheduleRequest, status models.RequestStatus, note string, decidedAt time.Time) {
	request.Status = status
	request.DecidedAt = &decidedAt
	if note != "" {
		request.DecisionNote = &note
	}

	if status == models.RequestStatusApproved {
		s.schedules.InvalidateSchedule(ctx, request.ScheduleID)
	}

	if s.notifier != nil {
		s.notifier.NotifyDecision(models.DecisionEvent{
			Type:          "reschedule.decided",
			RequestID:     request.ID,
			RequesterID:   request.RequesterID,
			RequesterName: request.RequesterName,
			CourseCode:    request.CourseCode,
			Section:       request.Section,
			Decision:      status,
			Note:          note,
			DecidedAt:     decidedAt,
		})
	}
}
