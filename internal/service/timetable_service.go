package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uniplan/timetable-api/internal/dto"
	"github.com/uniplan/timetable-api/internal/models"
	"github.com/uniplan/timetable-api/internal/timetable"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
)

type allocationStore interface {
	ListBySchedule(ctx context.Context, scheduleID int64) ([]models.Allocation, error)
	FindByID(ctx context.Context, id int64) (*models.Allocation, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// TimetableService computes placed weekly grids, merged blocks and parse
// diagnostics for one generated schedule. All computation is derived from
// raw allocation rows on demand; Redis only shortcuts the recomputation.
type TimetableService struct {
	allocations allocationStore
	cache       cacheStore
	grid        timetable.GridConfig
	cacheTTL    time.Duration
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewTimetableService constructs the timetable service. A nil cache disables
// caching entirely.
func NewTimetableService(allocations allocationStore, cache cacheStore, grid timetable.GridConfig, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &TimetableService{
		allocations: allocations,
		cache:       cache,
		grid:        grid,
		cacheTTL:    cacheTTL,
		validate:    validate,
		logger:      logger,
	}
}

// GridConfig exposes the configured grid geometry.
func (s *TimetableService) GridConfig() timetable.GridConfig {
	return s.grid
}

// ComputeGrid returns the placed weekly grid for one room, faculty member or
// section. Unparseable allocation rows are excluded and surfaced as a count.
func (s *TimetableService) ComputeGrid(ctx context.Context, scheduleID int64, query dto.TimetableQuery) (*dto.TimetableResponse, error) {
	if err := s.validate.Struct(query); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "view must be room, faculty or section and value is required")
	}

	key := s.cacheKey(scheduleID, "grid", query.View, query.Value)
	if s.cache != nil {
		var cached dto.TimetableResponse
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	intervals, diags, err := s.loadIntervals(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	subject := filterIntervals(intervals, query.View, query.Value)
	resp := &dto.TimetableResponse{
		ScheduleID:   scheduleID,
		View:         query.View,
		Value:        query.Value,
		Grid:         timetable.PlaceOnGrid(s.grid, subject),
		UnparsedRows: len(diags),
	}

	s.storeCache(ctx, key, resp)
	return resp, nil
}

// Diagnostics lists every allocation row excluded from computation, with the
// raw text that failed to parse. Intended for data-quality triage, not end
// users.
func (s *TimetableService) Diagnostics(ctx context.Context, scheduleID int64) (*dto.DiagnosticsResponse, error) {
	_, diags, err := s.loadIntervals(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if diags == nil {
		diags = []timetable.Diagnostic{}
	}
	return &dto.DiagnosticsResponse{ScheduleID: scheduleID, Diagnostics: diags}, nil
}

// Blocks returns merged export-ready blocks for one view.
func (s *TimetableService) Blocks(ctx context.Context, scheduleID int64, query dto.TimetableQuery) (*dto.BlocksResponse, error) {
	if err := s.validate.Struct(query); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "view must be room, faculty or section and value is required")
	}

	key := s.cacheKey(scheduleID, "blocks", query.View, query.Value)
	if s.cache != nil {
		var cached dto.BlocksResponse
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	intervals, _, err := s.loadIntervals(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	subject := filterIntervals(intervals, query.View, query.Value)
	blocks := timetable.MergeBlocks(subject)
	if blocks == nil {
		blocks = []timetable.Block{}
	}
	resp := &dto.BlocksResponse{
		ScheduleID: scheduleID,
		View:       query.View,
		Value:      query.Value,
		Grid:       s.grid,
		Blocks:     blocks,
	}

	s.storeCache(ctx, key, resp)
	return resp, nil
}

// ScheduleIntervals exposes the full interval set of a schedule for
// collaborators that run their own computation, like conflict checks and
// occupancy answers.
func (s *TimetableService) ScheduleIntervals(ctx context.Context, scheduleID int64) ([]timetable.Interval, error) {
	intervals, _, err := s.loadIntervals(ctx, scheduleID)
	return intervals, err
}

// InvalidateSchedule drops every cached view of one schedule. Called after
// an approved reschedule request moves an allocation.
func (s *TimetableService) InvalidateSchedule(ctx context.Context, scheduleID int64) {
	if s.cache == nil {
		return
	}
	pattern := fmt.Sprintf("timetable:%d:*", scheduleID)
	if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("failed to invalidate timetable cache", zap.Int64("scheduleId", scheduleID), zap.Error(err))
	}
}

func (s *TimetableService) loadIntervals(ctx context.Context, scheduleID int64) ([]timetable.Interval, []timetable.Diagnostic, error) {
	allocations, err := s.allocations.ListBySchedule(ctx, scheduleID)
	if err != nil {
		// A repository failure must never read as an empty timetable.
		return nil, nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load schedule allocations")
	}
	intervals, diags := timetable.BuildAllIntervals(allocations)
	return intervals, diags, nil
}

func (s *TimetableService) cacheKey(scheduleID int64, kind, view, value string) string {
	return fmt.Sprintf("timetable:%d:%s:%s:%s", scheduleID, kind, view, strings.ToLower(value))
}

func (s *TimetableService) storeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache timetable payload", zap.String("key", key), zap.Error(err))
	}
}

// filterIntervals keeps intervals matching the requested single-subject view.
func filterIntervals(intervals []timetable.Interval, view, value string) []timetable.Interval {
	var out []timetable.Interval
	for _, iv := range intervals {
		var have string
		switch view {
		case "room":
			have = iv.Room
		case "faculty":
			have = iv.FacultyName
		case "section":
			have = iv.Section
		default:
			continue
		}
		if strings.EqualFold(have, value) {
			out = append(out, iv)
		}
	}
	return out
}
