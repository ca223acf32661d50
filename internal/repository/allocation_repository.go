package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/uniplan/timetable-api/internal/models"
)

const allocationColumns = `id, schedule_id, course_code, course_name, section, year_level, campus, building, room, capacity, faculty_name, department, day_code, time_range, lecture_hours, lab_hours, created_at, updated_at`

// AllocationRepository reads allocation rows produced by the upstream
// schedule generator. The only write this service ever performs is the
// placement move applied by an approved reschedule request, which runs
// inside the request repository's transaction.
type AllocationRepository struct {
	db *sqlx.DB
}

// NewAllocationRepository creates a new allocation repository.
func NewAllocationRepository(db *sqlx.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// List returns allocations with optional filtering and pagination.
func (r *AllocationRepository) List(ctx context.Context, filter models.AllocationFilter) ([]models.Allocation, int, error) {
	base := "FROM allocations WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.ScheduleID > 0 {
		conditions = append(conditions, fmt.Sprintf("schedule_id = $%d", len(args)+1))
		args = append(args, filter.ScheduleID)
	}
	if filter.Room != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(room) = LOWER($%d)", len(args)+1))
		args = append(args, filter.Room)
	}
	if filter.FacultyName != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(faculty_name) = LOWER($%d)", len(args)+1))
		args = append(args, filter.FacultyName)
	}
	if filter.Section != "" {
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)+1))
		args = append(args, filter.Section)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY day_code ASC, time_range ASC, id ASC LIMIT %d OFFSET %d", allocationColumns, base, size, offset)
	var allocations []models.Allocation
	if err := r.db.SelectContext(ctx, &allocations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list allocations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count allocations: %w", err)
	}

	return allocations, total, nil
}

// ListBySchedule returns every allocation of one generated schedule. All
// timetable computation starts from this set; unparseable rows are kept in
// the result and filtered downstream with diagnostics.
func (r *AllocationRepository) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.Allocation, error) {
	query := fmt.Sprintf("SELECT %s FROM allocations WHERE schedule_id = $1 ORDER BY day_code ASC, time_range ASC, id ASC", allocationColumns)
	var allocations []models.Allocation
	if err := r.db.SelectContext(ctx, &allocations, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list schedule allocations: %w", err)
	}
	return allocations, nil
}

// FindByID loads one allocation.
func (r *AllocationRepository) FindByID(ctx context.Context, id int64) (*models.Allocation, error) {
	query := fmt.Sprintf("SELECT %s FROM allocations WHERE id = $1", allocationColumns)
	var alloc models.Allocation
	if err := r.db.GetContext(ctx, &alloc, query, id); err != nil {
		return nil, err
	}
	return &alloc, nil
}

// ApplyPlacement moves one allocation to a new placement using the provided
// executor, so the caller can bundle it with the request decision in a
// single transaction.
func (r *AllocationRepository) ApplyPlacement(ctx context.Context, exec sqlx.ExtContext, id int64, placement models.Placement) error {
	const query = `UPDATE allocations SET day_code = $1, time_range = $2, room = $3, building = $4, updated_at = $5 WHERE id = $6`
	result, err := exec.ExecContext(ctx, query, placement.DayCode, placement.TimeRange, placement.Room, placement.Building, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("apply placement: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check placement rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("allocation %d not found", id)
	}
	return nil
}
