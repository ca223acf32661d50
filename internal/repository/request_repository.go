package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/uniplan/timetable-api/internal/models"
)

const requestColumns = `id, schedule_id, allocation_id, requester_id, requester_name, course_code, course_name, section, original_day, original_time, original_room, original_building, proposed_day, proposed_time, proposed_room, proposed_building, reason, status, decision_note, created_at, decided_at`

// RequestRepository persists reschedule requests and applies decisions.
type RequestRepository struct {
	db          *sqlx.DB
	allocations *AllocationRepository
}

// NewRequestRepository creates a new reschedule request repository.
func NewRequestRepository(db *sqlx.DB, allocations *AllocationRepository) *RequestRepository {
	return &RequestRepository{db: db, allocations: allocations}
}

// Create inserts a new pending request.
func (r *RequestRepository) Create(ctx context.Context, req *models.RescheduleRequest) error {
	const query = `
		INSERT INTO reschedule_requests (
			id, schedule_id, allocation_id, requester_id, requester_name,
			course_code, course_name, section,
			original_day, original_time, original_room, original_building,
			proposed_day, proposed_time, proposed_room, proposed_building,
			reason, status, created_at
		) VALUES (
			:id, :schedule_id, :allocation_id, :requester_id, :requester_name,
			:course_code, :course_name, :section,
			:original_day, :original_time, :original_room, :original_building,
			:proposed_day, :proposed_time, :proposed_room, :proposed_building,
			:reason, :status, :created_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("insert reschedule request: %w", err)
	}
	return nil
}

// GetByID loads one request.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*models.RescheduleRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM reschedule_requests WHERE id = $1", requestColumns)
	var req models.RescheduleRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns requests matching the filter, newest first.
func (r *RequestRepository) List(ctx context.Context, filter models.RequestFilter) ([]models.RescheduleRequest, int, error) {
	base := "FROM reschedule_requests WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.ScheduleID > 0 {
		conditions = append(conditions, fmt.Sprintf("schedule_id = $%d", len(args)+1))
		args = append(args, filter.ScheduleID)
	}
	if filter.RequesterID != "" {
		conditions = append(conditions, fmt.Sprintf("requester_id = $%d", len(args)+1))
		args = append(args, filter.RequesterID)
	}
	if len(filter.Status) > 0 {
		placeholders := make([]string, 0, len(filter.Status))
		for _, status := range filter.Status {
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
			args = append(args, status)
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ", ")))
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d", requestColumns, base, limit, offset)
	var requests []models.RescheduleRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reschedule requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count reschedule requests: %w", err)
	}

	return requests, total, nil
}

// Decision is the terminal state written by DecideAndApply.
type Decision struct {
	Status    models.RequestStatus
	Note      string
	DecidedAt time.Time
}

// PlacementCheck validates a proposed placement against the schedule's
// allocation rows as they exist inside the decide transaction, after they
// have been locked. Returning an error refuses the decision and rolls the
// transaction back.
type PlacementCheck func(allocations []models.Allocation) error

// DecideAndApply moves a request out of PENDING and, for approvals, applies
// the proposed placement to the allocation in the same transaction. Two
// guards close the read-verify-write races:
//
// The status update is guarded with `status = 'PENDING'` so two concurrent
// decisions of the same request cannot both win; the loser sees
// sql.ErrNoRows.
//
// For approvals, the schedule's allocation rows are locked with SELECT FOR
// UPDATE and the check callback re-validates the proposal against that
// locked state. Two concurrent approvals of different requests into the
// same slot serialize on the row locks; the second transaction's check then
// sees the first one's committed move and refuses.
func (r *RequestRepository) DecideAndApply(ctx context.Context, id string, decision Decision, placement *models.Placement, allocationID, scheduleID int64, check PlacementCheck) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin decide tx: %w", err)
	}
	defer tx.Rollback()

	if placement != nil {
		lock := fmt.Sprintf("SELECT %s FROM allocations WHERE schedule_id = $1 ORDER BY id ASC FOR UPDATE", allocationColumns)
		var allocations []models.Allocation
		if err := tx.SelectContext(ctx, &allocations, lock, scheduleID); err != nil {
			return fmt.Errorf("lock schedule allocations: %w", err)
		}
		if check != nil {
			if err := check(allocations); err != nil {
				return err
			}
		}
	}

	note := sql.NullString{String: decision.Note, Valid: decision.Note != ""}
	const update = `UPDATE reschedule_requests SET status = $1, decision_note = $2, decided_at = $3 WHERE id = $4 AND status = 'PENDING'`
	result, err := tx.ExecContext(ctx, update, decision.Status, note, decision.DecidedAt, id)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check decision rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	if placement != nil {
		if err := r.allocations.ApplyPlacement(ctx, tx, allocationID, *placement); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit decide tx: %w", err)
	}
	return nil
}
