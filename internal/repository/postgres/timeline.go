package postgres

import (
	"context"
	"database/sql"
	"time"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/logger"
	"leaseend-backend/internal/repository"
)

type timelineRepository struct {
	db *sql.DB
}

func NewTimelineRepository(db *sql.DB) repository.TimelineRepository {
	return &timelineRepository{db: db}
}

func (r *timelineRepository) ReplaceForProcess(ctx context.Context, processID int32, items []domain.TimelineItem) error {
	logger.EnterMethod("timelineRepository.ReplaceForProcess", "processID", processID, "count", len(items))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM timeline_items WHERE process_id = $1`, processID); err != nil {
		logger.ExitMethodWithError("timelineRepository.ReplaceForProcess", err, "processID", processID)
		return err
	}

	query := `INSERT INTO timeline_items (process_id, day_offset, action_type, title, description, status, scheduled_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	for i := range items {
		it := &items[i]
		err := tx.QueryRowContext(ctx, query, processID, it.DayOffset, it.ActionType, it.Title, it.Description, it.Status, it.ScheduledDate, now).Scan(&it.ID)
		if err != nil {
			logger.ExitMethodWithError("timelineRepository.ReplaceForProcess", err, "processID", processID)
			return err
		}
		it.ProcessID = processID
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("timelineRepository.ReplaceForProcess", err, "processID", processID)
		return err
	}
	logger.ExitMethod("timelineRepository.ReplaceForProcess", "processID", processID, "count", len(items))
	return nil
}

func (r *timelineRepository) ListByProcess(ctx context.Context, processID int32) ([]domain.TimelineItem, error) {
	query := `SELECT id, process_id, day_offset, action_type, title, description, status, scheduled_date, completed_at, created_at
	          FROM timeline_items WHERE process_id = $1 ORDER BY day_offset ASC, id ASC`
	return r.list(ctx, query, processID)
}

func (r *timelineRepository) ListDueOn(ctx context.Context, day string) ([]domain.TimelineItem, error) {
	query := `SELECT id, process_id, day_offset, action_type, title, description, status, scheduled_date, completed_at, created_at
	          FROM timeline_items WHERE scheduled_date = $1 AND status != $2 ORDER BY process_id ASC, day_offset ASC`
	return r.list(ctx, query, day, domain.TimelineItemStatusCompleted)
}

func (r *timelineRepository) list(ctx context.Context, query string, args ...any) ([]domain.TimelineItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.TimelineItem
	for rows.Next() {
		var it domain.TimelineItem
		if err := rows.Scan(&it.ID, &it.ProcessID, &it.DayOffset, &it.ActionType, &it.Title, &it.Description, &it.Status, &it.ScheduledDate, &it.CompletedAt, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *timelineRepository) UpdateStatus(ctx context.Context, id int32, status domain.TimelineItemStatus) error {
	var completedAt any
	if status == domain.TimelineItemStatusCompleted {
		completedAt = time.Now()
	}
	query := `UPDATE timeline_items SET status = $1, completed_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, completedAt, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
