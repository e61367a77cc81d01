package postgres

import (
	"context"
	"database/sql"
	"time"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/repository"
)

type renovationItemRepository struct {
	db *sql.DB
}

func NewRenovationItemRepository(db *sql.DB) repository.RenovationItemRepository {
	return &renovationItemRepository{db: db}
}

func (r *renovationItemRepository) Create(ctx context.Context, it *domain.RenovationItem) error {
	query := `INSERT INTO renovation_items (process_id, work_type, description, estimated_cost_cents, payer, tenant_share_cents, owner_share_cents, priority, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, it.ProcessID, it.WorkType, it.Description, it.EstimatedCostCents, it.Payer, it.TenantShareCents, it.OwnerShareCents, it.Priority, now, now).Scan(&it.ID)
}

func (r *renovationItemRepository) GetByID(ctx context.Context, id int32) (*domain.RenovationItem, error) {
	it := &domain.RenovationItem{}
	query := `SELECT id, process_id, work_type, description, estimated_cost_cents, payer, tenant_share_cents, owner_share_cents, priority, quote_accepted_at, created_at, updated_at
	          FROM renovation_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.ProcessID, &it.WorkType, &it.Description, &it.EstimatedCostCents, &it.Payer, &it.TenantShareCents, &it.OwnerShareCents, &it.Priority, &it.QuoteAcceptedAt, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *renovationItemRepository) ListByProcess(ctx context.Context, processID int32) ([]domain.RenovationItem, error) {
	query := `SELECT id, process_id, work_type, description, estimated_cost_cents, payer, tenant_share_cents, owner_share_cents, priority, quote_accepted_at, created_at, updated_at
	          FROM renovation_items WHERE process_id = $1 ORDER BY priority ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, processID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RenovationItem
	for rows.Next() {
		var it domain.RenovationItem
		if err := rows.Scan(&it.ID, &it.ProcessID, &it.WorkType, &it.Description, &it.EstimatedCostCents, &it.Payer, &it.TenantShareCents, &it.OwnerShareCents, &it.Priority, &it.QuoteAcceptedAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *renovationItemRepository) Update(ctx context.Context, it *domain.RenovationItem) error {
	query := `UPDATE renovation_items SET work_type=$1, description=$2, estimated_cost_cents=$3, payer=$4, tenant_share_cents=$5, owner_share_cents=$6, priority=$7, quote_accepted_at=$8, updated_at=$9 WHERE id=$10`
	result, err := r.db.ExecContext(ctx, query, it.WorkType, it.Description, it.EstimatedCostCents, it.Payer, it.TenantShareCents, it.OwnerShareCents, it.Priority, it.QuoteAcceptedAt, time.Now(), it.ID)
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

func (r *renovationItemRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM renovation_items WHERE id = $1`, id)
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
