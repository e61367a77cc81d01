package postgres

import (
	"context"
	"database/sql"
	"time"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/logger"
	"leaseend-backend/internal/repository"
)

type processRepository struct {
	db *sql.DB
}

func NewProcessRepository(db *sql.DB) repository.ProcessRepository {
	return &processRepository{db: db}
}

const processColumns = `id, reference, owner_id, tenant_id, property_label, lease_type, deposit_cents,
	tenant_damage_cost_cents, vetusty_cost_cents, renovation_cost_cents,
	deposit_retention_cents, deposit_refund_cents, total_budget_cents,
	status, plan_start_date, last_activity, created_at, updated_at`

func scanProcess(row interface{ Scan(...any) error }) (*domain.LeaseEndProcess, error) {
	p := &domain.LeaseEndProcess{}
	err := row.Scan(&p.ID, &p.Reference, &p.OwnerID, &p.TenantID, &p.PropertyLabel, &p.LeaseType, &p.DepositCents,
		&p.TenantDamageCostCents, &p.VetustyCostCents, &p.RenovationCostCents,
		&p.DepositRetentionCents, &p.DepositRefundCents, &p.TotalBudgetCents,
		&p.Status, &p.PlanStartDate, &p.LastActivity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *processRepository) Create(ctx context.Context, p *domain.LeaseEndProcess) error {
	logger.EnterMethod("processRepository.Create", "reference", p.Reference, "ownerID", p.OwnerID)

	query := `INSERT INTO lease_end_processes (reference, owner_id, tenant_id, property_label, lease_type, deposit_cents, status, plan_start_date, last_activity, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, p.Reference, p.OwnerID, p.TenantID, p.PropertyLabel, p.LeaseType, p.DepositCents, p.Status, p.PlanStartDate, now, now, now).Scan(&p.ID)
	if err != nil {
		logger.ExitMethodWithError("processRepository.Create", err, "reference", p.Reference)
		return err
	}
	logger.ExitMethod("processRepository.Create", "processID", p.ID)
	return nil
}

func (r *processRepository) GetByID(ctx context.Context, id int32) (*domain.LeaseEndProcess, error) {
	query := `SELECT ` + processColumns + ` FROM lease_end_processes WHERE id = $1`
	return scanProcess(r.db.QueryRowContext(ctx, query, id))
}

func (r *processRepository) GetByReference(ctx context.Context, reference string) (*domain.LeaseEndProcess, error) {
	query := `SELECT ` + processColumns + ` FROM lease_end_processes WHERE reference = $1`
	return scanProcess(r.db.QueryRowContext(ctx, query, reference))
}

func (r *processRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.LeaseEndProcess, error) {
	query := `SELECT ` + processColumns + ` FROM lease_end_processes WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *processRepository) ListByStatus(ctx context.Context, status domain.ProcessStatus) ([]domain.LeaseEndProcess, error) {
	query := `SELECT ` + processColumns + ` FROM lease_end_processes WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, status)
}

func (r *processRepository) ListStalled(ctx context.Context, inactiveSince time.Time) ([]domain.LeaseEndProcess, error) {
	query := `SELECT ` + processColumns + ` FROM lease_end_processes
	          WHERE status NOT IN ($1, $2) AND last_activity < $3 ORDER BY last_activity ASC`
	return r.list(ctx, query, domain.ProcessStatusCompleted, domain.ProcessStatusCancelled, inactiveSince)
}

func (r *processRepository) list(ctx context.Context, query string, args ...any) ([]domain.LeaseEndProcess, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var processes []domain.LeaseEndProcess
	for rows.Next() {
		p, err := scanProcess(rows)
		if err != nil {
			return nil, err
		}
		processes = append(processes, *p)
	}
	return processes, rows.Err()
}

func (r *processRepository) UpdateStatus(ctx context.Context, id int32, status domain.ProcessStatus) error {
	logger.DatabaseCall("UPDATE", "lease_end_processes", "processID", id, "status", status)
	query := `UPDATE lease_end_processes SET status = $1, last_activity = $2, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "processID", id)
		return err
	}
	rows, err := result.RowsAffected()
	logger.DatabaseResult("UPDATE", rows, err, "processID", id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *processRepository) UpdateTotals(ctx context.Context, id int32, totals domain.SettlementTotals) error {
	logger.DatabaseCall("UPDATE", "lease_end_processes", "processID", id)
	query := `UPDATE lease_end_processes SET
	              tenant_damage_cost_cents = $1,
	              vetusty_cost_cents = $2,
	              renovation_cost_cents = $3,
	              deposit_retention_cents = $4,
	              deposit_refund_cents = $5,
	              total_budget_cents = $6,
	              last_activity = $7,
	              updated_at = $7
	          WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		totals.TenantDamageCostCents, totals.VetustyCostCents, totals.RenovationCostCents,
		totals.DepositRetentionCents, totals.DepositRefundCents, totals.TotalBudgetCents,
		time.Now(), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "processID", id)
		return err
	}
	rows, err := result.RowsAffected()
	logger.DatabaseResult("UPDATE", rows, err, "processID", id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *processRepository) TouchActivity(ctx context.Context, id int32) error {
	query := `UPDATE lease_end_processes SET last_activity = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *processRepository) UpdatePlanStartDate(ctx context.Context, id int32, planStartDate string) error {
	query := `UPDATE lease_end_processes SET plan_start_date = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, planStartDate, time.Now(), id)
	return err
}
