package postgres

import (
	"context"
	"database/sql"
	"time"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/logger"
	"leaseend-backend/internal/repository"
)

type inspectionItemRepository struct {
	db *sql.DB
}

func NewInspectionItemRepository(db *sql.DB) repository.InspectionItemRepository {
	return &inspectionItemRepository{db: db}
}

func (r *inspectionItemRepository) CreateBatch(ctx context.Context, processID int32, items []domain.InspectionItem) error {
	logger.EnterMethod("inspectionItemRepository.CreateBatch", "processID", processID, "count", len(items))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO inspection_items (process_id, category, label, status, problem_description, tenant_fault, element_age_years,
	                                        damage_type, vetusty_rate, estimated_cost_cents, classified_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	for i := range items {
		it := &items[i]
		var damageType any
		if it.DamageType != "" {
			damageType = string(it.DamageType)
		}
		err := tx.QueryRowContext(ctx, query, processID, it.Category, it.Label, it.Status, it.ProblemDescription, it.TenantFault, it.ElementAgeYears,
			damageType, it.VetustyRate, it.EstimatedCostCents, it.ClassifiedAt, now, now).Scan(&it.ID)
		if err != nil {
			logger.ExitMethodWithError("inspectionItemRepository.CreateBatch", err, "processID", processID)
			return err
		}
		it.ProcessID = processID
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("inspectionItemRepository.CreateBatch", err, "processID", processID)
		return err
	}
	logger.ExitMethod("inspectionItemRepository.CreateBatch", "processID", processID, "count", len(items))
	return nil
}

func (r *inspectionItemRepository) ListByProcess(ctx context.Context, processID int32) ([]domain.InspectionItem, error) {
	query := `SELECT id, process_id, category, label, status, problem_description, tenant_fault, element_age_years,
	                 damage_type, vetusty_rate, estimated_cost_cents, classified_at, created_at, updated_at
	          FROM inspection_items WHERE process_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, processID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InspectionItem
	for rows.Next() {
		var it domain.InspectionItem
		var damageType sql.NullString
		if err := rows.Scan(&it.ID, &it.ProcessID, &it.Category, &it.Label, &it.Status, &it.ProblemDescription, &it.TenantFault, &it.ElementAgeYears,
			&damageType, &it.VetustyRate, &it.EstimatedCostCents, &it.ClassifiedAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		it.DamageType = domain.DamageType(damageType.String)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *inspectionItemRepository) DeleteByProcess(ctx context.Context, processID int32) error {
	query := `DELETE FROM inspection_items WHERE process_id = $1`
	_, err := r.db.ExecContext(ctx, query, processID)
	return err
}
