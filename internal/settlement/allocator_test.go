package settlement

import (
	"testing"

	"leaseend-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func classifiedItem(id int32, dt domain.DamageType, cents int64) domain.InspectionItem {
	return domain.InspectionItem{
		ID:                 id,
		Category:           domain.ElementCategoryWall,
		Status:             domain.InspectionStatusProblem,
		DamageType:         dt,
		EstimatedCostCents: cents,
	}
}

func ownerRenovation(id int32, cents int64) domain.RenovationItem {
	r := domain.RenovationItem{
		ID:                 id,
		WorkType:           domain.WorkTypePaint,
		EstimatedCostCents: cents,
		Payer:              domain.PayerOwner,
	}
	r.ApplyPayerSplit()
	return r
}

func TestAllocate_Buckets(t *testing.T) {
	t.Run("Items land in the right buckets", func(t *testing.T) {
		items := []domain.InspectionItem{
			classifiedItem(1, domain.DamageTypeTenantDamage, 20000),
			classifiedItem(2, domain.DamageTypeTenantDamage, 10000),
			classifiedItem(3, domain.DamageTypeNormalWear, 40000),
			classifiedItem(4, domain.DamageTypeRecommendedRenovation, 99999),
		}
		res, err := Allocate(items, nil, 100000)
		assert.NoError(t, err)
		assert.Equal(t, int64(30000), res.TenantDamageCostCents)
		assert.Equal(t, int64(40000), res.VetustyCostCents)
		assert.Equal(t, int64(0), res.RenovationCostCents) // advisory items never counted
	})

	t.Run("Non-problem items are skipped", func(t *testing.T) {
		items := []domain.InspectionItem{
			{ID: 1, Status: domain.InspectionStatusOK},
			{ID: 2, Status: domain.InspectionStatusPending},
		}
		res, err := Allocate(items, nil, 50000)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), res.TenantDamageCostCents)
		assert.Equal(t, int64(50000), res.DepositRefundCents)
	})

	t.Run("Renovation gross total double-counts shares", func(t *testing.T) {
		ren := domain.RenovationItem{
			ID:                 1,
			WorkType:           domain.WorkTypeCleaning,
			EstimatedCostCents: 30000,
			Payer:              domain.PayerTenant,
			TenantShareCents:   30000,
		}
		res, err := Allocate(nil, []domain.RenovationItem{ren}, 100000)
		assert.NoError(t, err)
		// The gross figure keeps the full cost while the tenant share also
		// feeds the damage bucket.
		assert.Equal(t, int64(30000), res.RenovationCostCents)
		assert.Equal(t, int64(30000), res.TenantDamageCostCents)
		assert.Equal(t, int64(30000), res.DepositRetentionCents)
	})
}

func TestAllocate_Scenarios(t *testing.T) {
	t.Run("Damage exceeds deposit", func(t *testing.T) {
		// deposit 1000.00, tenant damage 1400.00
		items := []domain.InspectionItem{
			classifiedItem(1, domain.DamageTypeTenantDamage, 90000),
			classifiedItem(2, domain.DamageTypeTenantDamage, 50000),
		}
		res, err := Allocate(items, nil, 100000)
		assert.NoError(t, err)
		assert.Equal(t, int64(100000), res.DepositRetentionCents)
		assert.Equal(t, int64(0), res.DepositRefundCents)
		// The uncovered 400.00 is an out-of-band claim, never a negative refund.
		assert.Equal(t, int64(40000), res.UncoveredTenantDebtCents)
	})

	t.Run("Mixed damage wear and renovation", func(t *testing.T) {
		// deposit 1000.00, tenant damage 300.00, wear 500.00, owner renovation 200.00
		items := []domain.InspectionItem{
			classifiedItem(1, domain.DamageTypeTenantDamage, 30000),
			classifiedItem(2, domain.DamageTypeNormalWear, 50000),
		}
		renovations := []domain.RenovationItem{ownerRenovation(1, 20000)}

		res, err := Allocate(items, renovations, 100000)
		assert.NoError(t, err)
		assert.Equal(t, int64(30000), res.DepositRetentionCents)
		assert.Equal(t, int64(70000), res.DepositRefundCents)
		assert.Equal(t, int64(40000), res.TotalBudgetCents) // max(0, 500+200-300)
	})

	t.Run("Mobility lease with zero deposit", func(t *testing.T) {
		items := []domain.InspectionItem{
			classifiedItem(1, domain.DamageTypeTenantDamage, 25000),
			classifiedItem(2, domain.DamageTypeNormalWear, 10000),
		}
		res, err := Allocate(items, nil, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), res.DepositRetentionCents)
		assert.Equal(t, int64(0), res.DepositRefundCents)
		assert.Equal(t, int64(25000), res.UncoveredTenantDebtCents)
		// Owner-side math proceeds unaffected.
		assert.Equal(t, int64(0), res.TotalBudgetCents) // max(0, 100-250)
	})

	t.Run("Budget never negative", func(t *testing.T) {
		items := []domain.InspectionItem{
			classifiedItem(1, domain.DamageTypeTenantDamage, 500000),
			classifiedItem(2, domain.DamageTypeNormalWear, 10000),
		}
		res, err := Allocate(items, []domain.RenovationItem{ownerRenovation(1, 5000)}, 100000)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), res.TotalBudgetCents)
	})

	t.Run("Idempotent over the same snapshot", func(t *testing.T) {
		items := []domain.InspectionItem{
			classifiedItem(1, domain.DamageTypeTenantDamage, 30000),
			classifiedItem(2, domain.DamageTypeNormalWear, 50000),
		}
		first, err := Allocate(items, nil, 100000)
		assert.NoError(t, err)
		second, err := Allocate(items, nil, 100000)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestAllocate_Rejections(t *testing.T) {
	t.Run("Unclassified problem item", func(t *testing.T) {
		items := []domain.InspectionItem{
			{ID: 1, Category: domain.ElementCategoryWall, Status: domain.InspectionStatusProblem},
		}
		_, err := Allocate(items, nil, 100000)
		assert.ErrorIs(t, err, ErrInconsistentState)
	})

	t.Run("Negative item cost", func(t *testing.T) {
		items := []domain.InspectionItem{
			classifiedItem(1, domain.DamageTypeTenantDamage, -100),
		}
		_, err := Allocate(items, nil, 100000)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Negative deposit", func(t *testing.T) {
		_, err := Allocate(nil, nil, -1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Renovation shares must sum to cost", func(t *testing.T) {
		ren := domain.RenovationItem{
			ID:                 1,
			EstimatedCostCents: 10000,
			TenantShareCents:   3000,
			OwnerShareCents:    3000,
		}
		_, err := Allocate(nil, []domain.RenovationItem{ren}, 100000)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Negative renovation share", func(t *testing.T) {
		ren := domain.RenovationItem{
			ID:                 1,
			EstimatedCostCents: 1000,
			TenantShareCents:   -500,
			OwnerShareCents:    1500,
		}
		_, err := Allocate(nil, []domain.RenovationItem{ren}, 100000)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
