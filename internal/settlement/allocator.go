package settlement

import (
	"fmt"

	"leaseend-backend/internal/domain"
)

// SettlementResult holds the aggregate totals for one process.
//
// RenovationCostCents is a gross total: every renovation item's full cost
// lands there while its tenant share also lands in TenantDamageCostCents.
// Downstream screens rely on both the gross and the net figures, so the
// double count is deliberate and must be preserved.
type SettlementResult struct {
	TenantDamageCostCents int64 `json:"tenant_damage_cost_cents"`
	VetustyCostCents      int64 `json:"vetusty_cost_cents"`
	RenovationCostCents   int64 `json:"renovation_cost_cents"`
	DepositRetentionCents int64 `json:"deposit_retention_cents"`
	DepositRefundCents    int64 `json:"deposit_refund_cents"`
	TotalBudgetCents      int64 `json:"total_budget_cents"`
	// UncoveredTenantDebtCents is the damage liability the deposit did not
	// cover. The owner raises it as an out-of-band claim; it is never
	// folded into the refund.
	UncoveredTenantDebtCents int64 `json:"uncovered_tenant_debt_cents"`
}

// Allocate sums classified inspection items and renovation items into the
// process totals and computes the deposit settlement and owner budget.
// It is a pure function of its inputs: calling it again with the same
// snapshot yields the same result, so the orchestrator can re-run it
// freely as items arrive.
func Allocate(items []domain.InspectionItem, renovations []domain.RenovationItem, depositCents int64) (SettlementResult, error) {
	if depositCents < 0 {
		return SettlementResult{}, fmt.Errorf("%w: negative deposit %d", ErrInvalidInput, depositCents)
	}

	var res SettlementResult

	for _, item := range items {
		if item.Status != domain.InspectionStatusProblem {
			continue
		}
		if item.DamageType == "" {
			return SettlementResult{}, fmt.Errorf("%w: inspection item %d is not classified", ErrInconsistentState, item.ID)
		}
		if item.EstimatedCostCents < 0 {
			return SettlementResult{}, fmt.Errorf("%w: inspection item %d has negative cost", ErrInvalidInput, item.ID)
		}
		switch item.DamageType {
		case domain.DamageTypeTenantDamage:
			res.TenantDamageCostCents += item.EstimatedCostCents
		case domain.DamageTypeNormalWear:
			res.VetustyCostCents += item.EstimatedCostCents
		case domain.DamageTypeRecommendedRenovation:
			// Advisory only: never charged to the tenant, never part of
			// the committed owner budget.
		default:
			return SettlementResult{}, fmt.Errorf("%w: inspection item %d has unknown damage type %q", ErrInconsistentState, item.ID, item.DamageType)
		}
	}

	for _, ren := range renovations {
		if ren.EstimatedCostCents < 0 || ren.TenantShareCents < 0 || ren.OwnerShareCents < 0 {
			return SettlementResult{}, fmt.Errorf("%w: renovation item %d has negative amounts", ErrInvalidInput, ren.ID)
		}
		if ren.TenantShareCents+ren.OwnerShareCents != ren.EstimatedCostCents {
			return SettlementResult{}, fmt.Errorf("%w: renovation item %d shares do not sum to cost", ErrInvalidInput, ren.ID)
		}
		res.TenantDamageCostCents += ren.TenantShareCents
		res.RenovationCostCents += ren.EstimatedCostCents
	}

	res.DepositRetentionCents, res.DepositRefundCents = SettleDeposit(res.TenantDamageCostCents, depositCents)
	res.UncoveredTenantDebtCents = res.TenantDamageCostCents - res.DepositRetentionCents

	// The tenant's liability offsets the owner's spend but never drives
	// the budget negative.
	budget := res.VetustyCostCents + res.RenovationCostCents - res.TenantDamageCostCents
	if budget < 0 {
		budget = 0
	}
	res.TotalBudgetCents = budget

	return res, nil
}
