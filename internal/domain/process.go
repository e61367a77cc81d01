package domain

import "time"

type ProcessStatus string

const (
	ProcessStatusPending              ProcessStatus = "PENDING"
	ProcessStatusTriggered            ProcessStatus = "TRIGGERED"
	ProcessStatusEDLScheduled         ProcessStatus = "EDL_SCHEDULED"
	ProcessStatusEDLInProgress        ProcessStatus = "EDL_IN_PROGRESS"
	ProcessStatusEDLCompleted         ProcessStatus = "EDL_COMPLETED"
	ProcessStatusDamagesAssessed      ProcessStatus = "DAMAGES_ASSESSED"
	ProcessStatusDGCalculated         ProcessStatus = "DG_CALCULATED"
	ProcessStatusRenovationPlanned    ProcessStatus = "RENOVATION_PLANNED"
	ProcessStatusRenovationInProgress ProcessStatus = "RENOVATION_IN_PROGRESS"
	ProcessStatusReadyToRent          ProcessStatus = "READY_TO_RENT"
	ProcessStatusCompleted            ProcessStatus = "COMPLETED"
	ProcessStatusCancelled            ProcessStatus = "CANCELLED"
)

type LeaseType string

const (
	LeaseTypeStandard  LeaseType = "STANDARD"
	LeaseTypeFurnished LeaseType = "FURNISHED"
	// Mobility leases carry no security deposit by law.
	LeaseTypeMobility LeaseType = "MOBILITY"
)

// LeaseEndProcess is the aggregate root for one tenancy's wind-down.
// The six cost totals are derived values: they are recomputed from the
// inspection and renovation items on every settlement run and persisted
// together in a single update.
type LeaseEndProcess struct {
	ID            int32     `json:"id"`
	Reference     string    `json:"reference"`
	OwnerID       int32     `json:"owner_id"`
	TenantID      int32     `json:"tenant_id"`
	PropertyLabel string    `json:"property_label"`
	LeaseType     LeaseType `json:"lease_type"`
	DepositCents  int64     `json:"deposit_cents"`

	TenantDamageCostCents int64 `json:"tenant_damage_cost_cents"`
	VetustyCostCents      int64 `json:"vetusty_cost_cents"`
	RenovationCostCents   int64 `json:"renovation_cost_cents"`
	DepositRetentionCents int64 `json:"deposit_retention_cents"`
	DepositRefundCents    int64 `json:"deposit_refund_cents"`
	TotalBudgetCents      int64 `json:"total_budget_cents"`

	Status        ProcessStatus `json:"status"`
	PlanStartDate string        `json:"plan_start_date"` // Format: 'YYYY-MM-DD'
	LastActivity  time.Time     `json:"last_activity"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// SettlementTotals groups the derived amounts written back to a process
// after a settlement run.
type SettlementTotals struct {
	TenantDamageCostCents int64 `json:"tenant_damage_cost_cents"`
	VetustyCostCents      int64 `json:"vetusty_cost_cents"`
	RenovationCostCents   int64 `json:"renovation_cost_cents"`
	DepositRetentionCents int64 `json:"deposit_retention_cents"`
	DepositRefundCents    int64 `json:"deposit_refund_cents"`
	TotalBudgetCents      int64 `json:"total_budget_cents"`
}

// IsTerminal reports whether the process can no longer move forward.
func (p *LeaseEndProcess) IsTerminal() bool {
	return p.Status == ProcessStatusCompleted || p.Status == ProcessStatusCancelled
}
