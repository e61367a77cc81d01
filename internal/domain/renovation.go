package domain

import "time"

type WorkType string

const (
	WorkTypePaint      WorkType = "PAINT"
	WorkTypeFlooring   WorkType = "FLOORING"
	WorkTypePlumbing   WorkType = "PLUMBING"
	WorkTypeElectrical WorkType = "ELECTRICAL"
	WorkTypeCarpentry  WorkType = "CARPENTRY"
	WorkTypeCleaning   WorkType = "CLEANING"
	WorkTypeBathroom   WorkType = "BATHROOM"
	WorkTypeKitchen    WorkType = "KITCHEN"
	WorkTypeOther      WorkType = "OTHER"
)

type Payer string

const (
	PayerTenant Payer = "TENANT"
	PayerOwner  Payer = "OWNER"
)

// RenovationItem is a work item not tied to a single inspected defect,
// created by the allocator or manually by the owner. TenantShareCents and
// OwnerShareCents always sum to EstimatedCostCents.
type RenovationItem struct {
	ID                 int32      `json:"id"`
	ProcessID          int32      `json:"process_id"`
	WorkType           WorkType   `json:"work_type"`
	Description        string     `json:"description"`
	EstimatedCostCents int64      `json:"estimated_cost_cents"`
	Payer              Payer      `json:"payer"`
	TenantShareCents   int64      `json:"tenant_share_cents"`
	OwnerShareCents    int64      `json:"owner_share_cents"`
	Priority           int32      `json:"priority"`
	QuoteAcceptedAt    *time.Time `json:"quote_accepted_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ApplyPayerSplit assigns the full cost to the paying side. Mixed splits
// are set explicitly by the owner when editing the item.
func (r *RenovationItem) ApplyPayerSplit() {
	switch r.Payer {
	case PayerTenant:
		r.TenantShareCents = r.EstimatedCostCents
		r.OwnerShareCents = 0
	default:
		r.TenantShareCents = 0
		r.OwnerShareCents = r.EstimatedCostCents
	}
}
