package domain

import "time"

type ElementCategory string

const (
	ElementCategoryWall       ElementCategory = "WALL"
	ElementCategoryFloor      ElementCategory = "FLOOR"
	ElementCategoryBathroom   ElementCategory = "BATHROOM"
	ElementCategoryKitchen    ElementCategory = "KITCHEN"
	ElementCategoryOpenings   ElementCategory = "OPENINGS"
	ElementCategoryElectrical ElementCategory = "ELECTRICAL"
	ElementCategoryPlumbing   ElementCategory = "PLUMBING"
	ElementCategoryFurniture  ElementCategory = "FURNITURE"
	ElementCategoryAppliance  ElementCategory = "APPLIANCE"
	ElementCategoryOther      ElementCategory = "OTHER"
)

type InspectionStatus string

const (
	InspectionStatusPending InspectionStatus = "PENDING"
	InspectionStatusOK      InspectionStatus = "OK"
	InspectionStatusProblem InspectionStatus = "PROBLEM"
)

type DamageType string

const (
	// Empty string means the item has not been classified yet.
	DamageTypeTenantDamage          DamageType = "TENANT_DAMAGE"
	DamageTypeNormalWear            DamageType = "NORMAL_WEAR"
	DamageTypeRecommendedRenovation DamageType = "RECOMMENDED_RENOVATION"
)

// InspectionItem is one inspected element of the property. Only PROBLEM
// items carry a cost; DamageType, EstimatedCostCents and VetustyRate are
// set by the classifier and immutable afterward except by explicit
// re-classification.
type InspectionItem struct {
	ID                 int32            `json:"id"`
	ProcessID          int32            `json:"process_id"`
	Category           ElementCategory  `json:"category"`
	Label              string           `json:"label"`
	Status             InspectionStatus `json:"status"`
	ProblemDescription string           `json:"problem_description"`
	// TenantFault is the inspector's explicit misuse flag; the classifier
	// also matches ProblemDescription against the misuse taxonomy.
	TenantFault     bool       `json:"tenant_fault"`
	ElementAgeYears *float64   `json:"element_age_years,omitempty"`
	DamageType      DamageType `json:"damage_type,omitempty"`
	// VetustyRate is only meaningful when DamageType is NORMAL_WEAR.
	VetustyRate        float64    `json:"vetusty_rate,omitempty"`
	EstimatedCostCents int64      `json:"estimated_cost_cents"`
	ClassifiedAt       *time.Time `json:"classified_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsClassified reports whether the classifier has assigned a damage type.
// Non-problem items never need classification.
func (i *InspectionItem) IsClassified() bool {
	return i.Status != InspectionStatusProblem || i.DamageType != ""
}
