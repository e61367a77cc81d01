package settlement

import (
	"strings"

	"leaseend-backend/internal/domain"
)

// RepairCostEntry is the estimated cost range for one work type, in cents
// per unit of work.
type RepairCostEntry struct {
	Unit     string
	MinCents int64
	AvgCents int64
	MaxCents int64
}

// repairCostTable is the reference price grid used for damage estimation.
// WorkTypeOther deliberately has no entry: callers fall back to the
// configured default cost.
var repairCostTable = map[domain.WorkType]RepairCostEntry{
	domain.WorkTypePaint:      {Unit: "room", MinCents: 30000, AvgCents: 55000, MaxCents: 90000},
	domain.WorkTypeFlooring:   {Unit: "room", MinCents: 50000, AvgCents: 90000, MaxCents: 150000},
	domain.WorkTypePlumbing:   {Unit: "job", MinCents: 15000, AvgCents: 35000, MaxCents: 80000},
	domain.WorkTypeElectrical: {Unit: "job", MinCents: 12000, AvgCents: 30000, MaxCents: 70000},
	domain.WorkTypeCarpentry:  {Unit: "job", MinCents: 20000, AvgCents: 45000, MaxCents: 100000},
	domain.WorkTypeCleaning:   {Unit: "job", MinCents: 15000, AvgCents: 25000, MaxCents: 40000},
	domain.WorkTypeBathroom:   {Unit: "room", MinCents: 80000, AvgCents: 150000, MaxCents: 300000},
	domain.WorkTypeKitchen:    {Unit: "room", MinCents: 70000, AvgCents: 140000, MaxCents: 280000},
}

// LookupRepairCost returns the cost range for a work type. Absence of an
// entry is not an error.
func LookupRepairCost(workType domain.WorkType) (RepairCostEntry, bool) {
	entry, ok := repairCostTable[workType]
	return entry, ok
}

// WorkTypeForCategory maps an inspected element category to the work type
// used for cost lookup.
func WorkTypeForCategory(category domain.ElementCategory) domain.WorkType {
	switch category {
	case domain.ElementCategoryWall:
		return domain.WorkTypePaint
	case domain.ElementCategoryFloor:
		return domain.WorkTypeFlooring
	case domain.ElementCategoryBathroom:
		return domain.WorkTypeBathroom
	case domain.ElementCategoryKitchen:
		return domain.WorkTypeKitchen
	case domain.ElementCategoryOpenings, domain.ElementCategoryFurniture:
		return domain.WorkTypeCarpentry
	case domain.ElementCategoryElectrical, domain.ElementCategoryAppliance:
		return domain.WorkTypeElectrical
	case domain.ElementCategoryPlumbing:
		return domain.WorkTypePlumbing
	default:
		return domain.WorkTypeOther
	}
}

// CostForTier selects one bound of the range. Tier names match
// case-insensitively; configuration files carry them in lowercase.
func (e RepairCostEntry) CostForTier(tier CostTier) int64 {
	switch CostTier(strings.ToUpper(string(tier))) {
	case CostTierMin:
		return e.MinCents
	case CostTierMax:
		return e.MaxCents
	default:
		return e.AvgCents
	}
}

type CostTier string

const (
	CostTierMin CostTier = "MIN"
	CostTierAvg CostTier = "AVG"
	CostTierMax CostTier = "MAX"
)
