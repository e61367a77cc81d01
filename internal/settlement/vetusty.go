package settlement

import (
	"leaseend-backend/internal/domain"
)

// VetustyEntry describes the contractual wear-and-tear schedule for one
// element category: how long the element is expected to last, how much of
// its value depreciates per year, and the floor below which the tenant's
// liability never drops.
type VetustyEntry struct {
	LifespanYears       float64
	YearlyDepreciation  float64
	MinResidualFraction float64
}

// vetustyTable is the reference wear-and-tear grid. Categories without an
// entry (e.g. OTHER) deliberately have none: callers fall back to full
// replacement cost with zero depreciation.
var vetustyTable = map[domain.ElementCategory]VetustyEntry{
	domain.ElementCategoryWall:       {LifespanYears: 10, YearlyDepreciation: 0.10, MinResidualFraction: 0.10},
	domain.ElementCategoryFloor:      {LifespanYears: 15, YearlyDepreciation: 0.07, MinResidualFraction: 0.10},
	domain.ElementCategoryBathroom:   {LifespanYears: 20, YearlyDepreciation: 0.05, MinResidualFraction: 0.15},
	domain.ElementCategoryKitchen:    {LifespanYears: 15, YearlyDepreciation: 0.07, MinResidualFraction: 0.15},
	domain.ElementCategoryOpenings:   {LifespanYears: 20, YearlyDepreciation: 0.05, MinResidualFraction: 0.20},
	domain.ElementCategoryElectrical: {LifespanYears: 25, YearlyDepreciation: 0.04, MinResidualFraction: 0.20},
	domain.ElementCategoryPlumbing:   {LifespanYears: 25, YearlyDepreciation: 0.04, MinResidualFraction: 0.20},
	domain.ElementCategoryFurniture:  {LifespanYears: 10, YearlyDepreciation: 0.10, MinResidualFraction: 0.10},
	domain.ElementCategoryAppliance:  {LifespanYears: 8, YearlyDepreciation: 0.125, MinResidualFraction: 0.10},
}

// LookupVetusty returns the wear-and-tear schedule for a category.
// Absence of an entry is not an error.
func LookupVetusty(category domain.ElementCategory) (VetustyEntry, bool) {
	entry, ok := vetustyTable[category]
	return entry, ok
}

// RateForAge converts an element age into the depreciated fraction of its
// original value, clamped to [0, 1].
func (e VetustyEntry) RateForAge(ageYears float64) float64 {
	if ageYears <= 0 || e.LifespanYears <= 0 {
		return 0
	}
	rate := ageYears / e.LifespanYears
	if rate > 1 {
		return 1
	}
	return rate
}
