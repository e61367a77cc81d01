package settlement

import (
	"fmt"
	"math"
	"strings"

	"leaseend-backend/internal/domain"
)

// Policy holds the configurable classification rules. The defaults mirror
// the grids shipped with the product; deployments override them through
// configuration, never by editing the tables.
type Policy struct {
	// MisuseKeywords is the taxonomy matched (case-insensitively) against
	// the problem description to detect tenant misuse.
	MisuseKeywords []string
	// FallbackCostCents is assigned when no repair-cost entry matches.
	// A problem item never leaves classification without a cost.
	FallbackCostCents int64
	// CostTier selects which bound of the repair-cost range to use.
	CostTier CostTier
}

// DefaultPolicy returns the stock classification policy.
func DefaultPolicy() Policy {
	return Policy{
		MisuseKeywords: []string{
			"hole", "burn", "broken", "smashed", "stain", "scratched",
			"torn", "missing", "forced", "impact",
		},
		FallbackCostCents: 25000,
		CostTier:          CostTierAvg,
	}
}

type Classifier struct {
	policy Policy
}

func NewClassifier(policy Policy) *Classifier {
	if policy.FallbackCostCents <= 0 {
		policy.FallbackCostCents = DefaultPolicy().FallbackCostCents
	}
	if policy.CostTier == "" {
		policy.CostTier = CostTierAvg
	}
	return &Classifier{policy: policy}
}

// Classify assigns a damage type, an estimated cost and, for normal wear,
// a vetusty rate to one inspected item. leaseYears is the depreciation
// proxy used when the element's own age is unknown. Items that are not
// problems are returned unchanged.
func (c *Classifier) Classify(item domain.InspectionItem, leaseYears float64) (domain.InspectionItem, error) {
	if item.Status != domain.InspectionStatusProblem {
		return item, nil
	}
	if item.Category == "" {
		return item, fmt.Errorf("%w: problem item %d has no category", ErrInvalidInput, item.ID)
	}
	if !validAge(leaseYears) {
		return item, fmt.Errorf("%w: lease duration %v is not a usable age", ErrInvalidInput, leaseYears)
	}
	if item.ElementAgeYears != nil && !validAge(*item.ElementAgeYears) {
		return item, fmt.Errorf("%w: element age %v on item %d is not a usable age", ErrInvalidInput, *item.ElementAgeYears, item.ID)
	}

	baseCost := c.policy.FallbackCostCents
	entry, hasCost := LookupRepairCost(WorkTypeForCategory(item.Category))
	if hasCost {
		baseCost = entry.CostForTier(c.policy.CostTier)
	}

	if item.TenantFault || c.matchesMisuse(item.ProblemDescription) {
		// Tenant misuse: full repair cost, no depreciation.
		item.DamageType = domain.DamageTypeTenantDamage
		item.EstimatedCostCents = baseCost
		item.VetustyRate = 0
		return item, nil
	}

	age := leaseYears
	if item.ElementAgeYears != nil {
		age = *item.ElementAgeYears
	}
	if vet, ok := LookupVetusty(item.Category); ok && age > 0 {
		rate := vet.RateForAge(age)
		residual := 1 - rate
		if residual < vet.MinResidualFraction {
			residual = vet.MinResidualFraction
		}
		item.DamageType = domain.DamageTypeNormalWear
		item.VetustyRate = rate
		item.EstimatedCostCents = int64(math.Round(float64(baseCost) * residual))
		return item, nil
	}

	// No depreciation path applies: owner-optional improvement, never
	// charged against the deposit.
	item.DamageType = domain.DamageTypeRecommendedRenovation
	item.EstimatedCostCents = baseCost
	item.VetustyRate = 0
	return item, nil
}

// validAge accepts zero: an unknown age routes the item to the
// recommended-renovation path rather than failing the inspection.
func validAge(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c *Classifier) matchesMisuse(description string) bool {
	if description == "" {
		return false
	}
	lower := strings.ToLower(description)
	for _, kw := range c.policy.MisuseKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
