package settlement

import (
	"fmt"

	"leaseend-backend/internal/domain"
)

// statusOrder is the forward progression of a lease-end process.
// Cancelled sits outside the order as a side terminal.
var statusOrder = []domain.ProcessStatus{
	domain.ProcessStatusPending,
	domain.ProcessStatusTriggered,
	domain.ProcessStatusEDLScheduled,
	domain.ProcessStatusEDLInProgress,
	domain.ProcessStatusEDLCompleted,
	domain.ProcessStatusDamagesAssessed,
	domain.ProcessStatusDGCalculated,
	domain.ProcessStatusRenovationPlanned,
	domain.ProcessStatusRenovationInProgress,
	domain.ProcessStatusReadyToRent,
	domain.ProcessStatusCompleted,
}

// progressByStatus maps each status to the fixed display percentage.
// Monotonically increasing along statusOrder; purely for UI, never for
// business gating.
var progressByStatus = map[domain.ProcessStatus]int32{
	domain.ProcessStatusPending:              0,
	domain.ProcessStatusTriggered:            10,
	domain.ProcessStatusEDLScheduled:         15,
	domain.ProcessStatusEDLInProgress:        25,
	domain.ProcessStatusEDLCompleted:         35,
	domain.ProcessStatusDamagesAssessed:      45,
	domain.ProcessStatusDGCalculated:         55,
	domain.ProcessStatusRenovationPlanned:    65,
	domain.ProcessStatusRenovationInProgress: 75,
	domain.ProcessStatusReadyToRent:          90,
	domain.ProcessStatusCompleted:            100,
	domain.ProcessStatusCancelled:            0,
}

// ProgressFor returns the display percentage for a status. Unknown or
// future statuses map to 0 so UI rendering stays robust.
func ProgressFor(status domain.ProcessStatus) int32 {
	return progressByStatus[status]
}

// IsKnownStatus reports whether the status is part of the lifecycle.
func IsKnownStatus(status domain.ProcessStatus) bool {
	_, ok := progressByStatus[status]
	return ok
}

func statusIndex(status domain.ProcessStatus) int {
	for i, s := range statusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

// CanTransition validates a status change.
//
// In the default (permissive) mode any known, non-terminal source may
// move to any known target: the orchestrating caller owns precondition
// sequencing and the legacy system depends on being able to skip steps.
// In strict mode only the immediate successor, cancellation, and the
// documented no-renovation fast path (DG_CALCULATED → READY_TO_RENT) are
// accepted.
func CanTransition(from, to domain.ProcessStatus, strict bool) error {
	if !IsKnownStatus(from) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, from)
	}
	if !IsKnownStatus(to) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if from == domain.ProcessStatusCompleted || from == domain.ProcessStatusCancelled {
		return fmt.Errorf("%w: %q is terminal", ErrInvalidTransition, from)
	}
	if to == domain.ProcessStatusCancelled {
		return nil
	}
	if !strict {
		return nil
	}

	fromIdx, toIdx := statusIndex(from), statusIndex(to)
	if toIdx == fromIdx+1 {
		return nil
	}
	if from == domain.ProcessStatusDGCalculated && to == domain.ProcessStatusReadyToRent {
		// Fast path: nothing to renovate.
		return nil
	}
	return fmt.Errorf("%w: %q -> %q is not allowed in strict mode", ErrInvalidTransition, from, to)
}
