package settlement

import (
	"fmt"
	"time"

	"leaseend-backend/internal/domain"
)

// GenerateTimeline builds the ordered day-offset recovery plan for one
// process. It is deterministic for a given input and carries no state, so
// regeneration is a pure replace of the previous set.
//
// The standard plan runs over seven days: retention notice on day 0,
// quote handling on days 1-3, renovation starting day 3, photos day 6 and
// the ready/listing pair on day 7. The renovation span stretches with the
// number of items and pushes the tail actions out accordingly. When there
// is no owner-side work at all, the plan degenerates to a single
// "mark ready" item at day 0, never an empty timeline.
func GenerateTimeline(planStart time.Time, processID int32, retentionCents, ownerBudgetCents int64, renovationCount int) []domain.TimelineItem {
	var items []domain.TimelineItem

	add := func(dayOffset int32, action domain.TimelineActionType, title, description string) {
		items = append(items, domain.TimelineItem{
			ProcessID:     processID,
			DayOffset:     dayOffset,
			ActionType:    action,
			Title:         title,
			Description:   description,
			Status:        domain.TimelineItemStatusPending,
			ScheduledDate: planStart.AddDate(0, 0, int(dayOffset)).Format("2006-01-02"),
		})
	}

	if retentionCents > 0 {
		add(0, domain.TimelineActionDepositRetentionNotice,
			"Send deposit retention notice",
			fmt.Sprintf("Notify the tenant that %.2f will be retained from the deposit", float64(retentionCents)/100))
	}

	if ownerBudgetCents == 0 && renovationCount == 0 {
		add(0, domain.TimelineActionMarkReady,
			"Mark property ready to rent",
			"No renovation work required; the unit can be listed immediately")
		return items
	}

	startDay := int32(1)
	if renovationCount > 0 {
		add(1, domain.TimelineActionRequestQuotes,
			"Request renovation quotes",
			fmt.Sprintf("Collect quotes for %d work item(s)", renovationCount))
		add(3, domain.TimelineActionSelectQuote,
			"Select a quote",
			"Compare received quotes and confirm the contractor")
		startDay = 3
	}

	span := int32(2)
	if renovationCount > 2 {
		span += int32((renovationCount - 1) / 2)
	}
	add(startDay, domain.TimelineActionStartRenovation,
		"Start renovation work",
		fmt.Sprintf("Planned duration: %d day(s)", span))

	photosDay := startDay + span + 1
	if photosDay < 6 {
		photosDay = 6
	}
	add(photosDay, domain.TimelineActionTakePhotos,
		"Take listing photos",
		"Photograph the renovated unit for the new listing")

	readyDay := photosDay + 1
	add(readyDay, domain.TimelineActionMarkReady,
		"Mark property ready to rent",
		"Confirm the unit is back in rentable condition")
	add(readyDay, domain.TimelineActionCreateListing,
		"Create rental listing",
		"Publish the listing to put the unit back on the market")

	return items
}

// Progress returns the completed fraction of a plan in [0, 1]. An empty
// plan is 0 by convention, not NaN.
func Progress(items []domain.TimelineItem) float64 {
	if len(items) == 0 {
		return 0
	}
	completed := 0
	for _, item := range items {
		if item.Status == domain.TimelineItemStatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(items))
}
