package domain

import "time"

type TimelineActionType string

const (
	TimelineActionDepositRetentionNotice TimelineActionType = "DEPOSIT_RETENTION_NOTICE"
	TimelineActionRequestQuotes          TimelineActionType = "REQUEST_QUOTES"
	TimelineActionSelectQuote            TimelineActionType = "SELECT_QUOTE"
	TimelineActionStartRenovation        TimelineActionType = "START_RENOVATION"
	TimelineActionTakePhotos             TimelineActionType = "TAKE_PHOTOS"
	TimelineActionMarkReady              TimelineActionType = "MARK_READY"
	TimelineActionCreateListing          TimelineActionType = "CREATE_LISTING"
	TimelineActionCustom                 TimelineActionType = "CUSTOM"
)

type TimelineItemStatus string

const (
	TimelineItemStatusPending    TimelineItemStatus = "PENDING"
	TimelineItemStatusInProgress TimelineItemStatus = "IN_PROGRESS"
	TimelineItemStatusCompleted  TimelineItemStatus = "COMPLETED"
)

// TimelineItem is one scheduled action in the recovery plan. Items are
// never deleted, only marked completed; regeneration replaces the whole
// set for a process.
type TimelineItem struct {
	ID            int32              `json:"id"`
	ProcessID     int32              `json:"process_id"`
	DayOffset     int32              `json:"day_offset"`
	ActionType    TimelineActionType `json:"action_type"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Status        TimelineItemStatus `json:"status"`
	ScheduledDate string             `json:"scheduled_date"` // Format: 'YYYY-MM-DD'
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
