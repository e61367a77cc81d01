package repository

import (
	"context"
	"time"

	"leaseend-backend/internal/domain"
)

// ProcessRepository defines lease-end process data access
type ProcessRepository interface {
	Create(ctx context.Context, process *domain.LeaseEndProcess) error
	GetByID(ctx context.Context, id int32) (*domain.LeaseEndProcess, error)
	GetByReference(ctx context.Context, reference string) (*domain.LeaseEndProcess, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.LeaseEndProcess, error)
	ListByStatus(ctx context.Context, status domain.ProcessStatus) ([]domain.LeaseEndProcess, error)
	ListStalled(ctx context.Context, inactiveSince time.Time) ([]domain.LeaseEndProcess, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ProcessStatus) error
	// UpdateTotals writes all derived settlement amounts in a single
	// statement so a partial write can never be observed.
	UpdateTotals(ctx context.Context, id int32, totals domain.SettlementTotals) error
	TouchActivity(ctx context.Context, id int32) error
	UpdatePlanStartDate(ctx context.Context, id int32, planStartDate string) error
}

// InspectionItemRepository defines exit-inspection line item data access
type InspectionItemRepository interface {
	// CreateBatch stores one inspection's items, classification included,
	// in a single transaction.
	CreateBatch(ctx context.Context, processID int32, items []domain.InspectionItem) error
	ListByProcess(ctx context.Context, processID int32) ([]domain.InspectionItem, error)
	DeleteByProcess(ctx context.Context, processID int32) error
}

// RenovationItemRepository defines renovation work item data access
type RenovationItemRepository interface {
	Create(ctx context.Context, item *domain.RenovationItem) error
	GetByID(ctx context.Context, id int32) (*domain.RenovationItem, error)
	ListByProcess(ctx context.Context, processID int32) ([]domain.RenovationItem, error)
	Update(ctx context.Context, item *domain.RenovationItem) error
	Delete(ctx context.Context, id int32) error
}

// TimelineRepository defines timeline item data access
type TimelineRepository interface {
	// ReplaceForProcess deletes the existing plan and inserts the new one
	// so that regenerating a timeline is idempotent.
	ReplaceForProcess(ctx context.Context, processID int32, items []domain.TimelineItem) error
	ListByProcess(ctx context.Context, processID int32) ([]domain.TimelineItem, error)
	UpdateStatus(ctx context.Context, id int32, status domain.TimelineItemStatus) error
	ListDueOn(ctx context.Context, day string) ([]domain.TimelineItem, error)
}

// NotificationRepository defines notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUser(ctx context.Context, userID int32, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int32) error
}

// UserRepository defines user data access. Users are owned by the auth
// service; this side only reads recipients for emails and notifications.
type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}
