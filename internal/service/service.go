package service

import (
	"context"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/settlement"
)

type LeaseEndService interface {
	CreateProcess(ctx context.Context, process *domain.LeaseEndProcess) error
	GetProcess(ctx context.Context, id int32) (*domain.LeaseEndProcess, error)
	GetProcessByReference(ctx context.Context, reference string) (*domain.LeaseEndProcess, error)
	ListProcesses(ctx context.Context, ownerID int32) ([]domain.LeaseEndProcess, error)
	AdvanceStatus(ctx context.Context, processID int32, to domain.ProcessStatus) (*domain.LeaseEndProcess, error)
	CancelProcess(ctx context.Context, processID int32) error
	ProcessProgress(ctx context.Context, processID int32) (int32, error)

	SubmitInspection(ctx context.Context, processID int32, items []domain.InspectionItem, leaseYears float64) ([]domain.InspectionItem, error)
	ListInspectionItems(ctx context.Context, processID int32) ([]domain.InspectionItem, error)
	RecomputeSettlement(ctx context.Context, processID int32) (settlement.SettlementResult, error)

	GenerateTimeline(ctx context.Context, processID int32, planStartDate string) ([]domain.TimelineItem, error)
	GetTimeline(ctx context.Context, processID int32) ([]domain.TimelineItem, float64, error)
	CompleteTimelineItem(ctx context.Context, processID, itemID int32) error
}

type RenovationService interface {
	AddItem(ctx context.Context, item *domain.RenovationItem) error
	GetItem(ctx context.Context, id int32) (*domain.RenovationItem, error)
	ListItems(ctx context.Context, processID int32) ([]domain.RenovationItem, error)
	UpdateItem(ctx context.Context, item *domain.RenovationItem) error
	DeleteItem(ctx context.Context, processID, itemID int32) error
	AcceptQuote(ctx context.Context, processID, itemID int32) (*domain.RenovationItem, error)
}

type NotificationService interface {
	Notify(ctx context.Context, userID, processID int32, title, message string, attributes map[string]string) error
	List(ctx context.Context, userID int32, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int32) error
}

type EmailService interface {
	SendTimelineReminder(ctx context.Context, toEmail, toName string, item domain.TimelineItem) error
	SendRefundStatement(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error
	SendStalledProcessAlert(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error
	SendDepositRetentionNotice(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error
}
