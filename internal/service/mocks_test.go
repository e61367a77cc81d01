package service_test

import (
	"context"
	"time"

	"leaseend-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockProcessRepo
type MockProcessRepo struct {
	mock.Mock
}

func (m *MockProcessRepo) Create(ctx context.Context, p *domain.LeaseEndProcess) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProcessRepo) GetByID(ctx context.Context, id int32) (*domain.LeaseEndProcess, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseEndProcess), args.Error(1)
}
func (m *MockProcessRepo) GetByReference(ctx context.Context, reference string) (*domain.LeaseEndProcess, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseEndProcess), args.Error(1)
}
func (m *MockProcessRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.LeaseEndProcess, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.LeaseEndProcess), args.Error(1)
}
func (m *MockProcessRepo) ListByStatus(ctx context.Context, status domain.ProcessStatus) ([]domain.LeaseEndProcess, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.LeaseEndProcess), args.Error(1)
}
func (m *MockProcessRepo) ListStalled(ctx context.Context, inactiveSince time.Time) ([]domain.LeaseEndProcess, error) {
	args := m.Called(ctx, inactiveSince)
	return args.Get(0).([]domain.LeaseEndProcess), args.Error(1)
}
func (m *MockProcessRepo) UpdateStatus(ctx context.Context, id int32, status domain.ProcessStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockProcessRepo) UpdateTotals(ctx context.Context, id int32, totals domain.SettlementTotals) error {
	args := m.Called(ctx, id, totals)
	return args.Error(0)
}
func (m *MockProcessRepo) TouchActivity(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProcessRepo) UpdatePlanStartDate(ctx context.Context, id int32, planStartDate string) error {
	args := m.Called(ctx, id, planStartDate)
	return args.Error(0)
}

// MockInspectionRepo
type MockInspectionRepo struct {
	mock.Mock
}

func (m *MockInspectionRepo) CreateBatch(ctx context.Context, processID int32, items []domain.InspectionItem) error {
	args := m.Called(ctx, processID, items)
	return args.Error(0)
}
func (m *MockInspectionRepo) ListByProcess(ctx context.Context, processID int32) ([]domain.InspectionItem, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).([]domain.InspectionItem), args.Error(1)
}
func (m *MockInspectionRepo) DeleteByProcess(ctx context.Context, processID int32) error {
	args := m.Called(ctx, processID)
	return args.Error(0)
}

// MockRenovationRepo
type MockRenovationRepo struct {
	mock.Mock
}

func (m *MockRenovationRepo) Create(ctx context.Context, item *domain.RenovationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockRenovationRepo) GetByID(ctx context.Context, id int32) (*domain.RenovationItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenovationItem), args.Error(1)
}
func (m *MockRenovationRepo) ListByProcess(ctx context.Context, processID int32) ([]domain.RenovationItem, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).([]domain.RenovationItem), args.Error(1)
}
func (m *MockRenovationRepo) Update(ctx context.Context, item *domain.RenovationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockRenovationRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTimelineRepo
type MockTimelineRepo struct {
	mock.Mock
}

func (m *MockTimelineRepo) ReplaceForProcess(ctx context.Context, processID int32, items []domain.TimelineItem) error {
	args := m.Called(ctx, processID, items)
	return args.Error(0)
}
func (m *MockTimelineRepo) ListByProcess(ctx context.Context, processID int32) ([]domain.TimelineItem, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).([]domain.TimelineItem), args.Error(1)
}
func (m *MockTimelineRepo) UpdateStatus(ctx context.Context, id int32, status domain.TimelineItemStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockTimelineRepo) ListDueOn(ctx context.Context, day string) ([]domain.TimelineItem, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.TimelineItem), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID int32, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendTimelineReminder(ctx context.Context, toEmail, toName string, item domain.TimelineItem) error {
	args := m.Called(ctx, toEmail, toName, item)
	return args.Error(0)
}
func (m *MockEmailService) SendRefundStatement(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error {
	args := m.Called(ctx, toEmail, toName, process)
	return args.Error(0)
}
func (m *MockEmailService) SendStalledProcessAlert(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error {
	args := m.Called(ctx, toEmail, toName, process)
	return args.Error(0)
}
func (m *MockEmailService) SendDepositRetentionNotice(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error {
	args := m.Called(ctx, toEmail, toName, process)
	return args.Error(0)
}
