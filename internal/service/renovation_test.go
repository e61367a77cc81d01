package service_test

import (
	"context"
	"testing"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/service"
	"leaseend-backend/internal/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type renovationFixture struct {
	*leaseEndFixture
	svc service.RenovationService
}

func newRenovationFixture() *renovationFixture {
	base := newLeaseEndFixture(false)
	return &renovationFixture{
		leaseEndFixture: base,
		svc:             service.NewRenovationService(base.renovationRepo, base.processRepo, base.svc),
	}
}

func TestRenovationService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("SplitsCostToPayerAndRecomputes", func(t *testing.T) {
		f := newRenovationFixture()
		process := &domain.LeaseEndProcess{ID: 1, OwnerID: 5, Status: domain.ProcessStatusDGCalculated, DepositCents: 100000}
		f.processRepo.On("GetByID", ctx, int32(1)).Return(process, nil)
		f.renovationRepo.On("Create", ctx, mock.AnythingOfType("*domain.RenovationItem")).Return(nil)
		f.inspectionRepo.On("ListByProcess", ctx, int32(1)).Return([]domain.InspectionItem{}, nil)
		f.renovationRepo.On("ListByProcess", ctx, int32(1)).Return([]domain.RenovationItem{
			{ID: 31, ProcessID: 1, WorkType: domain.WorkTypePaint, EstimatedCostCents: 30000, Payer: domain.PayerOwner, OwnerShareCents: 30000},
		}, nil)
		f.processRepo.On("UpdateTotals", ctx, int32(1), mock.AnythingOfType("domain.SettlementTotals")).Return(nil)
		f.processRepo.On("UpdateStatus", ctx, int32(1), domain.ProcessStatusDGCalculated).Return(nil)

		item := &domain.RenovationItem{
			ProcessID:          1,
			WorkType:           domain.WorkTypePaint,
			Description:        "Repaint living room",
			EstimatedCostCents: 30000,
			Payer:              domain.PayerOwner,
		}
		err := f.svc.AddItem(ctx, item)
		assert.NoError(t, err)
		assert.Equal(t, int64(30000), item.OwnerShareCents)
		assert.Equal(t, int64(0), item.TenantShareCents)
		f.processRepo.AssertCalled(t, "UpdateTotals", ctx, int32(1), mock.AnythingOfType("domain.SettlementTotals"))
	})

	t.Run("RejectsMismatchedShares", func(t *testing.T) {
		f := newRenovationFixture()
		process := &domain.LeaseEndProcess{ID: 1, Status: domain.ProcessStatusDGCalculated}
		f.processRepo.On("GetByID", ctx, int32(1)).Return(process, nil)

		item := &domain.RenovationItem{
			ProcessID:          1,
			WorkType:           domain.WorkTypePaint,
			EstimatedCostCents: 30000,
			Payer:              domain.PayerOwner,
			TenantShareCents:   10000,
			OwnerShareCents:    10000,
		}
		err := f.svc.AddItem(ctx, item)
		assert.ErrorIs(t, err, settlement.ErrInvalidInput)
		f.renovationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RejectsTerminalProcess", func(t *testing.T) {
		f := newRenovationFixture()
		process := &domain.LeaseEndProcess{ID: 1, Status: domain.ProcessStatusCompleted}
		f.processRepo.On("GetByID", ctx, int32(1)).Return(process, nil)

		item := &domain.RenovationItem{ProcessID: 1, WorkType: domain.WorkTypePaint, EstimatedCostCents: 1000, Payer: domain.PayerOwner}
		err := f.svc.AddItem(ctx, item)
		assert.ErrorIs(t, err, settlement.ErrInconsistentState)
	})
}

func TestRenovationService_AcceptQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("SetsTimestampOnceAndRecomputes", func(t *testing.T) {
		f := newRenovationFixture()
		process := &domain.LeaseEndProcess{ID: 1, OwnerID: 5, Status: domain.ProcessStatusRenovationPlanned, DepositCents: 100000}
		stored := &domain.RenovationItem{ID: 31, ProcessID: 1, WorkType: domain.WorkTypePaint, EstimatedCostCents: 30000, Payer: domain.PayerOwner, OwnerShareCents: 30000}

		f.renovationRepo.On("GetByID", ctx, int32(31)).Return(stored, nil)
		f.renovationRepo.On("Update", ctx, stored).Return(nil)
		f.processRepo.On("GetByID", ctx, int32(1)).Return(process, nil)
		f.inspectionRepo.On("ListByProcess", ctx, int32(1)).Return([]domain.InspectionItem{}, nil)
		f.renovationRepo.On("ListByProcess", ctx, int32(1)).Return([]domain.RenovationItem{*stored}, nil)
		f.processRepo.On("UpdateTotals", ctx, int32(1), mock.AnythingOfType("domain.SettlementTotals")).Return(nil)
		f.processRepo.On("UpdateStatus", ctx, int32(1), domain.ProcessStatusDGCalculated).Return(nil)

		item, err := f.svc.AcceptQuote(ctx, 1, 31)
		assert.NoError(t, err)
		assert.NotNil(t, item.QuoteAcceptedAt)

		// Second acceptance is a no-op.
		again, err := f.svc.AcceptQuote(ctx, 1, 31)
		assert.NoError(t, err)
		assert.Equal(t, item.QuoteAcceptedAt, again.QuoteAcceptedAt)
		f.renovationRepo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("WrongProcessRejected", func(t *testing.T) {
		f := newRenovationFixture()
		stored := &domain.RenovationItem{ID: 31, ProcessID: 2, WorkType: domain.WorkTypePaint, Payer: domain.PayerOwner}
		f.renovationRepo.On("GetByID", ctx, int32(31)).Return(stored, nil)

		_, err := f.svc.AcceptQuote(ctx, 1, 31)
		assert.ErrorIs(t, err, settlement.ErrInvalidInput)
	})
}
