package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/logger"
	"leaseend-backend/internal/repository"
	"leaseend-backend/internal/settlement"
)

type renovationService struct {
	renovationRepo repository.RenovationItemRepository
	processRepo    repository.ProcessRepository
	leaseEndSvc    LeaseEndService
}

func NewRenovationService(
	renovationRepo repository.RenovationItemRepository,
	processRepo repository.ProcessRepository,
	leaseEndSvc LeaseEndService,
) RenovationService {
	return &renovationService{
		renovationRepo: renovationRepo,
		processRepo:    processRepo,
		leaseEndSvc:    leaseEndSvc,
	}
}

func (s *renovationService) AddItem(ctx context.Context, item *domain.RenovationItem) error {
	logger.EnterMethod("renovationService.AddItem", "processID", item.ProcessID, "workType", item.WorkType)

	process, err := s.leaseEndSvc.GetProcess(ctx, item.ProcessID)
	if err != nil {
		return err
	}
	if process.IsTerminal() {
		return fmt.Errorf("%w: process %d is %s", settlement.ErrInconsistentState, process.ID, process.Status)
	}

	if err := validateRenovationItem(item); err != nil {
		return err
	}
	if item.TenantShareCents == 0 && item.OwnerShareCents == 0 && item.EstimatedCostCents > 0 {
		item.ApplyPayerSplit()
	}
	if item.TenantShareCents+item.OwnerShareCents != item.EstimatedCostCents {
		return fmt.Errorf("%w: shares must sum to the estimated cost", settlement.ErrInvalidInput)
	}

	if err := s.renovationRepo.Create(ctx, item); err != nil {
		logger.ExitMethodWithError("renovationService.AddItem", err, "processID", item.ProcessID)
		return err
	}

	if _, err := s.leaseEndSvc.RecomputeSettlement(ctx, item.ProcessID); err != nil {
		return err
	}

	logger.ExitMethod("renovationService.AddItem", "itemID", item.ID)
	return nil
}

func (s *renovationService) GetItem(ctx context.Context, id int32) (*domain.RenovationItem, error) {
	item, err := s.renovationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: renovation item %d", settlement.ErrProcessNotFound, id)
		}
		return nil, err
	}
	return item, nil
}

func (s *renovationService) ListItems(ctx context.Context, processID int32) ([]domain.RenovationItem, error) {
	if _, err := s.leaseEndSvc.GetProcess(ctx, processID); err != nil {
		return nil, err
	}
	return s.renovationRepo.ListByProcess(ctx, processID)
}

func (s *renovationService) UpdateItem(ctx context.Context, item *domain.RenovationItem) error {
	existing, err := s.GetItem(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing.ProcessID != item.ProcessID {
		return fmt.Errorf("%w: item %d does not belong to process %d", settlement.ErrInvalidInput, item.ID, item.ProcessID)
	}

	if err := validateRenovationItem(item); err != nil {
		return err
	}
	if item.TenantShareCents+item.OwnerShareCents != item.EstimatedCostCents {
		return fmt.Errorf("%w: shares must sum to the estimated cost", settlement.ErrInvalidInput)
	}

	if err := s.renovationRepo.Update(ctx, item); err != nil {
		return err
	}

	_, err = s.leaseEndSvc.RecomputeSettlement(ctx, item.ProcessID)
	return err
}

func (s *renovationService) DeleteItem(ctx context.Context, processID, itemID int32) error {
	existing, err := s.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if existing.ProcessID != processID {
		return fmt.Errorf("%w: item %d does not belong to process %d", settlement.ErrInvalidInput, itemID, processID)
	}

	if err := s.renovationRepo.Delete(ctx, itemID); err != nil {
		return err
	}

	_, err = s.leaseEndSvc.RecomputeSettlement(ctx, processID)
	return err
}

func (s *renovationService) AcceptQuote(ctx context.Context, processID, itemID int32) (*domain.RenovationItem, error) {
	logger.EnterMethod("renovationService.AcceptQuote", "processID", processID, "itemID", itemID)

	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ProcessID != processID {
		return nil, fmt.Errorf("%w: item %d does not belong to process %d", settlement.ErrInvalidInput, itemID, processID)
	}
	if item.QuoteAcceptedAt != nil {
		return item, nil
	}

	now := time.Now()
	item.QuoteAcceptedAt = &now
	if err := s.renovationRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if _, err := s.leaseEndSvc.RecomputeSettlement(ctx, processID); err != nil {
		return nil, err
	}

	logger.ExitMethod("renovationService.AcceptQuote", "itemID", itemID)
	return item, nil
}

func validateRenovationItem(item *domain.RenovationItem) error {
	if item.EstimatedCostCents < 0 {
		return fmt.Errorf("%w: estimated cost must not be negative", settlement.ErrInvalidInput)
	}
	if item.TenantShareCents < 0 || item.OwnerShareCents < 0 {
		return fmt.Errorf("%w: shares must not be negative", settlement.ErrInvalidInput)
	}
	switch item.Payer {
	case domain.PayerTenant, domain.PayerOwner:
	default:
		return fmt.Errorf("%w: unknown payer %q", settlement.ErrInvalidInput, item.Payer)
	}
	return nil
}
