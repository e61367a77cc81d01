package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/logger"
	"leaseend-backend/internal/repository"
	"leaseend-backend/internal/settlement"
)

type leaseEndService struct {
	processRepo    repository.ProcessRepository
	inspectionRepo repository.InspectionItemRepository
	renovationRepo repository.RenovationItemRepository
	timelineRepo   repository.TimelineRepository
	noteRepo       repository.NotificationRepository
	classifier     *settlement.Classifier
	strict         bool
}

func NewLeaseEndService(
	processRepo repository.ProcessRepository,
	inspectionRepo repository.InspectionItemRepository,
	renovationRepo repository.RenovationItemRepository,
	timelineRepo repository.TimelineRepository,
	noteRepo repository.NotificationRepository,
	classifier *settlement.Classifier,
	strictTransitions bool,
) LeaseEndService {
	return &leaseEndService{
		processRepo:    processRepo,
		inspectionRepo: inspectionRepo,
		renovationRepo: renovationRepo,
		timelineRepo:   timelineRepo,
		noteRepo:       noteRepo,
		classifier:     classifier,
		strict:         strictTransitions,
	}
}

func (s *leaseEndService) CreateProcess(ctx context.Context, p *domain.LeaseEndProcess) error {
	logger.EnterMethod("leaseEndService.CreateProcess", "ownerID", p.OwnerID, "leaseType", p.LeaseType)

	if p.OwnerID == 0 || p.TenantID == 0 {
		return fmt.Errorf("%w: owner and tenant are required", settlement.ErrInvalidInput)
	}
	if p.DepositCents < 0 {
		return fmt.Errorf("%w: deposit must not be negative", settlement.ErrInvalidInput)
	}
	switch p.LeaseType {
	case domain.LeaseTypeStandard, domain.LeaseTypeFurnished:
	case domain.LeaseTypeMobility:
		// Mobility leases carry no deposit, whatever the caller sent.
		p.DepositCents = 0
	default:
		return fmt.Errorf("%w: unknown lease type %q", settlement.ErrInvalidInput, p.LeaseType)
	}

	p.Reference = "LE-" + uuid.NewString()
	p.Status = domain.ProcessStatusPending
	if p.PlanStartDate == "" {
		p.PlanStartDate = time.Now().Format("2006-01-02")
	}

	if err := s.processRepo.Create(ctx, p); err != nil {
		logger.ExitMethodWithError("leaseEndService.CreateProcess", err, "ownerID", p.OwnerID)
		return err
	}

	logger.ExitMethod("leaseEndService.CreateProcess", "processID", p.ID, "reference", p.Reference)
	return nil
}

func (s *leaseEndService) GetProcess(ctx context.Context, id int32) (*domain.LeaseEndProcess, error) {
	process, err := s.processRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: process %d", settlement.ErrProcessNotFound, id)
		}
		return nil, err
	}
	return process, nil
}

func (s *leaseEndService) GetProcessByReference(ctx context.Context, reference string) (*domain.LeaseEndProcess, error) {
	process, err := s.processRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: reference %s", settlement.ErrProcessNotFound, reference)
		}
		return nil, err
	}
	return process, nil
}

func (s *leaseEndService) ListProcesses(ctx context.Context, ownerID int32) ([]domain.LeaseEndProcess, error) {
	return s.processRepo.ListByOwner(ctx, ownerID)
}

func (s *leaseEndService) AdvanceStatus(ctx context.Context, processID int32, to domain.ProcessStatus) (*domain.LeaseEndProcess, error) {
	logger.EnterMethod("leaseEndService.AdvanceStatus", "processID", processID, "to", to)

	process, err := s.GetProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	if err := settlement.CanTransition(process.Status, to, s.strict); err != nil {
		logger.ExitMethodWithError("leaseEndService.AdvanceStatus", err, "from", process.Status, "to", to)
		return nil, err
	}

	if err := s.processRepo.UpdateStatus(ctx, processID, to); err != nil {
		return nil, err
	}
	process.Status = to

	s.notify(ctx, process, statusTitle(to), fmt.Sprintf("Process %s moved to %s", process.Reference, to), map[string]string{
		"type":       "STATUS_CHANGE",
		"process_id": fmt.Sprintf("%d", processID),
		"status":     string(to),
	})

	logger.ExitMethod("leaseEndService.AdvanceStatus", "processID", processID, "status", to)
	return process, nil
}

func (s *leaseEndService) CancelProcess(ctx context.Context, processID int32) error {
	_, err := s.AdvanceStatus(ctx, processID, domain.ProcessStatusCancelled)
	return err
}

func (s *leaseEndService) ProcessProgress(ctx context.Context, processID int32) (int32, error) {
	process, err := s.GetProcess(ctx, processID)
	if err != nil {
		return 0, err
	}
	return settlement.ProgressFor(process.Status), nil
}

// SubmitInspection stores the exit-inspection line items, classifies every
// problem item and recomputes the settlement totals. leaseYears is the
// depreciation proxy for elements whose own age was not recorded.
func (s *leaseEndService) SubmitInspection(ctx context.Context, processID int32, items []domain.InspectionItem, leaseYears float64) ([]domain.InspectionItem, error) {
	logger.EnterMethod("leaseEndService.SubmitInspection", "processID", processID, "items", len(items))

	process, err := s.GetProcess(ctx, processID)
	if err != nil {
		return nil, err
	}
	if process.IsTerminal() {
		return nil, fmt.Errorf("%w: process %d is %s", settlement.ErrInconsistentState, processID, process.Status)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: inspection must contain at least one item", settlement.ErrInvalidInput)
	}
	if leaseYears < 0 {
		return nil, fmt.Errorf("%w: lease duration must not be negative", settlement.ErrInvalidInput)
	}

	// Classify everything before touching the database: a rejected item
	// must leave no stored rows behind, and a retry must not duplicate
	// the batch.
	now := time.Now()
	for i := range items {
		if items[i].Status != domain.InspectionStatusProblem {
			continue
		}
		classified, err := s.classifier.Classify(items[i], leaseYears)
		if err != nil {
			logger.ExitMethodWithError("leaseEndService.SubmitInspection", err, "processID", processID)
			return nil, err
		}
		classified.ClassifiedAt = &now
		items[i] = classified
	}

	// A resubmitted inspection replaces the previous one.
	if err := s.inspectionRepo.DeleteByProcess(ctx, processID); err != nil {
		logger.ExitMethodWithError("leaseEndService.SubmitInspection", err, "processID", processID)
		return nil, err
	}
	if err := s.inspectionRepo.CreateBatch(ctx, processID, items); err != nil {
		logger.ExitMethodWithError("leaseEndService.SubmitInspection", err, "processID", processID)
		return nil, err
	}

	if err := s.advanceIfAllowed(ctx, process, domain.ProcessStatusEDLCompleted, domain.ProcessStatusDamagesAssessed); err != nil {
		return nil, err
	}

	if _, err := s.RecomputeSettlement(ctx, processID); err != nil {
		return nil, err
	}

	logger.ExitMethod("leaseEndService.SubmitInspection", "processID", processID, "items", len(items))
	return items, nil
}

// advanceIfAllowed walks the process through the given statuses, skipping
// any step the state machine rejects. Inspections can arrive while the
// process sits anywhere between TRIGGERED and EDL_IN_PROGRESS.
func (s *leaseEndService) advanceIfAllowed(ctx context.Context, process *domain.LeaseEndProcess, statuses ...domain.ProcessStatus) error {
	for _, status := range statuses {
		if settlement.CanTransition(process.Status, status, s.strict) != nil {
			continue
		}
		if err := s.processRepo.UpdateStatus(ctx, process.ID, status); err != nil {
			return err
		}
		process.Status = status
	}
	return nil
}

func (s *leaseEndService) ListInspectionItems(ctx context.Context, processID int32) ([]domain.InspectionItem, error) {
	if _, err := s.GetProcess(ctx, processID); err != nil {
		return nil, err
	}
	return s.inspectionRepo.ListByProcess(ctx, processID)
}

// RecomputeSettlement re-runs the allocation over the current inspection
// and renovation items and persists the totals in one update. It is safe
// to call repeatedly; the allocation is a pure function of the stored
// items.
func (s *leaseEndService) RecomputeSettlement(ctx context.Context, processID int32) (settlement.SettlementResult, error) {
	logger.EnterMethod("leaseEndService.RecomputeSettlement", "processID", processID)

	process, err := s.GetProcess(ctx, processID)
	if err != nil {
		return settlement.SettlementResult{}, err
	}

	items, err := s.inspectionRepo.ListByProcess(ctx, processID)
	if err != nil {
		return settlement.SettlementResult{}, err
	}
	renovations, err := s.renovationRepo.ListByProcess(ctx, processID)
	if err != nil {
		return settlement.SettlementResult{}, err
	}

	result, err := settlement.Allocate(items, renovations, process.DepositCents)
	if err != nil {
		logger.ExitMethodWithError("leaseEndService.RecomputeSettlement", err, "processID", processID)
		return settlement.SettlementResult{}, err
	}

	totals := domain.SettlementTotals{
		TenantDamageCostCents: result.TenantDamageCostCents,
		VetustyCostCents:      result.VetustyCostCents,
		RenovationCostCents:   result.RenovationCostCents,
		DepositRetentionCents: result.DepositRetentionCents,
		DepositRefundCents:    result.DepositRefundCents,
		TotalBudgetCents:      result.TotalBudgetCents,
	}
	if err := s.processRepo.UpdateTotals(ctx, processID, totals); err != nil {
		return settlement.SettlementResult{}, err
	}

	// A recompute after renovation edits must not pull the process back.
	if process.Status == domain.ProcessStatusDamagesAssessed {
		if err := s.advanceIfAllowed(ctx, process, domain.ProcessStatusDGCalculated); err != nil {
			return settlement.SettlementResult{}, err
		}
	}

	// Damage beyond the deposit cannot be retained; the owner has to
	// claim it from the tenant directly.
	if result.UncoveredTenantDebtCents > 0 {
		s.notify(ctx, process, "Tenant debt not covered by deposit",
			fmt.Sprintf("Tenant damage on %s exceeds the deposit by %s; claim the difference from the tenant directly",
				process.PropertyLabel, formatCents(result.UncoveredTenantDebtCents)),
			map[string]string{
				"type":                 "UNCOVERED_DEBT_CLAIM",
				"process_id":           fmt.Sprintf("%d", processID),
				"uncovered_debt_cents": fmt.Sprintf("%d", result.UncoveredTenantDebtCents),
			})
	}

	logger.ExitMethod("leaseEndService.RecomputeSettlement", "processID", processID,
		"retentionCents", result.DepositRetentionCents, "budgetCents", result.TotalBudgetCents)
	return result, nil
}

// GenerateTimeline builds the recovery plan from the current settlement
// totals and replaces any existing plan. An empty planStartDate keeps the
// process's stored start date.
func (s *leaseEndService) GenerateTimeline(ctx context.Context, processID int32, planStartDate string) ([]domain.TimelineItem, error) {
	logger.EnterMethod("leaseEndService.GenerateTimeline", "processID", processID, "planStartDate", planStartDate)

	process, err := s.GetProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	if planStartDate == "" {
		planStartDate = process.PlanStartDate
	}
	planStart, err := time.Parse("2006-01-02", planStartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid plan start date %q", settlement.ErrInvalidInput, planStartDate)
	}

	renovations, err := s.renovationRepo.ListByProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	items := settlement.GenerateTimeline(planStart, processID, process.DepositRetentionCents, process.TotalBudgetCents, len(renovations))
	if err := s.timelineRepo.ReplaceForProcess(ctx, processID, items); err != nil {
		logger.ExitMethodWithError("leaseEndService.GenerateTimeline", err, "processID", processID)
		return nil, err
	}

	if planStartDate != process.PlanStartDate {
		if err := s.processRepo.UpdatePlanStartDate(ctx, processID, planStartDate); err != nil {
			return nil, err
		}
	}

	if process.Status == domain.ProcessStatusDGCalculated {
		if err := s.advanceIfAllowed(ctx, process, domain.ProcessStatusRenovationPlanned); err != nil {
			return nil, err
		}
	}

	s.notify(ctx, process, "Recovery plan ready", fmt.Sprintf("A %d-step plan was generated for %s", len(items), process.PropertyLabel), map[string]string{
		"type":       "TIMELINE_GENERATED",
		"process_id": fmt.Sprintf("%d", processID),
	})

	logger.ExitMethod("leaseEndService.GenerateTimeline", "processID", processID, "items", len(items))
	return items, nil
}

func (s *leaseEndService) GetTimeline(ctx context.Context, processID int32) ([]domain.TimelineItem, float64, error) {
	if _, err := s.GetProcess(ctx, processID); err != nil {
		return nil, 0, err
	}
	items, err := s.timelineRepo.ListByProcess(ctx, processID)
	if err != nil {
		return nil, 0, err
	}
	return items, settlement.Progress(items), nil
}

func (s *leaseEndService) CompleteTimelineItem(ctx context.Context, processID, itemID int32) error {
	process, err := s.GetProcess(ctx, processID)
	if err != nil {
		return err
	}

	if err := s.timelineRepo.UpdateStatus(ctx, itemID, domain.TimelineItemStatusCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: timeline item %d", settlement.ErrProcessNotFound, itemID)
		}
		return err
	}
	return s.processRepo.TouchActivity(ctx, process.ID)
}

// notify records an in-app notification for the owner. Failures are
// logged, not propagated; a lost notification never blocks the workflow.
func (s *leaseEndService) notify(ctx context.Context, process *domain.LeaseEndProcess, title, message string, attributes map[string]string) {
	note := &domain.Notification{
		UserID:     process.OwnerID,
		ProcessID:  process.ID,
		Title:      title,
		Message:    message,
		Attributes: attributes,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to record notification", "processID", process.ID, "title", title, "error", err)
	}
}

func statusTitle(status domain.ProcessStatus) string {
	switch status {
	case domain.ProcessStatusDGCalculated:
		return "Deposit settlement calculated"
	case domain.ProcessStatusReadyToRent:
		return "Property ready to rent"
	case domain.ProcessStatusCompleted:
		return "Lease end completed"
	case domain.ProcessStatusCancelled:
		return "Process cancelled"
	default:
		return "Process updated"
	}
}
