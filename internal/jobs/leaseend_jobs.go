package jobs

import (
	"context"
	"fmt"
	"time"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/logger"
)

// SendTimelineReminders emails owners about recovery plan actions scheduled
// for today.
func (jr *JobRunner) SendTimelineReminders() {
	jr.runWithRecovery("SendTimelineReminders", func() {
		ctx := context.Background()
		today := time.Now().Format("2006-01-02")

		items, err := jr.store.ListDueOn(ctx, today)
		if err != nil {
			logger.Error("Failed to list due timeline items", "error", err)
			return
		}

		sent := 0
		for _, item := range items {
			process, err := jr.store.ProcessRepository.GetByID(ctx, item.ProcessID)
			if err != nil {
				logger.Error("Failed to load process for reminder", "processID", item.ProcessID, "error", err)
				continue
			}
			if process.IsTerminal() {
				continue
			}

			owner, err := jr.store.UserRepository.GetByID(ctx, process.OwnerID)
			if err != nil {
				logger.Error("Failed to load owner for reminder", "ownerID", process.OwnerID, "error", err)
				continue
			}

			if err := jr.services.Email.SendTimelineReminder(ctx, owner.Email, owner.Name, item); err != nil {
				logger.Error("Failed to send timeline reminder", "itemID", item.ID, "error", err)
				continue
			}
			_ = jr.services.Notification.Notify(ctx, owner.ID, process.ID, "Action due today", item.Title, map[string]string{
				"type":             "TIMELINE_REMINDER",
				"timeline_item_id": fmt.Sprintf("%d", item.ID),
			})
			sent++
		}

		logger.Info("Timeline reminders sent", "due", len(items), "sent", sent)
	})
}

// MarkStalledProcesses alerts owners about processes with no activity for
// the configured window.
func (jr *JobRunner) MarkStalledProcesses() {
	jr.runWithRecovery("MarkStalledProcesses", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -jr.config.Settlement.StalledAfterDays)

		processes, err := jr.store.ListStalled(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stalled processes", "error", err)
			return
		}

		alerted := 0
		for i := range processes {
			process := &processes[i]
			owner, err := jr.store.UserRepository.GetByID(ctx, process.OwnerID)
			if err != nil {
				logger.Error("Failed to load owner for stalled alert", "ownerID", process.OwnerID, "error", err)
				continue
			}

			if err := jr.services.Email.SendStalledProcessAlert(ctx, owner.Email, owner.Name, process); err != nil {
				logger.Error("Failed to send stalled alert", "processID", process.ID, "error", err)
				continue
			}
			_ = jr.services.Notification.Notify(ctx, owner.ID, process.ID, "Process stalled",
				fmt.Sprintf("No activity on %s since %s", process.PropertyLabel, process.LastActivity.Format("2006-01-02")),
				map[string]string{
					"type":   "PROCESS_STALLED",
					"status": string(process.Status),
				})
			alerted++
		}

		logger.Info("Stalled process alerts sent", "stalled", len(processes), "alerted", alerted)
	})
}

// SendRefundStatements emails tenants their deposit settlement once it has
// been calculated. Only processes settled within the last day are picked
// up, so a statement goes out once.
func (jr *JobRunner) SendRefundStatements() {
	jr.runWithRecovery("SendRefundStatements", func() {
		ctx := context.Background()

		processes, err := jr.store.ListByStatus(ctx, domain.ProcessStatusDGCalculated)
		if err != nil {
			logger.Error("Failed to list settled processes", "error", err)
			return
		}

		since := time.Now().AddDate(0, 0, -1)
		sent := 0
		for i := range processes {
			process := &processes[i]
			if process.UpdatedAt.Before(since) {
				continue
			}

			tenant, err := jr.store.UserRepository.GetByID(ctx, process.TenantID)
			if err != nil {
				logger.Error("Failed to load tenant for statement", "tenantID", process.TenantID, "error", err)
				continue
			}

			if err := jr.services.Email.SendRefundStatement(ctx, tenant.Email, tenant.Name, process); err != nil {
				logger.Error("Failed to send refund statement", "processID", process.ID, "error", err)
				continue
			}
			if process.DepositRetentionCents > 0 {
				if err := jr.services.Email.SendDepositRetentionNotice(ctx, tenant.Email, tenant.Name, process); err != nil {
					logger.Error("Failed to send retention notice", "processID", process.ID, "error", err)
				}
			}
			sent++
		}

		logger.Info("Refund statements sent", "settled", len(processes), "sent", sent)
	})
}
