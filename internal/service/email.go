package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "to", to)
	return nil
}

func (s *sendGridEmailService) SendTimelineReminder(ctx context.Context, toEmail, toName string, item domain.TimelineItem) error {
	subject := fmt.Sprintf("Reminder: %s", item.Title)
	plainText := fmt.Sprintf("Scheduled for %s: %s", item.ScheduledDate, item.Title)
	htmlContent := fmt.Sprintf(`<p>Scheduled for <strong>%s</strong>:</p><p>%s</p><p>%s</p>`,
		item.ScheduledDate, item.Title, item.Description)
	return s.send(ctx, toEmail, toName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendRefundStatement(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error {
	subject := fmt.Sprintf("Deposit settlement for %s", process.PropertyLabel)
	plainText := fmt.Sprintf("Deposit: %s. Retained for damages: %s. Refund due: %s.",
		formatCents(process.DepositCents), formatCents(process.DepositRetentionCents), formatCents(process.DepositRefundCents))
	htmlContent := fmt.Sprintf(`
		<p>Settlement statement for <strong>%s</strong>:</p>
		<ul>
			<li>Security deposit: %s</li>
			<li>Retained for tenant damages: %s</li>
			<li>Refund due: %s</li>
		</ul>`,
		process.PropertyLabel,
		formatCents(process.DepositCents), formatCents(process.DepositRetentionCents), formatCents(process.DepositRefundCents))
	return s.send(ctx, toEmail, toName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendStalledProcessAlert(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error {
	subject := fmt.Sprintf("Lease-end process stalled: %s", process.PropertyLabel)
	plainText := fmt.Sprintf("Process %s has had no activity since %s (status %s).",
		process.Reference, process.LastActivity.Format("2006-01-02"), process.Status)
	htmlContent := fmt.Sprintf(`<p>Process <strong>%s</strong> for %s has had no activity since %s (status %s).</p>`,
		process.Reference, process.PropertyLabel, process.LastActivity.Format("2006-01-02"), process.Status)
	return s.send(ctx, toEmail, toName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendDepositRetentionNotice(ctx context.Context, toEmail, toName string, process *domain.LeaseEndProcess) error {
	subject := fmt.Sprintf("Deposit retention notice for %s", process.PropertyLabel)
	plainText := fmt.Sprintf("%s will be retained from your deposit of %s to cover tenant damages. Refund due: %s.",
		formatCents(process.DepositRetentionCents), formatCents(process.DepositCents), formatCents(process.DepositRefundCents))
	htmlContent := fmt.Sprintf(`
		<p><strong>%s</strong> will be retained from your deposit of %s to cover tenant damages.</p>
		<p>Refund due: <strong>%s</strong></p>`,
		formatCents(process.DepositRetentionCents), formatCents(process.DepositCents), formatCents(process.DepositRefundCents))
	return s.send(ctx, toEmail, toName, subject, plainText, htmlContent)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%.2f EUR", float64(cents)/100)
}
