package service

import (
	"context"

	"leaseend-backend/internal/domain"
	"leaseend-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) Notify(ctx context.Context, userID, processID int32, title, message string, attributes map[string]string) error {
	note := &domain.Notification{
		UserID:     userID,
		ProcessID:  processID,
		Title:      title,
		Message:    message,
		Attributes: attributes,
	}
	return s.noteRepo.Create(ctx, note)
}

func (s *notificationService) List(ctx context.Context, userID int32, unreadOnly bool) ([]domain.Notification, error) {
	return s.noteRepo.ListByUser(ctx, userID, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID int32) error {
	return s.noteRepo.MarkRead(ctx, id, userID)
}
