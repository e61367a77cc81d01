package postgres

import (
	"database/sql"

	"leaseend-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProcessRepository
	repository.InspectionItemRepository
	repository.RenovationItemRepository
	repository.TimelineRepository
	repository.NotificationRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		ProcessRepository:        NewProcessRepository(db),
		InspectionItemRepository: NewInspectionItemRepository(db),
		RenovationItemRepository: NewRenovationItemRepository(db),
		TimelineRepository:       NewTimelineRepository(db),
		NotificationRepository:   NewNotificationRepository(db),
		UserRepository:           NewUserRepository(db),
	}
}
