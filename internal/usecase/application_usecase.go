package usecase

import (
	"context"
	"log"
	"strings"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/notification"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
)

// HiringTrigger reacts to an application becoming hired.
type HiringTrigger interface {
	OnHired(ctx context.Context, app application.Detail)
}

type ApplicationUsecase struct {
	repo        repository.ApplicationRepository
	hiring      HiringTrigger
	publisher   Publisher
	invalidator StatsInvalidator
	logger      *log.Logger
}

func NewApplicationUsecase(repo repository.ApplicationRepository, hiring HiringTrigger, publisher Publisher, invalidator StatsInvalidator, logger *log.Logger) *ApplicationUsecase {
	if logger == nil {
		logger = log.Default()
	}
	return &ApplicationUsecase{
		repo:        repo,
		hiring:      hiring,
		publisher:   publisherOrNop(publisher),
		invalidator: invalidatorOrNop(invalidator),
		logger:      logger,
	}
}

func (u *ApplicationUsecase) ListApplications(ctx context.Context) ([]application.Detail, error) {
	items, err := u.repo.ListApplications(ctx)
	if err != nil {
		return nil, storeError(u.logger, "list applications", err)
	}
	return items, nil
}

// UpdateApplicationStatus stores the new status and, for hired, triggers the
// company hiring-rate recalculation. The recalculation outcome never affects
// the returned result.
func (u *ApplicationUsecase) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (application.Detail, error) {
	s := application.Status(strings.TrimSpace(status))
	if !s.Valid() {
		return application.Detail{}, ErrInvalidStatus
	}

	d, err := u.repo.UpdateApplicationStatus(ctx, id, s)
	if err != nil {
		u.publisher.Notify(notification.New(notification.LevelError, notification.MsgApplicationUpdateFailed))
		return application.Detail{}, storeError(u.logger, "update application status", err)
	}
	u.logger.Printf("[Application] status updated application_id=%s status=%s", id, s)

	if s == application.StatusHired && u.hiring != nil {
		u.hiring.OnHired(ctx, d)
	}

	u.invalidator.Invalidate(ctx)
	u.publisher.Notify(notification.New(notification.LevelSuccess, notification.MsgApplicationUpdated))
	u.publisher.EntityUpdated(notification.EntityApplication, id)
	return d, nil
}
