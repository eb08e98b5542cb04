package usecase

import (
	"context"

	"talent-admin/internal/domain/notification"

	"github.com/google/uuid"
)

// Publisher fans admin events out to connected dashboards.
type Publisher interface {
	Notify(n notification.Notification)
	EntityUpdated(entity string, id uuid.UUID)
}

// StatsInvalidator drops cached dashboard figures after a mutation.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type nopPublisher struct{}

func (nopPublisher) Notify(notification.Notification) {}
func (nopPublisher) EntityUpdated(string, uuid.UUID)  {}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func invalidatorOrNop(i StatsInvalidator) StatsInvalidator {
	if i == nil {
		return nopInvalidator{}
	}
	return i
}
