package ws

import (
	"encoding/json"
	"log"
	"time"

	"talent-admin/internal/domain/notification"
	"talent-admin/internal/domain/user"

	"github.com/google/uuid"
)

const (
	EventNotification  = "notification"
	EventEntityUpdated = "entity_updated"
	EventSession       = "session"
)

type NotificationEvent struct {
	Type         string                    `json:"type"`
	Notification notification.Notification `json:"notification"`
	Timestamp    string                    `json:"timestamp"`
}

type EntityUpdatedEvent struct {
	Type      string `json:"type"`
	Entity    string `json:"entity"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

type SessionEvent struct {
	Type      string `json:"type"`
	Event     string `json:"event"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// Notifier encodes admin events and broadcasts them on a hub.
type Notifier struct {
	hub    *Hub
	logger *log.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

func (n *Notifier) Notify(msg notification.Notification) {
	n.send(NotificationEvent{
		Type:         EventNotification,
		Notification: msg,
		Timestamp:    n.timestamp(),
	})
}

func (n *Notifier) EntityUpdated(entity string, id uuid.UUID) {
	n.send(EntityUpdatedEvent{
		Type:      EventEntityUpdated,
		Entity:    entity,
		ID:        id.String(),
		Timestamp: n.timestamp(),
	})
}

func (n *Notifier) SessionChanged(event string, u user.User) {
	n.send(SessionEvent{
		Type:      EventSession,
		Event:     event,
		UserID:    u.ID.String(),
		Email:     u.Email,
		Timestamp: n.timestamp(),
	})
}

func (n *Notifier) timestamp() string {
	if n == nil || n.now == nil {
		return time.Now().UTC().Format(time.RFC3339)
	}
	return n.now().UTC().Format(time.RFC3339)
}

func (n *Notifier) send(evt any) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.logger.Printf("WS encode error | error=%v", err)
		return
	}
	n.hub.Broadcast(b)
}
