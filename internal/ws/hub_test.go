package ws

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"talent-admin/internal/domain/notification"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func startHub(t *testing.T) (*Hub, *Client) {
	t.Helper()
	hub := NewHub(log.New(io.Discard, "", 0))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 8)}
	hub.Register(client)
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("client was not registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return hub, client
}

func receive(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case b := <-c.send:
		var out map[string]any
		if err := json.Unmarshal(b, &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return out
	case <-time.After(time.Second):
		t.Fatalf("no message received")
	}
	return nil
}

func TestNotifier_BroadcastsNotification(t *testing.T) {
	hub, client := startHub(t)
	n := NewNotifier(hub, nil)

	n.Notify(notification.New(notification.LevelSuccess, notification.MsgCompanyVerified))

	msg := receive(t, client)
	if msg["type"] != EventNotification {
		t.Fatalf("unexpected event type: %v", msg["type"])
	}
	inner, ok := msg["notification"].(map[string]any)
	if !ok {
		t.Fatalf("missing notification payload: %v", msg)
	}
	if inner["type"] != "success" || inner["message"] != notification.MsgCompanyVerified {
		t.Fatalf("unexpected notification: %v", inner)
	}
	if inner["dismissAfterMs"] != float64(5000) {
		t.Fatalf("expected 5000ms dismissal, got %v", inner["dismissAfterMs"])
	}
	if id, _ := inner["id"].(string); id == "" {
		t.Fatalf("expected notification id")
	}
}

func TestNotifier_EntityUpdated(t *testing.T) {
	hub, client := startHub(t)
	n := NewNotifier(hub, nil)
	id := uuid.New()

	n.EntityUpdated(notification.EntityJob, id)

	msg := receive(t, client)
	if msg["type"] != EventEntityUpdated || msg["entity"] != "job" || msg["id"] != id.String() {
		t.Fatalf("unexpected entity event: %v", msg)
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub, client := startHub(t)

	hub.Unregister(client)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatalf("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("send channel was not closed")
	}
	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients, got %d", hub.ClientCount())
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Notify(notification.New(notification.LevelInfo, "noop"))
}

func TestHandler_RejectsPlainHTTP(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	app := fiber.New()
	NewHandler(hub, log.New(io.Discard, "", 0)).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ws", nil), fiber.TestConfig{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}

func TestHub_RegisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	result := make(chan bool, 1)
	go func() {
		accepted := false
		for i := 0; i < registerBuffer+1; i++ {
			if hub.Register(&Client{hub: hub, send: make(chan []byte, 1)}) {
				accepted = true
			}
		}
		result <- accepted
	}()

	select {
	case accepted := <-result:
		if accepted {
			t.Fatalf("expected registrations to be refused after stop")
		}
	case <-time.After(time.Second):
		t.Fatalf("register blocked after the hub stopped")
	}
}
