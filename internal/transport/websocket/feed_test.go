package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"carepulse/internal/domain"
)

type staticTokens string

func (s staticTokens) ParseToken(_ context.Context, token string) error {
	if token != string(s) {
		return domain.ErrUnauthorized
	}
	return nil
}

func newFeedServer(t *testing.T) (*FeedHub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewFeedHub(staticTokens("secret"), nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/admin", hub.HandleWebSocket)
	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/admin?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func TestFeedHub_RejectsMissingToken(t *testing.T) {
	_, srv := newFeedServer(t)

	_, resp, err := dial(srv, "wrong")
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("expected a failed handshake, got %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestFeedHub_BroadcastsEvents(t *testing.T) {
	hub, srv := newFeedServer(t)

	conn, _, err := dial(srv, "secret")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Registration is asynchronous; publish until the client sees an event.
	event := domain.AppointmentEvent{
		Type:        domain.AppointmentUpdated,
		Appointment: domain.Appointment{ID: "appt-1", Status: domain.AppointmentStatusScheduled},
	}
	received := make(chan domain.AppointmentEvent, 1)
	go func() {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var got domain.AppointmentEvent
		if json.Unmarshal(data, &got) == nil {
			received <- got
		}
	}()

	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case got := <-received:
			if got.Type != domain.AppointmentUpdated || got.Appointment.ID != "appt-1" {
				t.Errorf("unexpected event %+v", got)
			}
			return
		case <-ticker.C:
			hub.Publish(event)
		case <-deadline:
			t.Fatal("no event received")
		}
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://carepulse.example"})

	req := httptest.NewRequest(http.MethodGet, "/ws/admin", nil)
	if !check(req) {
		t.Error("requests without origin are allowed")
	}
	req.Header.Set("Origin", "https://carepulse.example")
	if !check(req) {
		t.Error("listed origin rejected")
	}
	req.Header.Set("Origin", "https://evil.example")
	if check(req) {
		t.Error("unlisted origin accepted")
	}
}
