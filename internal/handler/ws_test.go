package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialStateWS(t *testing.T, svc *Service, dashboardID string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(svc.HandleStateWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?dashboard_id=" + dashboardID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readOutbound(t *testing.T, conn *websocket.Conn) stateWSOutbound {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out stateWSOutbound
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read: %v", err)
	}
	return out
}

func TestStateWSSubscribeAndEvolve(t *testing.T) {
	svc := newTestService(t)
	id := generateDashboard(t, svc)
	conn := dialStateWS(t, svc, id)

	sub := readOutbound(t, conn)
	if sub.Type != "subscribed" || sub.DashboardID != id {
		t.Fatalf("expected subscribed message, got %+v", sub)
	}
	if sub.State == nil || sub.Version != "1.0.0" {
		t.Fatalf("initial state missing: %+v", sub)
	}

	err := conn.WriteJSON(stateWSInbound{
		Type:      "evolve",
		Operation: "remove",
		Path:      "children[0]",
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	ev := readOutbound(t, conn)
	if ev.Type != "state" {
		t.Fatalf("expected state event, got %+v", ev)
	}
	if ev.Version != "1.0.1" {
		t.Fatalf("expected bumped version, got %s", ev.Version)
	}
}

func TestStateWSUnknownDashboard(t *testing.T) {
	svc := newTestService(t)
	srv := httptest.NewServer(http.HandlerFunc(svc.HandleStateWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?dashboard_id=missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial should fail for unknown dashboard")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %+v", resp)
	}
}

func TestStateWSPing(t *testing.T) {
	svc := newTestService(t)
	id := generateDashboard(t, svc)
	conn := dialStateWS(t, svc, id)

	_ = readOutbound(t, conn) // subscribed

	if err := conn.WriteJSON(stateWSInbound{Type: "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := readOutbound(t, conn)
	if out.Type != "pong" {
		t.Fatalf("expected pong, got %+v", out)
	}
}
