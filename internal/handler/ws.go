package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"dashforge/internal/generate"
	"dashforge/internal/schema"
)

const (
	stateWSWriteWait = 10 * time.Second
	stateWSPongWait  = 60 * time.Second
	stateWSPingEvery = (stateWSPongWait * 9) / 10
)

var stateWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type stateWSInbound struct {
	Type      string                  `json:"type"`
	Operation string                  `json:"operation,omitempty"`
	Path      string                  `json:"path,omitempty"`
	Value     *schema.ComponentSchema `json:"value,omitempty"`
}

type stateWSOutbound struct {
	Type        string            `json:"type"`
	DashboardID string            `json:"dashboardId,omitempty"`
	Version     string            `json:"version,omitempty"`
	State       *generate.UIState `json:"state,omitempty"`
	Code        string            `json:"code,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// HandleStateWS streams dashboard state updates to a websocket client and
// accepts evolve operations over the same connection.
func (s *Service) HandleStateWS(w http.ResponseWriter, r *http.Request) {
	dashboardID := strings.TrimSpace(r.URL.Query().Get("dashboard_id"))
	if dashboardID == "" {
		http.Error(w, "dashboard_id is required", http.StatusBadRequest)
		return
	}
	current := s.Dashboards.Get(dashboardID)
	if current == nil {
		http.Error(w, "dashboard not found", http.StatusNotFound)
		return
	}

	conn, err := stateWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(stateWSPongWait)); err != nil {
		log.Printf("state ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(stateWSPongWait))
	})

	writeCh := make(chan stateWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(stateWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(stateWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(stateWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	events, unsubscribe := s.Dashboards.Subscribe(dashboardID)
	defer unsubscribe()

	pushStateWS(writeCh, stateWSOutbound{
		Type:        "subscribed",
		DashboardID: dashboardID,
		Version:     current.State.Version,
		State:       current.State,
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					pushStateWS(writeCh, stateWSOutbound{
						Type:        "closed",
						DashboardID: dashboardID,
					})
					return
				}
				pushStateWS(writeCh, stateWSOutbound{
					Type:        "state",
					DashboardID: ev.DashboardID,
					Version:     ev.Version,
					State:       ev.State,
				})
			}
		}
	}()

	for {
		var in stateWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushStateWS(writeCh, stateWSOutbound{Type: "pong"})
		case "evolve":
			if strings.TrimSpace(in.Operation) == "" {
				pushStateWS(writeCh, stateWSOutbound{
					Type:    "error",
					Code:    "invalid_argument",
					Message: "operation is required",
				})
				continue
			}
			d := s.Dashboards.Get(dashboardID)
			if d == nil {
				pushStateWS(writeCh, stateWSOutbound{
					Type:    "error",
					Code:    "not_found",
					Message: "dashboard not found",
				})
				continue
			}
			generate.EvolveUI(d.State, in.Operation, in.Path, in.Value)
			if _, err := s.Dashboards.Update(d.ID, d.State); err != nil {
				pushStateWS(writeCh, stateWSOutbound{
					Type:    "error",
					Code:    "internal",
					Message: err.Error(),
				})
			}
			// The update itself lands through the subscription.
		default:
			pushStateWS(writeCh, stateWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "unsupported type: " + in.Type,
			})
		}
	}
}

func pushStateWS(writeCh chan stateWSOutbound, out stateWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
