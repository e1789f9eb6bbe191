package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/bubblepoint/internal/adapters/nats"
	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
	"github.com/samirrijal/bubblepoint/internal/pkg/metrics"
)

// wsMessage is sent by the client.
//
//	{"action":"calculate","t_v":50,"x1":0.5}
//	{"action":"subscribe"} / {"action":"unsubscribe"}
//
// Missing numbers take the calculator defaults.
type wsMessage struct {
	Action      string   `json:"action"`
	Temperature *float64 `json:"t_v"`
	X1          *float64 `json:"x1"`
	Component1  string   `json:"component1"`
	Component2  string   `json:"component2"`
}

// wsReply is sent to the client.
type wsReply struct {
	Type    string                    `json:"type"` // result | event | status | error
	Result  *domain.EquilibriumResult `json:"result,omitempty"`
	Status  string                    `json:"status,omitempty"`
	Subject string                    `json:"subject,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// WebSocketHandler returns a live calculator: every "calculate" message is
// answered with a result. Clients may also subscribe to the results other
// clients publish, relayed from NATS.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		log := slog.Default().With("remote_addr", c.RemoteAddr().String())
		log.Info("ws client connected")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var mu sync.Mutex
		writeJSON := func(v wsReply) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		var relay *nats.Subscription
		defer func() {
			if relay != nil {
				_ = relay.Unsubscribe()
			}
		}()

		// Keep-alive ping
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(wsReply{Type: "error", Error: "invalid JSON"})
				continue
			}

			switch m.Action {
			case "", "calculate":
				req := domain.BubblePointRequest{
					Temperature: usecases.DefaultTemperature,
					X1:          usecases.DefaultX1,
					Component1:  domain.ComponentID(m.Component1),
					Component2:  domain.ComponentID(m.Component2),
				}
				if m.Temperature != nil {
					req.Temperature = *m.Temperature
				}
				if m.X1 != nil {
					req.X1 = *m.X1
				}
				if err := usecases.ValidateOperatingRange(req); err != nil {
					_ = writeJSON(wsReply{Type: "error", Error: err.Error()})
					continue
				}
				result, err := deps.BubblePoints.Calculate(ctx, req)
				if err != nil {
					_ = writeJSON(wsReply{Type: "error", Error: err.Error()})
					continue
				}
				_ = writeJSON(wsReply{Type: "result", Result: result})

			case "subscribe":
				if deps.NATS == nil {
					_ = writeJSON(wsReply{Type: "error", Error: "event relay not configured"})
					continue
				}
				if relay != nil {
					_ = writeJSON(wsReply{Type: "status", Status: "already subscribed", Subject: natsadapter.ResultSubjects})
					continue
				}
				s, err := deps.NATS.Subscribe(natsadapter.ResultSubjects, func(msg *nats.Msg) {
					r, err := natsadapter.DecodeResult(msg.Data)
					if err != nil {
						log.Warn("ws relay decode failed", "subject", msg.Subject, "error", err)
						return
					}
					_ = writeJSON(wsReply{Type: "event", Subject: msg.Subject, Result: r})
				})
				if err != nil {
					_ = writeJSON(wsReply{Type: "error", Error: "subscribe failed: " + err.Error()})
					continue
				}
				relay = s
				_ = writeJSON(wsReply{Type: "status", Status: "subscribed", Subject: natsadapter.ResultSubjects})

			case "unsubscribe":
				if relay == nil {
					_ = writeJSON(wsReply{Type: "error", Error: "not subscribed"})
					continue
				}
				_ = relay.Unsubscribe()
				relay = nil
				_ = writeJSON(wsReply{Type: "status", Status: "unsubscribed", Subject: natsadapter.ResultSubjects})

			default:
				_ = writeJSON(wsReply{Type: "error", Error: "unknown action: " + m.Action})
			}
		}

		log.Info("ws client disconnected")
	}
}
