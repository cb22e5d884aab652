package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/powercity/simulator/controller"
	"github.com/powercity/simulator/report"
	"github.com/powercity/simulator/repository"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes client commands to the
// controller and report generator.
type Handler struct {
	hub  *Hub
	ctrl *controller.Controller
	repo *repository.Repository
}

func NewHandler(hub *Hub, ctrl *controller.Controller, repo *repository.Repository) *Handler {
	return &Handler{hub: hub, ctrl: ctrl, repo: repo}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Send the current state and the live buffer so the display can render
	// immediately.
	h.sendState(client)
	h.sendLiveHistory(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("WebSocket read failed", "error", err)
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.sendError(c, "invalid message: "+err.Error())
		return
	}

	switch env.Type {
	case TypeSimStart:
		h.ctrl.Start()
		h.broadcastState()

	case TypeSimStop:
		h.ctrl.Stop()
		h.broadcastState()

	case TypeSourceToggle:
		var p SourceTogglePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "invalid source toggle payload: "+err.Error())
			return
		}
		if err := h.ctrl.SetSourceEnabled(controller.Source(p.Source), p.Enabled); err != nil {
			h.sendError(c, err.Error())
			return
		}
		h.broadcastState()

	case TypeConfigUpdate:
		var p ConfigUpdatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "invalid config update payload: "+err.Error())
			return
		}
		update, err := controller.ParseUpdate(updateFields(p))
		if err != nil {
			h.sendError(c, err.Error())
			return
		}
		if err := h.ctrl.Reconfigure(update); err != nil {
			h.sendError(c, err.Error())
			return
		}
		h.broadcastState()

	case TypeReportGenerate:
		var p ReportGeneratePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "invalid report payload: "+err.Error())
			return
		}
		h.generateReport(c, p.Window)

	default:
		h.sendError(c, "unknown message type "+env.Type)
	}
}

func (h *Handler) generateReport(c *Client, windowName string) {
	window, err := report.ParseWindow(windowName)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	now := time.Now()
	records, err := h.repo.RecordsSince(now.Add(-window.Duration()))
	if err != nil {
		h.sendError(c, "query history: "+err.Error())
		return
	}

	state := h.ctrl.State()
	rep, err := report.Generate(records, report.Capacities{
		Hydro:   state.HydroCapacity,
		Solar:   state.SolarCapacity,
		Wind:    state.WindCapacity,
		Battery: state.BatteryCapacity,
	}, now, window)
	if err != nil {
		if err == report.ErrNoData {
			h.send(c, TypeReportResult, ReportResultPayload{
				Window: windowName,
				Text:   "No data available for " + window.Span() + ".",
			})
			return
		}
		h.sendError(c, err.Error())
		return
	}

	h.send(c, TypeReportResult, ReportResultPayload{
		Window: windowName,
		Text:   rep.Render(),
	})
}

func (h *Handler) sendState(c *Client) {
	h.send(c, TypeSimState, h.ctrl.State())
}

func (h *Handler) sendLiveHistory(c *Client) {
	live := h.ctrl.Live()
	payload := LiveHistoryPayload{Records: make([]TickRecordPayload, 0, len(live))}
	for _, record := range live {
		payload.Records = append(payload.Records, TickRecordFromRecord(record))
	}
	h.send(c, TypeLiveHistory, payload)
}

func (h *Handler) broadcastState() {
	msg, err := NewEnvelope(TypeSimState, h.ctrl.State())
	if err != nil {
		slog.Error("Failed to marshal sim state", "error", err)
		return
	}
	h.hub.Broadcast(msg)
}

func (h *Handler) sendError(c *Client, message string) {
	h.send(c, TypeError, ErrorPayload{Message: message})
}

func (h *Handler) send(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		slog.Error("Failed to marshal message", "type", msgType, "error", err)
		return
	}
	select {
	case c.send <- msg:
	default:
		slog.Warn("Client buffer full, dropping message", "type", msgType)
	}
}
