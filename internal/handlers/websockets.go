package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tenability"
	"tenability/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope types.
const (
	wsTypeFrame = "frame"
	wsTypeEnd   = "end"
	wsTypeError = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Replay room samples
// @Description  WebSocket stream of one room's samples in time order, one frame per interval, each with the activations since the previous frame. Ends with an "end" message.
// @Tags         simulations
// @Param        simulation  query  string  true   "Simulation ID"
// @Param        room        query  string  true   "Room name"
// @Param        interval    query  string  false  "Tick, e.g. 200ms (max 10s)"
// @Success      101
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /ws/replay [get]
func (h *Handler) wsReplay(c *gin.Context) {
	simID, room := c.Query("simulation"), c.Query("room")
	if simID == "" || room == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "simulation and room are required"})
		return
	}
	// Resolve before upgrading so unknown ids get a plain HTTP status.
	if _, err := h.services.RoomSeries(c.Request.Context(), simID, room); err != nil {
		h.respondError(c, "ws_replay_lookup_failed", err, "simulation", simID, "room", room)
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)
	go func() {
		select {
		case <-done:
			cancel()
		case <-ctx.Done():
		}
	}()
	go h.startPinger(ctx, conn)

	err = h.services.Replay(ctx, simID, room, interval, func(f service.ReplayFrame) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(wsEnvelope{Type: wsTypeFrame, Data: newReplayFrame(f)})
	})

	switch {
	case ctx.Err() != nil:
		// client went away
		return
	case err != nil:
		if h.log != nil {
			h.log.Infow("ws_replay_failed", "err", err, "simulation", simID, "room", room)
		}
		h.writeFinal(conn, wsEnvelope{Type: wsTypeError, Error: err.Error()}, websocket.CloseInternalServerErr)
	default:
		h.writeFinal(conn, wsEnvelope{Type: wsTypeEnd}, websocket.CloseNormalClosure)
	}
}

func newReplayFrame(f service.ReplayFrame) tenability.ReplayFrame {
	return tenability.ReplayFrame{
		Room:   f.Room,
		Index:  f.Index,
		Sample: tenability.NewSample(f.Sample),
		Events: f.Events,
	}
}

// writeFinal sends the last envelope followed by a close frame.
func (h *Handler) writeFinal(conn *websocket.Conn, env wsEnvelope, code int) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(env); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed", "err", err)
		}
		return
	}
	msg := websocket.FormatCloseMessage(code, env.Type)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := h.replayInterval

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil && !errors.Is(err, websocket.ErrCloseSent) {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// Helper: startPinger keeps the connection alive. WriteControl may run
// concurrently with the frame writer.
func (h *Handler) startPinger(ctx context.Context, conn *websocket.Conn) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		}
	}
}
