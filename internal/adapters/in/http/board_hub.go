package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/generated/servers"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
	sendBuffer     = 64
)

// Board message types.
const (
	MessageBoard = "board"
	MessageEvent = "event"
	MessageReady = "ready"
)

// BoardMessage is pushed to every connected display.
type BoardMessage struct {
	Type  string         `json:"type"`
	Board *servers.Board `json:"board,omitempty"`
	Event *BoardEvent    `json:"event,omitempty"`
	Token string         `json:"token,omitempty"`
}

// BoardEvent is the wire form of a committed order event.
type BoardEvent struct {
	Kind       string    `json:"kind"`
	Token      string    `json:"token"`
	Tier       string    `json:"tier"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BoardSnapshot loads the current boards for newly connected displays and refreshes.
type BoardSnapshot func(ctx context.Context) (servers.Board, error)

type boardClient struct {
	conn *websocket.Conn
	send chan []byte
}

// BoardHub keeps the live board displays connected over WebSocket and fans
// order events out to them. Slow clients are dropped rather than blocking
// the publisher.
type BoardHub struct {
	upgrader websocket.Upgrader
	snapshot BoardSnapshot
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[*boardClient]struct{}
	closed  bool
}

func NewBoardHub(snapshot BoardSnapshot, logger *slog.Logger) *BoardHub {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Displays are served from the kiosk itself or from local screens.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		snapshot: snapshot,
		logger:   logger.With("component", "board_hub"),
		clients:  make(map[*boardClient]struct{}),
	}
}

// Serve handles GET /ws/board. The first message is the current board.
func (h *BoardHub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}

	client := &boardClient{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(client) {
		_ = conn.Close()
		return nil
	}

	if h.snapshot != nil {
		if board, snapErr := h.snapshot(c.Request().Context()); snapErr == nil {
			h.sendTo(client, BoardMessage{Type: MessageBoard, Board: &board})
		} else {
			h.logger.WarnContext(c.Request().Context(), "initial board unavailable", "error", snapErr)
		}
	}

	go h.writePump(client)
	go h.readPump(client)
	return nil
}

// HandleEvent forwards a committed order event. Subscribe it to the event bus.
func (h *BoardHub) HandleEvent(_ context.Context, event order.Event) {
	msg := BoardEvent{
		Kind:       string(event.Kind),
		Token:      event.Token,
		Tier:       event.Tier.String(),
		To:         event.To.String(),
		OccurredAt: event.OccurredAt,
	}
	if event.From != order.Unknown {
		msg.From = event.From.String()
	}
	h.Broadcast(BoardMessage{Type: MessageEvent, Event: &msg})
}

// AnnounceReady pushes a pickup call for token, e.g. relayed from another process.
func (h *BoardHub) AnnounceReady(_ context.Context, token string) {
	h.Broadcast(BoardMessage{Type: MessageReady, Token: token})
}

// Refresh reloads the boards and pushes them to every display.
func (h *BoardHub) Refresh(ctx context.Context) {
	if h.snapshot == nil {
		return
	}
	board, err := h.snapshot(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "board refresh failed", "error", err)
		return
	}
	h.Broadcast(BoardMessage{Type: MessageBoard, Board: &board})
}

func (h *BoardHub) Broadcast(msg BoardMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode board message", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.enqueueLocked(client, data)
	}
}

// Clients returns the number of connected displays.
func (h *BoardHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every display and refuses new ones.
func (h *BoardHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for client := range h.clients {
		h.dropLocked(client)
	}
}

func (h *BoardHub) register(client *boardClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[client] = struct{}{}
	return true
}

func (h *BoardHub) unregister(client *boardClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

func (h *BoardHub) sendTo(client *boardClient, msg BoardMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.enqueueLocked(client, data)
}

func (h *BoardHub) enqueueLocked(client *boardClient, data []byte) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	select {
	case client.send <- data:
	default:
		h.logger.Warn("board client too slow, disconnecting")
		h.dropLocked(client)
	}
}

func (h *BoardHub) dropLocked(client *boardClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
}

// readPump only watches for pongs and close frames; displays do not send commands.
func (h *BoardHub) readPump(client *boardClient) {
	defer func() {
		h.unregister(client)
		_ = client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("board client read failed", "error", err)
			}
			return
		}
	}
}

func (h *BoardHub) writePump(client *boardClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
