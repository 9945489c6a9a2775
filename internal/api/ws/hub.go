package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bongibault-romain/trading-game-server/internal/metrics"
	"github.com/bongibault-romain/trading-game-server/internal/room"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Options struct {
	SendBuffer      int
	MaxMessageBytes int64
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
}

type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	roomID string
}

// Hub tracks live connections and their room groups. It implements
// room.Transport for the manager and feeds inbound events to it.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	rooms   map[string]map[string]*client

	// dispatchMu keeps each handler call and its ack reply together.
	dispatchMu  sync.Mutex
	roomManager RoomManager

	validate *validator.Validate
	upgrader websocket.Upgrader
	opts     Options
	logger   *slog.Logger
}

var _ room.Transport = (*Hub)(nil)

func NewHub(opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}
	if opts.MaxMessageBytes <= 0 {
		opts.MaxMessageBytes = 64 << 10
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*client),
		rooms:    make(map[string]map[string]*client),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		opts:   opts,
		logger: logger,
	}
}

// SetRoomManager must be called before the hub serves connections.
func (h *Hub) SetRoomManager(rm RoomManager) {
	h.roomManager = rm
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "remote", c.ClientIP())
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.opts.SendBuffer),
	}
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()
	h.opts.Metrics.ConnectionOpened()
	h.logger.Debug("websocket connected", "conn_id", cl.id, "remote", c.ClientIP())

	go h.writePump(cl)
	h.readPump(cl)
}

func (h *Hub) readPump(c *client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(h.opts.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "conn_id", c.id, "error", err)
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Debug("malformed frame", "conn_id", c.id, "error", err)
			continue
		}
		h.dispatch(c, msg)
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("websocket write failed", "conn_id", c.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) dispatch(c *client, msg inboundMessage) {
	h.dispatchMu.Lock()
	defer h.dispatchMu.Unlock()

	err := h.handle(c, msg)
	if err != nil {
		h.logger.Debug("event refused", "conn_id", c.id, "event", msg.Event, "error", err)
	}
	if msg.Ack == nil {
		return
	}

	reply := ackPayload{OK: err == nil}
	if err != nil {
		var re *room.Error
		switch {
		case errors.As(err, &re):
			reply.Error = re.Message
		case errors.Is(err, errUnknown):
			reply.Error = errUnknownEvent
		case errors.Is(err, errPayload):
			reply.Error = errInvalidPayload
		default:
			reply.Error = errInternal
		}
	}
	h.enqueue(c.id, outboundMessage{Event: EventAck, Data: reply, Ack: msg.Ack})
}

var (
	errUnknown = errors.New("unknown event")
	errPayload = errors.New("invalid payload")
)

func (h *Hub) handle(c *client, msg inboundMessage) error {
	switch msg.Event {
	case EventJoinGame:
		var p joinGamePayload
		if err := h.decode(msg.Data, &p); err != nil {
			return err
		}
		_, _, err := h.roomManager.Join(c.id, p.Nickname)
		return err
	case EventChatMessage:
		var p chatMessagePayload
		if err := h.decode(msg.Data, &p); err != nil {
			return err
		}
		return h.roomManager.SendChat(c.id, p.Message)
	case EventSubmitOffer:
		var p submitOfferPayload
		if err := h.decode(msg.Data, &p); err != nil {
			return err
		}
		return h.roomManager.SubmitOffer(c.id, p.OfferedItemIDs, p.ReceivedItemIDs)
	case EventCancelOffer:
		return h.roomManager.CancelOffer(c.id)
	case EventAnswerOffer:
		var p answerOfferPayload
		if err := h.decode(msg.Data, &p); err != nil {
			return err
		}
		return h.roomManager.AnswerOffer(c.id, *p.Accept)
	default:
		return errUnknown
	}
}

func (h *Hub) decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errPayload
	}
	if err := h.validate.Struct(v); err != nil {
		return errPayload
	}
	return nil
}

// unregister runs once the read side of a connection is done.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()

	h.dispatchMu.Lock()
	h.roomManager.Disconnect(c.id)
	h.dispatchMu.Unlock()

	h.opts.Metrics.ConnectionClosed()
	h.logger.Debug("websocket disconnected", "conn_id", c.id)
}

// removeLocked drops the client and closes its send queue; the write pump
// then flushes what is queued and closes the connection.
func (h *Hub) removeLocked(c *client) {
	if h.clients[c.id] != c {
		return
	}
	delete(h.clients, c.id)
	if group, ok := h.rooms[c.roomID]; ok {
		delete(group, c.id)
		if len(group) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
	close(c.send)
}

func (h *Hub) pushLocked(c *client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.logger.Warn("send queue full, dropping connection", "conn_id", c.id)
		h.removeLocked(c)
		// Unblocks the read pump so the room teardown runs now.
		_ = c.conn.Close()
	}
}

func (h *Hub) encode(msg outboundMessage) ([]byte, bool) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode event", "event", msg.Event, "error", err)
		return nil, false
	}
	return payload, true
}

func (h *Hub) enqueue(connID string, msg outboundMessage) {
	payload, ok := h.encode(msg)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[connID]; ok {
		h.pushLocked(c, payload)
	}
}

func (h *Hub) Emit(connID string, event string, data any) {
	h.enqueue(connID, outboundMessage{Event: event, Data: data})
}

func (h *Hub) Broadcast(roomID string, event string, data any) {
	if h == nil {
		return
	}
	payload, ok := h.encode(outboundMessage{Event: event, Data: data})
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.rooms[roomID] {
		h.pushLocked(c, payload)
	}
}

func (h *Hub) Subscribe(connID string, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if group, ok := h.rooms[c.roomID]; ok && c.roomID != roomID {
		delete(group, c.id)
	}
	c.roomID = roomID
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*client)
	}
	h.rooms[roomID][connID] = c
}

func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[connID]; ok {
		h.removeLocked(c)
	}
}

// Close disconnects every client. Used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		h.removeLocked(c)
	}
}
