package publicfiles

import (
	"strconv"
	"strings"
	"sync"
	"time"

	dtos "github.com/Open-Source-Life/AxolotlIndex/DTOs"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ListingHandler answers "list" requests received over a socket.
type ListingHandler interface {
	ListItemsPaginated(query dtos.ListQuery) (*dtos.PaginatedResponse, *dtos.ErrorResponse)
}

type Client struct {
	ID        string
	Conn      *websocket.Conn
	Send      chan interface{}
	closeOnce sync.Once
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.Conn.Close()
	})
}

type WebSocketHub struct {
	clients    map[*Client]bool
	broadcast  chan interface{}
	register   chan *Client
	unregister chan *Client
	listings   ListingHandler
	mu         sync.RWMutex
}

func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan interface{}, 100),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *WebSocketHub) SetListingHandler(handler ListingHandler) {
	h.mu.Lock()
	h.listings = handler
	h.mu.Unlock()
}

func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- msg:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *WebSocketHub) Broadcast(msg dtos.WebSocketMessage) {
	select {
	case h.broadcast <- msg:
	default:
		log.Warn().Str("event_type", msg.EventType).Msg("WebSocket broadcast queue full, dropping event")
	}
}

func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleConnection serves one socket until both pumps have stopped. The
// connection is released by the websocket middleware once this returns, so
// nothing may use c afterwards.
func (h *WebSocketHub) HandleConnection(c *websocket.Conn) {
	client := &Client{
		ID:   uuid.New().String(),
		Conn: c,
		Send: make(chan interface{}, 10),
	}
	h.register <- client
	log.Debug().Str("client_id", client.ID).Msg("WebSocket client connected")

	client.Send <- dtos.WebSocketMessage{
		EventType: "connection_established",
		Data: map[string]interface{}{
			"client_id": client.ID,
			"timestamp": time.Now().Unix(),
		},
		Timestamp: time.Now().Unix(),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.readPump(client)
	}()
	h.writePump(client)
	<-done
	log.Debug().Str("client_id", client.ID).Msg("WebSocket client disconnected")
}

// readPump unregisters the client when reading stops, which closes Send and
// ends writePump.
func (h *WebSocketHub) readPump(client *Client) {
	defer func() {
		client.close()
		h.unregister <- client
	}()
	for {
		var msg dtos.WebSocketMessage
		if err := client.Conn.ReadJSON(&msg); err != nil {
			break
		}
		if reply := h.handleMessage(msg); reply != nil {
			client.Send <- *reply
		}
	}
}

// writePump keeps draining Send after a failed write so readPump never blocks
// on a full queue.
func (h *WebSocketHub) writePump(client *Client) {
	failed := false
	for msg := range client.Send {
		if failed {
			continue
		}
		if err := client.Conn.WriteJSON(msg); err != nil {
			log.Debug().Err(err).Str("client_id", client.ID).Msg("WebSocket write failed")
			failed = true
			client.close()
		}
	}
}

// handleMessage returns the reply for one client message, or nil when the
// message needs no answer.
func (h *WebSocketHub) handleMessage(msg dtos.WebSocketMessage) *dtos.WebSocketMessage {
	switch msg.EventType {
	case "ping":
		return &dtos.WebSocketMessage{
			EventType: "pong",
			Data:      map[string]interface{}{},
			Timestamp: time.Now().Unix(),
		}
	case "list":
		h.mu.RLock()
		handler := h.listings
		h.mu.RUnlock()
		if handler == nil {
			return errorMessage("listing is not available")
		}

		resp, errResp := handler.ListItemsPaginated(queryFromData(msg.Data))
		if errResp != nil {
			return &dtos.WebSocketMessage{
				EventType: "error",
				Data:      errResp,
				Timestamp: time.Now().Unix(),
			}
		}
		return &dtos.WebSocketMessage{
			EventType: "listing",
			Data:      resp,
			Timestamp: time.Now().Unix(),
		}
	default:
		return errorMessage("unknown event type: " + msg.EventType)
	}
}

func errorMessage(text string) *dtos.WebSocketMessage {
	return &dtos.WebSocketMessage{
		EventType: "error",
		Data:      map[string]interface{}{"error": text},
		Timestamp: time.Now().Unix(),
	}
}

func queryFromData(data interface{}) dtos.ListQuery {
	query := dtos.ListQuery{Page: 1, ItemsPerPage: DefaultItemsPerPage}

	fields, ok := data.(map[string]interface{})
	if !ok {
		return query
	}
	if page, ok := intField(fields["page"]); ok {
		query.Page = page
	}
	if perPage, ok := intField(fields["items_per_page"]); ok {
		query.ItemsPerPage = perPage
	}
	if search, ok := fields["search"].(string); ok {
		query.Search = search
	}
	return query
}

func intField(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		return parsed, err == nil
	default:
		return 0, false
	}
}
