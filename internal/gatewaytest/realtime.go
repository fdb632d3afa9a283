package gatewaytest

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// frame is one websocket message on a table topic.
type frame struct {
	Topic  string          `json:"topic"`
	Event  string          `json:"event"`
	Record json.RawMessage `json:"record,omitempty"`
}

// hub tracks realtime connections and the topics each one subscribed to.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]map[string]bool
}

func newHub() *hub {
	return &hub{conns: make(map[*websocket.Conn]map[string]bool)}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = make(map[string]bool)
}

func (h *hub) subscribe(conn *websocket.Conn, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if topics, ok := h.conns[conn]; ok {
		topics[topic] = true
	}
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// broadcast pushes a change event to every connection subscribed to topic.
func (h *hub) broadcast(topic, event string, record any) {
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}
	msg := frame{Topic: topic, Event: event, Record: payload}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, topics := range h.conns {
		if !topics[topic] {
			continue
		}
		_ = conn.WriteJSON(msg)
	}
}

func (s *Server) setupRealtime(app *fiber.App) {
	app.Use("/realtime/v1/websocket", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if c.Query("apikey") == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No API key found in request"})
		}
		return c.Next()
	})

	app.Get("/realtime/v1/websocket", websocket.New(func(conn *websocket.Conn) {
		s.hub.add(conn)
		defer s.hub.remove(conn)

		for {
			var msg frame
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Event == "subscribe" && msg.Topic != "" {
				s.hub.subscribe(conn, msg.Topic)
			}
		}
	}))
}
