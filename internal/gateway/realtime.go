package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"tribex/internal/models"

	"github.com/gorilla/websocket"
)

// Realtime subscribes to row-change events pushed by the service.
type Realtime struct {
	c *Client
}

// Realtime returns the realtime client.
func (c *Client) Realtime() *Realtime {
	return &Realtime{c: c}
}

// realtimeFrame is one websocket message on a table topic.
type realtimeFrame struct {
	Topic  string          `json:"topic"`
	Event  string          `json:"event"`
	Record json.RawMessage `json:"record,omitempty"`
}

// Subscribe opens a websocket to the service and invokes fn for every change
// event on the given table until ctx is done. Dial failures are returned;
// read failures after a successful dial end the subscription silently.
func (r *Realtime) Subscribe(ctx context.Context, table string, fn func(event string, record json.RawMessage)) error {
	wsURL := strings.Replace(r.c.baseURL, "http", "ws", 1) + "/realtime/v1/websocket"
	wsURL += "?" + url.Values{"apikey": {r.c.anonKey}}.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return models.NewUnavailableError(err)
	}

	topic := "table:" + table
	if err := conn.WriteJSON(realtimeFrame{Topic: topic, Event: "subscribe"}); err != nil {
		_ = conn.Close()
		return models.NewUnavailableError(err)
	}

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	go func() {
		defer func() { _ = conn.Close() }()
		for {
			var frame realtimeFrame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			if frame.Topic != topic || frame.Event == "subscribe" {
				continue
			}
			fn(frame.Event, frame.Record)
		}
	}()

	return nil
}
