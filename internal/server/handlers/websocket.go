// internal/server/handlers/websocket.go

package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/phuslu/log"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients come through the CORS-configured origins.
		return true
	},
}

// TrendFeedHandler streams analysis events to websocket clients by
// bridging the NATS analysis subject. With no event bus configured the
// endpoint reports the feed unavailable.
func TrendFeedHandler(natsConn *nats.Conn, subject string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if natsConn == nil {
			respondWithError(w, http.StatusServiceUnavailable, "Live trend feed is not configured", nil)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		messages := make(chan *nats.Msg, 64)
		sub, err := natsConn.ChanSubscribe(subject, messages)
		if err != nil {
			log.Warn().Err(err).Str("subject", subject).Msg("trend feed subscription failed")
			conn.Close()
			return
		}

		client := &feedClient{conn: conn, messages: messages, sub: sub}
		go client.writePump()
		go client.readPump()

		log.Info().Str("remote", r.RemoteAddr).Msg("trend feed client connected")
	}
}

type feedClient struct {
	conn      *websocket.Conn
	messages  chan *nats.Msg
	sub       *nats.Subscription
	closeOnce sync.Once
}

// writePump forwards NATS messages and keeps the connection alive with
// pings.
func (c *feedClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg, ok := <-c.messages:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg.Data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages; the feed is one-way. It exists to
// notice closed connections and answer pongs.
func (c *feedClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *feedClient) close() {
	c.closeOnce.Do(func() {
		c.sub.Unsubscribe()
		c.conn.Close()
	})
}
