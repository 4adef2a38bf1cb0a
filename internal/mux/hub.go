package mux

import (
	"encoding/json"
	"net/http"
	"time"

	"drawpoker-server/pkg/poker/event"

	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// Hub fans game events out to connected websocket clients. It
// implements event.Sink; a slow client is dropped rather than allowed
// to stall the game.
type Hub struct {
	logger     logrus.FieldLogger
	register   chan *client
	unregister chan *client
	broadcast  chan *event.Event
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub returns a running hub
func NewHub(logger logrus.FieldLogger) *Hub {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	h := &Hub{
		logger:     logger,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan *event.Event, 64),
	}

	go h.run()
	return h
}

// Emit queues the event for broadcast without blocking the game loop
func (h *Hub) Emit(e *event.Event) {
	select {
	case h.broadcast <- e:
	default:
		h.logger.Warn("dropped event: broadcast queue is full")
	}
}

func (h *Hub) run() {
	clients := make(map[*client]bool)

	for {
		select {
		case c := <-h.register:
			clients[c] = true
		case c := <-h.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
			}
		case e := <-h.broadcast:
			msg, err := json.Marshal(e)
			if err != nil {
				h.logger.WithError(err).Error("could not marshal event")
				continue
			}

			for c := range clients {
				select {
				case c.send <- msg:
				default:
					delete(clients, c)
					close(c.send)
				}
			}
		}
	}
}

func (m *Mux) getGameUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		lg := m.liveGame(gmux.Vars(r)["uuid"])
		if lg == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		c := &client{
			conn: conn,
			send: make(chan []byte, 32),
		}

		hub := lg.hub
		hub.register <- c

		go c.writeLoop()
		c.readLoop(hub)
	}
}

func (c *client) readLoop(hub *Hub) {
	defer func() {
		hub.unregister <- c
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// the stream is one-way; inbound messages are discarded
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}
