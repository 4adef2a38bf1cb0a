package mux

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"drawpoker-server/pkg/poker/event"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestGameWebSocket(t *testing.T) {
	a := assert.New(t)

	m := NewMux("v1", nil)
	ts := httptest.NewServer(m)
	defer ts.Close()

	gameID := uuid.New().String()
	lg := m.RegisterGame(gameID, nil)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + gameID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	a.NoError(err)
	defer conn.Close()

	// emit until the client is registered and sees a message
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(10 * time.Millisecond):
				lg.Hub().Emit(event.New(event.TypePotAwarded, "alice won ${40}").WithAmount(40))
			}
		}
	}()

	a.NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	_, msg, err := conn.ReadMessage()
	a.NoError(err)

	var e event.Event
	a.NoError(json.Unmarshal(msg, &e))
	a.Equal(event.TypePotAwarded, e.Type)
	a.Equal(40, e.Amount)
	a.Equal("alice won ${40}", e.Message)

	// unknown games cannot be streamed
	badURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + uuid.New().String() + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(badURL, nil)
	a.Error(err)
	if resp != nil {
		a.Equal(404, resp.StatusCode)
	}
}
