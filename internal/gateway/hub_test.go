package gateway

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/logger"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(srv.URL, "http", "ws", 1)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(logger.New("test"))
	defer hub.Close()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	a := dialHub(t, srv)
	b := dialHub(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 10*time.Millisecond)

	payload := []byte(`{"event":"new_order"}`)
	hub.Broadcast(payload)

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, payload, msg)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(logger.New("test"))
	defer hub.Close()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	// Connect but never read. The write pump backs up against the socket,
	// the send buffer fills, and the hub must cut the client loose instead
	// of letting Broadcast stall behind it.
	dialHub(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	payload := bytes.Repeat([]byte("x"), 1<<20)
	require.Eventually(t, func() bool {
		hub.Broadcast(payload)
		return hub.ClientCount() == 0
	}, 5*time.Second, 10*time.Millisecond, "unread client never dropped")
}

func TestHubDropsDisconnectedClient(t *testing.T) {
	hub := NewHub(logger.New("test"))
	defer hub.Close()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	conn := dialHub(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)

	// broadcasting into an empty hub must not panic or block
	hub.Broadcast([]byte(`{"event":"order_updated"}`))
}
