package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) (*WebSocketClient, func()) {
	t.Helper()

	upgraded := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		upgraded <- conn
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	conn := <-upgraded
	client := &WebSocketClient{
		conn:   conn,
		send:   make(chan []byte, 4),
		done:   make(chan struct{}),
		logger: zap.NewNop(),
	}

	cleanup := func() {
		peer.Close()
		srv.Close()
	}
	return client, cleanup
}

func TestCloseConnectionReleasesWritePump(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	stopped := make(chan struct{})
	go func() {
		client.writePump()
		close(stopped)
	}()

	client.closeConnection()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("write pump still running after close")
	}
}

func TestCloseConnectionIsIdempotent(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	client.closeConnection()
	client.closeConnection()
}

func TestWantsFiltersByCategory(t *testing.T) {
	client := &WebSocketClient{categories: map[string]bool{"AI": true}}

	require.True(t, client.wants([]byte(`{"category":"AI"}`)))
	require.False(t, client.wants([]byte(`{"category":"Gaming"}`)))

	open := &WebSocketClient{categories: map[string]bool{}}
	require.True(t, open.wants([]byte(`{"category":"Gaming"}`)))
}
