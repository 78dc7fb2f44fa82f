package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialPair returns the server side of a fresh connection and the browser side
func dialPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()
	serverSide := make(chan *websocket.Conn, 1)
	var upgrader websocket.Upgrader
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverSide <- conn
	}))
	t.Cleanup(server.Close)

	browser, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = browser.Close() })
	return <-serverSide, browser
}

func TestClient_IDCarriesSubject(t *testing.T) {
	serverConn, _ := dialPair(t)
	other, _ := dialPair(t)

	a := NewClient(serverConn, Session{HouseholdID: 4, Subject: "auth0|alex"})
	b := NewClient(other, Session{HouseholdID: 4, Subject: "auth0|alex"})

	assert.True(t, strings.HasPrefix(a.ID(), "auth0|alex#"))
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "auth0|alex", a.Subject())
	assert.Equal(t, int32(4), a.HouseholdID())
}

func TestClient_ServeDeliversHouseholdEvents(t *testing.T) {
	serverConn, browser := dialPair(t)
	hub := NewHub()
	client := NewClient(serverConn, Session{HouseholdID: 9, Subject: "auth0|sam"})
	go client.Serve(hub)

	require.Eventually(t, func() bool { return hub.ClientCount(9) == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast(9, Deleted(EntityTypeCreditCard, 2))

	require.NoError(t, browser.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := browser.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(frame), `"type":"credit_card.deleted"`)
}

func TestClient_HubCloseEndsFeed(t *testing.T) {
	serverConn, browser := dialPair(t)
	hub := NewHub()
	client := NewClient(serverConn, Session{HouseholdID: 9, Subject: "auth0|sam"})
	go client.Serve(hub)
	require.Eventually(t, func() bool { return hub.ClientCount(9) == 1 }, time.Second, 5*time.Millisecond)

	hub.CloseAll()

	require.NoError(t, browser.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := browser.ReadMessage()
	assert.Error(t, err)
	assert.ErrorIs(t, client.Send([]byte("late")), ErrClientClosed)
	assert.NoError(t, client.Close())
}

func TestClient_SendWhenBehind(t *testing.T) {
	serverConn, _ := dialPair(t)
	client := NewClient(serverConn, Session{HouseholdID: 1, Subject: "auth0|slow"})
	defer client.Close()

	for i := 0; i < feedQueueSize; i++ {
		require.NoError(t, client.Send([]byte("{}")))
	}
	assert.ErrorIs(t, client.Send([]byte("{}")), ErrClientBehind)
}
