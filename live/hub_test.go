package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToRoom(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	defer hub.Stop()

	viewer := &Client{Hub: hub, Send: make(chan []byte, 1), Room: ScoreboardRoom}
	elsewhere := &Client{Hub: hub, Send: make(chan []byte, 1), Room: "other"}
	require.True(t, hub.Join(viewer))
	require.True(t, hub.Join(elsewhere))
	require.Eventually(t, func() bool { return hub.ClientCount(ScoreboardRoom) == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(ScoreboardRoom, WebSocketMessage{Type: "SCOREBOARD_UPDATED", RoomID: ScoreboardRoom})

	select {
	case raw := <-viewer.Send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "SCOREBOARD_UPDATED", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("viewer did not receive the broadcast")
	}
	assert.Empty(t, elsewhere.Send)

	// A full buffer drops the message instead of blocking.
	hub.BroadcastToRoom(ScoreboardRoom, WebSocketMessage{Type: "A"})
	hub.BroadcastToRoom(ScoreboardRoom, WebSocketMessage{Type: "B"})
	assert.Len(t, viewer.Send, 1)

	hub.Unregister <- viewer
	require.Eventually(t, func() bool { return hub.ClientCount(ScoreboardRoom) == 0 }, time.Second, 10*time.Millisecond)
	viewer.Mu.Lock()
	assert.True(t, viewer.IsClosed)
	viewer.Mu.Unlock()
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()

	viewer := &Client{Hub: hub, Send: make(chan []byte, 1), Room: ScoreboardRoom}
	require.True(t, hub.Join(viewer))
	require.Eventually(t, func() bool { return hub.ClientCount(ScoreboardRoom) == 1 }, time.Second, 10*time.Millisecond)

	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.leave(viewer)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("leaving a stopped hub blocked")
	}

	late := &Client{Hub: hub, Send: make(chan []byte, 1), Room: ScoreboardRoom}
	assert.False(t, hub.Join(late))
}
