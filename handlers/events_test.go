package handlers

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// trackingConn counts writes and flags any overlapping WriteJSON calls.
type trackingConn struct {
	inflight int32
	overlap  int32
	writes   int32
}

func (c *trackingConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.inflight, 1) > 1 {
		atomic.StoreInt32(&c.overlap, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.writes, 1)
	atomic.AddInt32(&c.inflight, -1)
	return nil
}

func (c *trackingConn) Close() error { return nil }

type failingConn struct {
	closed int32
}

func (c *failingConn) WriteJSON(v interface{}) error { return errors.New("broken pipe") }
func (c *failingConn) Close() error {
	atomic.StoreInt32(&c.closed, 1)
	return nil
}

func TestPublishEventSerialisesWrites(t *testing.T) {
	conn := &trackingConn{}
	client := &wsClient{conn: conn}
	hub.add(42, client)
	defer hub.remove(42, client)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			PublishEvent(42, Event{Type: "xp_awarded"})
		}()
	}
	wg.Wait()

	require.EqualValues(t, 16, atomic.LoadInt32(&conn.writes))
	require.Zero(t, atomic.LoadInt32(&conn.overlap),
		"concurrent publishers must not write the same connection at once")
}

func TestPublishEventDropsDeadConnection(t *testing.T) {
	conn := &failingConn{}
	client := &wsClient{conn: conn}
	hub.add(43, client)

	PublishEvent(43, Event{Type: "level_up"})

	require.EqualValues(t, 1, atomic.LoadInt32(&conn.closed), "failed connection must be closed")
	hub.mu.RLock()
	_, still := hub.conns[43]
	hub.mu.RUnlock()
	require.False(t, still, "failed connection must leave the hub")
}

func TestPublishEventNoConnectionsIsNoop(t *testing.T) {
	PublishEvent(99, Event{Type: "xp_awarded"})
}
