package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/yummybites/yummybites-backend/internal/orders"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	fail   bool
}

func (c *fakeConn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.frames = append(c.frames, frame)
	return nil
}

func (c *fakeConn) received(t *testing.T) []StatusFrame {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StatusFrame, 0, len(c.frames))
	for _, b := range c.frames {
		var f StatusFrame
		if err := json.Unmarshal(b, &f); err != nil {
			t.Fatalf("bad frame %q: %v", b, err)
		}
		out = append(out, f)
	}
	return out
}

func TestBroadcastNoWatchers(t *testing.T) {
	h := NewHub()
	if err := h.Broadcast("nobody-home", orders.StatusPreparing); err != nil {
		t.Fatalf("broadcast to unwatched order: %v", err)
	}
}

func TestConnectDisconnectReplay(t *testing.T) {
	h := NewHub()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}

	h.Connect("o1", a)
	h.Connect("o1", b)
	h.Connect("o1", c)
	h.Disconnect("o1", b)

	if got := h.Watchers("o1"); got != 2 {
		t.Fatalf("watchers = %d, want 2", got)
	}

	// Re-connecting an already-registered connection must not duplicate it.
	h.Connect("o1", a)
	if got := h.Watchers("o1"); got != 2 {
		t.Fatalf("watchers after re-connect = %d, want 2", got)
	}

	if err := h.Broadcast("o1", orders.StatusConfirmed); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if got := len(b.received(t)); got != 0 {
		t.Errorf("disconnected observer got %d frames, want 0", got)
	}
	for _, conn := range []*fakeConn{a, c} {
		if got := len(conn.received(t)); got != 1 {
			t.Errorf("observer got %d frames, want 1", got)
		}
	}
}

func TestDisconnectAbsentIsNoOp(t *testing.T) {
	h := NewHub()
	stranger := &fakeConn{}

	h.Disconnect("o1", stranger) // never registered, nothing watched
	h.Connect("o1", &fakeConn{})
	h.Disconnect("o1", stranger) // not in this set
	h.Disconnect("o1", stranger) // still a no-op

	if got := h.Watchers("o1"); got != 1 {
		t.Fatalf("watchers = %d, want 1", got)
	}
}

func TestBroadcastFanOutAndPrune(t *testing.T) {
	h := NewHub()
	live1, live2 := &fakeConn{}, &fakeConn{}
	broken := &fakeConn{fail: true}

	h.Connect("o1", live1)
	h.Connect("o1", broken)
	h.Connect("o1", live2)

	if err := h.Broadcast("o1", orders.StatusPreparing); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	for _, conn := range []*fakeConn{live1, live2} {
		frames := conn.received(t)
		if len(frames) != 1 {
			t.Fatalf("live observer got %d frames, want 1", len(frames))
		}
		if frames[0].OrderID != "o1" || frames[0].Status != "Preparing" {
			t.Errorf("frame = %+v, want {o1 Preparing}", frames[0])
		}
	}

	// The broken connection was reaped through the disconnect path.
	if got := h.Watchers("o1"); got != 2 {
		t.Fatalf("watchers after prune = %d, want 2", got)
	}

	// A later broadcast must not touch the pruned connection.
	if err := h.Broadcast("o1", orders.StatusDelivered); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if got := len(live1.received(t)); got != 2 {
		t.Errorf("live observer got %d frames, want 2", got)
	}
}

func TestBroadcastOrdering(t *testing.T) {
	h := NewHub()
	conn := &fakeConn{}
	h.Connect("o1", conn)

	for _, s := range []orders.Status{orders.StatusConfirmed, orders.StatusPreparing} {
		if err := h.Broadcast("o1", s); err != nil {
			t.Fatalf("broadcast %s: %v", s, err)
		}
	}

	frames := conn.received(t)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Status != "Confirmed" || frames[1].Status != "Preparing" {
		t.Errorf("frames out of order: %v then %v", frames[0].Status, frames[1].Status)
	}
}

func TestEmptyEntryReclaimed(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}

	h.Connect("o1", a)
	h.Connect("o1", b)
	h.Disconnect("o1", a)
	h.Disconnect("o1", b)

	if got := h.Watchers("o1"); got != 0 {
		t.Fatalf("watchers = %d, want 0", got)
	}
	if got := h.ActiveOrders(); got != 0 {
		t.Fatalf("active orders = %d, want 0", got)
	}

	// Pruning the last watcher must reclaim the entry too.
	broken := &fakeConn{fail: true}
	h.Connect("o2", broken)
	if err := h.Broadcast("o2", orders.StatusCancelled); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if got := h.ActiveOrders(); got != 0 {
		t.Fatalf("active orders after prune = %d, want 0", got)
	}
}

func TestConcurrentChurn(t *testing.T) {
	h := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			orderID := fmt.Sprintf("o%d", n%4)
			for j := 0; j < 100; j++ {
				conn := &fakeConn{}
				h.Connect(orderID, conn)
				_ = h.Broadcast(orderID, orders.StatusPreparing)
				h.Disconnect(orderID, conn)
			}
		}(i)
	}
	wg.Wait()

	if got := h.ActiveOrders(); got != 0 {
		t.Fatalf("active orders after churn = %d, want 0", got)
	}
}
