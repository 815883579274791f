package ws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yummybites/yummybites-backend/internal/orders"
)

// With no write pump draining the queue, a stalled observer's backlog fills
// up. The overflowing send must fail instead of blocking, and the next
// broadcast prunes the connection through the usual dead-connection path.
func TestSendBacklogOverflow(t *testing.T) {
	cl := NewClient(nil)

	for i := 0; i < sendBacklog; i++ {
		if err := cl.Send([]byte(fmt.Sprintf("frame %d", i))); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	if err := cl.Send([]byte("overflow")); !errors.Is(err, ErrBacklogFull) {
		t.Fatalf("err = %v, want ErrBacklogFull", err)
	}

	h := NewHub()
	h.Connect("o1", cl)
	live := &fakeConn{}
	h.Connect("o1", live)

	if err := h.Broadcast("o1", orders.StatusPreparing); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if got := h.Watchers("o1"); got != 1 {
		t.Fatalf("watchers after overflow prune = %d, want 1", got)
	}
	if got := len(live.received(t)); got != 1 {
		t.Errorf("healthy observer got %d frames, want 1", got)
	}
}
