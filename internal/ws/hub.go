package ws

import (
	"encoding/json"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/yummybites/yummybites-backend/internal/orders"
)

// Sender is one live observer connection. Send must not block: implementations
// enqueue into a bounded buffer and report failure when the buffer is full or
// the transport is gone. A failed Send marks the connection dead.
type Sender interface {
	Send(frame []byte) error
}

// StatusFrame is the JSON message pushed to observers.
type StatusFrame struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

const shardCount = 32

// Hub maps order ids to the set of connections watching them. State is split
// across shards with one mutex each, so churn on a busy order never stalls
// connects or broadcasts on a quiet one.
type Hub struct {
	shards [shardCount]shard
}

type shard struct {
	mu       sync.Mutex
	watchers map[string]map[Sender]struct{}
}

func NewHub() *Hub {
	h := &Hub{}
	for i := range h.shards {
		h.shards[i].watchers = make(map[string]map[Sender]struct{})
	}
	return h
}

func (h *Hub) shardFor(orderID string) *shard {
	f := fnv.New32a()
	_, _ = f.Write([]byte(orderID))
	return &h.shards[f.Sum32()%shardCount]
}

// Connect registers conn as a watcher of orderID. The entry for orderID is
// created on first connect.
func (h *Hub) Connect(orderID string, conn Sender) {
	s := h.shardFor(orderID)
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.watchers[orderID]
	if set == nil {
		set = make(map[Sender]struct{})
		s.watchers[orderID] = set
	}
	set[conn] = struct{}{}
	slog.Debug("observer connected", "order_id", orderID, "watchers", len(set))
}

// Disconnect removes conn from orderID's watcher set. Removing a connection
// that is not registered is a no-op. The last watcher takes the entry with it.
func (h *Hub) Disconnect(orderID string, conn Sender) {
	s := h.shardFor(orderID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(orderID, conn)
}

// remove expects s.mu to be held.
func (s *shard) remove(orderID string, conn Sender) {
	set, ok := s.watchers[orderID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(s.watchers, orderID)
	}
}

// Broadcast pushes the new status to every watcher of orderID. Each delivery
// is attempted independently; connections whose send fails are pruned after
// the pass, through the same path as Disconnect. Per-connection failures are
// never reported to the caller — a gone observer is routine, not actionable.
//
// Holding the shard lock across the pass keeps a connection from being pushed
// to after its removal, and serializes broadcasts per order so observers see
// transitions in persist order. Sends are bounded-buffer enqueues, so the
// lock is never held across network I/O.
func (h *Hub) Broadcast(orderID string, status orders.Status) error {
	frame, err := json.Marshal(StatusFrame{OrderID: orderID, Status: string(status)})
	if err != nil {
		return err
	}

	s := h.shardFor(orderID)
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.watchers[orderID]
	if !ok {
		// Nobody is watching this order.
		return nil
	}

	var dead []Sender
	for conn := range set {
		if err := conn.Send(frame); err != nil {
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		s.remove(orderID, conn)
	}
	if len(dead) > 0 {
		slog.Info("pruned dead observers", "order_id", orderID, "pruned", len(dead))
	}
	return nil
}

// Watchers reports how many connections are watching orderID.
func (h *Hub) Watchers(orderID string) int {
	s := h.shardFor(orderID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers[orderID])
}

// ActiveOrders reports how many orders currently have at least one watcher.
func (h *Hub) ActiveOrders() int {
	n := 0
	for i := range h.shards {
		s := &h.shards[i]
		s.mu.Lock()
		n += len(s.watchers)
		s.mu.Unlock()
	}
	return n
}
