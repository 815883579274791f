package httpx

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/yummybites/yummybites-backend/internal/orders"
	"github.com/yummybites/yummybites-backend/internal/ws"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func dialWatch(t *testing.T, srvURL, orderID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srvURL, "http") + "/ws/order/" + orderID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) ws.StatusFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f ws.StatusFrame
	if err := json.Unmarshal(msg, &f); err != nil {
		t.Fatalf("bad frame %q: %v", msg, err)
	}
	return f
}

func TestWatchOrderStream(t *testing.T) {
	hub := ws.NewHub()
	router := chi.NewRouter()
	(&SocketHandler{Hub: hub}).Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn := dialWatch(t, srv.URL, "o-42")
	defer conn.Close()

	waitFor(t, "observer registration", func() bool { return hub.Watchers("o-42") == 1 })

	// Client chatter is keep-alive only and must not disturb delivery.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("write keep-alive: %v", err)
	}

	for _, s := range []orders.Status{orders.StatusConfirmed, orders.StatusOutForDelivery} {
		if err := hub.Broadcast("o-42", s); err != nil {
			t.Fatalf("broadcast %s: %v", s, err)
		}
	}

	for _, want := range []string{"Confirmed", "Out for Delivery"} {
		f := readFrame(t, conn)
		if f.OrderID != "o-42" || f.Status != want {
			t.Errorf("frame = %+v, want {o-42 %s}", f, want)
		}
	}
}

func TestWatchOrderIsolation(t *testing.T) {
	hub := ws.NewHub()
	router := chi.NewRouter()
	(&SocketHandler{Hub: hub}).Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	watching := dialWatch(t, srv.URL, "o-1")
	defer watching.Close()
	bystander := dialWatch(t, srv.URL, "o-2")
	defer bystander.Close()

	waitFor(t, "both registrations", func() bool {
		return hub.Watchers("o-1") == 1 && hub.Watchers("o-2") == 1
	})

	if err := hub.Broadcast("o-1", orders.StatusPreparing); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	if f := readFrame(t, watching); f.OrderID != "o-1" || f.Status != "Preparing" {
		t.Errorf("frame = %+v, want {o-1 Preparing}", f)
	}

	_ = bystander.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, msg, err := bystander.ReadMessage(); err == nil {
		t.Errorf("observer of another order received %q", msg)
	}
}

func TestWatchOrderDeregisterOnClose(t *testing.T) {
	hub := ws.NewHub()
	router := chi.NewRouter()
	(&SocketHandler{Hub: hub}).Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn := dialWatch(t, srv.URL, "o-7")
	waitFor(t, "observer registration", func() bool { return hub.Watchers("o-7") == 1 })

	conn.Close()
	waitFor(t, "observer removal", func() bool { return hub.Watchers("o-7") == 0 })

	// The order entry is gone; broadcasting to it is a quiet no-op.
	if err := hub.Broadcast("o-7", orders.StatusDelivered); err != nil {
		t.Fatalf("broadcast after last disconnect: %v", err)
	}
	if got := hub.ActiveOrders(); got != 0 {
		t.Errorf("active orders = %d, want 0", got)
	}
}
