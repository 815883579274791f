package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/yummybites/yummybites-backend/internal/ws"
)

// SocketHandler serves the observer attach endpoint. Connections are
// accepted unconditionally; watching an order requires only its id.
type SocketHandler struct {
	Hub *ws.Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The storefront serves from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *SocketHandler) Register(r chi.Router) {
	r.Get("/ws/order/{id}", h.watchOrder)
}

func (h *SocketHandler) watchOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		return
	}

	cl := ws.NewClient(conn)
	h.Hub.Connect(orderID, cl)
	go cl.WritePump()

	// Block on keep-alives until the client goes away, then deregister.
	cl.ReadLoop()
	h.Hub.Disconnect(orderID, cl)
	cl.Close()
}
