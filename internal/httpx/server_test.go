package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type registrarFunc func(r chi.Router)

func (f registrarFunc) Register(r chi.Router) { f(r) }

// Routes mounted through RegisterTimed run under a request deadline; routes
// registered directly on the mux, like the observer socket, must not. A
// deadline on the socket route would fire mid-stream and write onto a
// hijacked connection.
func TestTimeoutScoping(t *testing.T) {
	router := NewRouter(nil)

	var timedDeadline, plainDeadline bool
	RegisterTimed(router, registrarFunc(func(r chi.Router) {
		r.Get("/api/v1/ping", func(w http.ResponseWriter, r *http.Request) {
			_, timedDeadline = r.Context().Deadline()
			w.WriteHeader(http.StatusOK)
		})
	}))
	router.Get("/ws/order/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, plainDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	for _, path := range []string{"/api/v1/ping", "/ws/order/o1"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: status %d", path, resp.StatusCode)
		}
	}

	if !timedDeadline {
		t.Error("timed route has no request deadline")
	}
	if plainDeadline {
		t.Error("socket route unexpectedly has a request deadline")
	}
}
