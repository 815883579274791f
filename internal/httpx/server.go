package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Registrar is anything that mounts routes on a router.
type Registrar interface {
	Register(r chi.Router)
}

func NewRouter(corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// RegisterTimed mounts handlers under the request timeout. Long-lived
// routes (the observer socket) register directly on the mux instead: the
// timeout middleware would fire mid-stream and try to write a 504 onto a
// hijacked connection.
func RegisterTimed(r *chi.Mux, hs ...Registrar) {
	r.Group(func(g chi.Router) {
		g.Use(middleware.Timeout(15 * time.Second))
		for _, h := range hs {
			h.Register(g)
		}
	})
}
