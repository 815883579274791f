package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yummybites/yummybites-backend/internal/menu"
)

type MenuHandler struct {
	Repo *menu.Repo
}

func (h *MenuHandler) Register(r chi.Router) {
	r.Get("/api/v1/menu/", h.list)
	r.Get("/api/v1/menu/categories", h.categories)
}

func (h *MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	dishes, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch menu")
		return
	}
	if len(dishes) == 0 {
		writeError(w, http.StatusNotFound, "no menu items found")
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *MenuHandler) categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cats, err := h.Repo.Categories(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": cats})
}
