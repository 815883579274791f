package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yummybites/yummybites-backend/internal/auth"
	"github.com/yummybites/yummybites-backend/internal/ratings"
)

type RatingsHandler struct {
	Repo   *ratings.Repo
	Tokens *auth.Service
}

type ratingReq struct {
	DishID  string `json:"dish_id"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

func (h *RatingsHandler) Register(r chi.Router) {
	r.Post("/api/v1/ratings/", h.submit)
	r.Get("/api/v1/ratings/{dishID}", h.get)
}

func (h *RatingsHandler) submit(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(h.Tokens, r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "please log in to rate dishes")
		return
	}

	var req ratingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DishID == "" {
		writeError(w, http.StatusBadRequest, "missing dish_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Upsert(ctx, req.DishID, id.Email, req.Stars, req.Comment); err != nil {
		if errors.Is(err, ratings.ErrInvalidStars) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sum, err := h.Repo.Summarize(ctx, req.DishID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Rating saved!",
		"average": sum.Average,
		"count":   sum.Count,
	})
}

func (h *RatingsHandler) get(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "dishID")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Repo.List(ctx, dishID, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sum, err := h.Repo.Summarize(ctx, dishID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var mine *ratings.Rating
	if id, ok := identify(h.Tokens, r); ok {
		mine, _ = h.Repo.ForUser(ctx, dishID, id.Email)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"dish_id":     dishID,
		"average":     sum.Average,
		"count":       sum.Count,
		"ratings":     list,
		"user_rating": mine,
	})
}
