package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yummybites/yummybites-backend/internal/reservations"
)

type ReservationsHandler struct {
	Repo *reservations.Repo
}

func (h *ReservationsHandler) Register(r chi.Router) {
	r.Post("/api/v1/reservation/send", h.book)
}

func (h *ReservationsHandler) book(w http.ResponseWriter, r *http.Request) {
	var res reservations.Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if res.FirstName == "" || res.TableNo <= 0 || res.Date == "" || res.Time == "" {
		writeError(w, http.StatusBadRequest, "missing reservation fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Book(ctx, res); err != nil {
		if errors.Is(err, reservations.ErrTableBooked) {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("Table %d is already booked for %s at %s.", res.TableNo, res.Date, res.Time))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation booked successfully!"})
}
