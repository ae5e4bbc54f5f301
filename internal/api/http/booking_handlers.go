package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/service"
)

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	var req service.CreateBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	booking, err := s.bookings.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handlePreviewBooking(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	quote, err := s.bookings.Preview(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := s.bookings.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Status domain.BookingStatus `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	booking, err := s.bookings.UpdateStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// handleListBookings returns the caller's bookings. The role query parameter
// picks the side: "renter" (default) or "owner".
func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	limit, skip := pagination(r)
	status := r.URL.Query().Get("status")

	var (
		bookings []domain.Booking
		total    int32
		err      error
	)
	if r.URL.Query().Get("role") == "owner" {
		bookings, total, err = s.bookings.ListOwned(r.Context(), actor, status, limit, skip)
	} else {
		bookings, total, err = s.bookings.ListMine(r.Context(), actor, status, limit, skip)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: bookings, Total: total, Limit: limit, Skip: skip})
}
