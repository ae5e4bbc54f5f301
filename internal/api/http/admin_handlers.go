package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"goldlink-backend/internal/domain"
)

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	users, err := s.admin.ListUsers(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleAdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Role     domain.UserRole `json:"role"`
		Verified *bool           `json:"verified"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.admin.UpdateUser(r.Context(), actor, id, req.Role, req.Verified)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.admin.DeleteUser(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAdminListBookings(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	limit, skip := pagination(r)
	status := r.URL.Query().Get("status")

	bookings, total, err := s.bookings.ListAll(r.Context(), actor, status, limit, skip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: bookings, Total: total, Limit: limit, Skip: skip})
}
