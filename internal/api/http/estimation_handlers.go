package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"goldlink-backend/internal/service"
)

func (s *Server) handleCreateEstimation(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	var req service.EstimateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	est, err := s.estimations.Estimate(r.Context(), actor.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, est)
}

func (s *Server) handleGetEstimation(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	est, err := s.estimations.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func (s *Server) handleListEstimations(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	limit, skip := pagination(r)
	ests, total, err := s.estimations.ListMine(r.Context(), actor.ID, limit, skip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: ests, Total: total, Limit: limit, Skip: skip})
}
