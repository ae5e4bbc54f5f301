package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/service"
)

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	var req service.CreateReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	review, err := s.reviews.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleListUserReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, skip := pagination(r)
	reviews, total, err := s.reviews.ListByTarget(r.Context(), id, domain.ReviewTargetUser, limit, skip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: reviews, Total: total, Limit: limit, Skip: skip})
}
