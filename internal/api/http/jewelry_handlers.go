package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/service"
)

func (s *Server) handleCreateJewelry(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	var req service.CreateJewelryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := s.jewelry.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetJewelry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var actor *authz.Actor
	if a, ok := actorFrom(r.Context()); ok {
		actor = &a
	}
	item, err := s.jewelry.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateJewelry(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.UpdateJewelryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := s.jewelry.Update(r.Context(), actor, id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteJewelry(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.jewelry.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSearchJewelry(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, skip := pagination(r)

	filter := domain.JewelryFilter{
		Type:          domain.JewelryType(q.Get("type")),
		Purity:        domain.PurityGrade(q.Get("purity")),
		Location:      q.Get("location"),
		Search:        q.Get("search"),
		OnlyAvailable: true,
		Limit:         limit,
		Skip:          skip,
	}
	if raw := q.Get("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = v
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = v
		}
	}
	if raw := q.Get("owner_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			filter.OwnerID = int32(v)
			// Only the owner themselves (or an admin) may see booked-out
			// inventory; everyone else browses available items only.
			if a, ok := actorFrom(r.Context()); ok && (a.ID == filter.OwnerID || a.Role == domain.UserRoleAdmin) {
				filter.OnlyAvailable = false
			}
		}
	}

	items, total, err := s.jewelry.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Limit: limit, Skip: skip})
}

func (s *Server) handleListJewelryReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, skip := pagination(r)
	reviews, total, err := s.reviews.ListByTarget(r.Context(), id, domain.ReviewTargetJewelry, limit, skip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: reviews, Total: total, Limit: limit, Skip: skip})
}
