package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"goldlink-backend/internal/service"
)

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	var req service.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	msg, err := s.messages.Send(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	convs, err := s.messages.ListConversations(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convs)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, skip := pagination(r)
	msgs, err := s.messages.GetMessages(r.Context(), actor, id, limit, skip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
