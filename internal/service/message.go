package service

import (
	"context"
	"errors"

	"goldlink-backend/internal/api/ws"
	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository"
)

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	hub      *ws.Hub // nil disables live push
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, hub *ws.Hub) MessageService {
	return &messageService{messages: messages, users: users, hub: hub}
}

func (s *messageService) Send(ctx context.Context, actor authz.Actor, req SendMessageRequest) (*domain.Message, error) {
	if req.ReceiverID == actor.ID {
		return nil, domain.Conflict("you cannot message yourself")
	}
	if req.Content == "" && len(req.Images) == 0 {
		return nil, domain.Validation("message content is required")
	}

	if _, err := s.users.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("receiver")
		}
		return nil, err
	}

	user1ID, user2ID := domain.ConversationPair(actor.ID, req.ReceiverID)
	conv, err := s.messages.GetOrCreateConversation(ctx, user1ID, user2ID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       actor.ID,
		ReceiverID:     req.ReceiverID,
		Content:        req.Content,
		Images:         req.Images,
		Status:         domain.MessageStatusSent,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.SendToUser(req.ReceiverID, ws.Event{Type: "message", Payload: msg})
	}

	logger.Debug("message sent",
		"message_id", msg.ID, "conversation_id", conv.ID,
		"sender_id", actor.ID, "receiver_id", req.ReceiverID)
	return msg, nil
}

func (s *messageService) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	return s.messages.ListConversations(ctx, userID)
}

func (s *messageService) GetMessages(ctx context.Context, actor authz.Actor, conversationID int32, limit, skip int32) ([]domain.Message, error) {
	conv, err := s.messages.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.User1ID != actor.ID && conv.User2ID != actor.ID {
		return nil, domain.Unauthorized("you are not a participant in this conversation")
	}

	msgs, err := s.messages.ListMessages(ctx, conversationID, limit, skip)
	if err != nil {
		return nil, err
	}

	// Opening a conversation acknowledges everything addressed to the caller.
	if err := s.messages.MarkRead(ctx, conversationID, actor.ID); err != nil {
		logger.Warn("failed to mark messages read",
			"conversation_id", conversationID, "user_id", actor.ID, "error", err)
	}

	return msgs, nil
}
