package domain

import "time"

type MessageStatus string

const (
	MessageStatusSent MessageStatus = "SENT"
	MessageStatusRead MessageStatus = "READ"
)

type Message struct {
	ID             int32         `json:"id"`
	ConversationID int32         `json:"conversation_id"`
	SenderID       int32         `json:"sender_id"`
	Sender         *User         `json:"sender,omitempty"`
	ReceiverID     int32         `json:"receiver_id"`
	Content        string        `json:"content"`
	Images         []string      `json:"images,omitempty"`
	Status         MessageStatus `json:"status"`
	CreatedOn      time.Time     `json:"created_on"`
}

// Conversation holds the ordered participant pair. User1ID < User2ID always,
// so one row exists per pair regardless of who wrote first.
type Conversation struct {
	ID            int32     `json:"id"`
	User1ID       int32     `json:"user1_id"`
	User2ID       int32     `json:"user2_id"`
	LastMessageID *int32    `json:"last_message_id,omitempty"`
	LastMessage   *Message  `json:"last_message,omitempty"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// ConversationPair orders two participant ids into canonical form.
func ConversationPair(a, b int32) (int32, int32) {
	if a > b {
		return b, a
	}
	return a, b
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID int32) int32 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}
