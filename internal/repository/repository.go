package repository

import (
	"context"

	"goldlink-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateRoleAndVerified(ctx context.Context, id int32, role domain.UserRole, verified *bool) (*domain.User, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.User, error)
}

type JewelryRepository interface {
	Create(ctx context.Context, item *domain.Jewelry) error
	GetByID(ctx context.Context, id int32) (*domain.Jewelry, error)
	Update(ctx context.Context, item *domain.Jewelry) error
	Delete(ctx context.Context, id int32) error
	Search(ctx context.Context, filter domain.JewelryFilter) ([]domain.Jewelry, int32, error)
	// SetAvailability is a conditional check-and-set. When requireAvailable
	// is true the update only succeeds if the row is still available,
	// guarding against two renters booking the same item concurrently.
	SetAvailability(ctx context.Context, id int32, available, requireAvailable bool) error
	AddViews(ctx context.Context, id int32, delta int32) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	ListByRenter(ctx context.Context, renterID int32, status string, limit, skip int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, limit, skip int32) ([]domain.Booking, int32, error)
	ListAll(ctx context.Context, status string, limit, skip int32) ([]domain.Booking, int32, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int32, status domain.TransactionStatus) error
	ListByUser(ctx context.Context, userID int32, limit, skip int32) ([]domain.Transaction, int32, error)
}

type EstimationRepository interface {
	Create(ctx context.Context, est *domain.Estimation) error
	GetByID(ctx context.Context, id int32) (*domain.Estimation, error)
	ListByUser(ctx context.Context, userID int32, limit, skip int32) ([]domain.Estimation, int32, error)
}

type ReviewRepository interface {
	// Create inserts the review and recomputes the target's aggregate
	// rating and review count inside one database transaction.
	Create(ctx context.Context, review *domain.Review) error
	Exists(ctx context.Context, reviewerID, targetID int32, targetType domain.ReviewTargetType) (bool, error)
	ListByTarget(ctx context.Context, targetID int32, targetType domain.ReviewTargetType, limit, skip int32) ([]domain.Review, int32, error)
}

type MessageRepository interface {
	GetOrCreateConversation(ctx context.Context, user1ID, user2ID int32) (*domain.Conversation, error)
	GetConversation(ctx context.Context, id int32) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, conversationID int32, limit, skip int32) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID, receiverID int32) error
}
