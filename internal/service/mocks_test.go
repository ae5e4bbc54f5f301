package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"goldlink-backend/internal/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateRoleAndVerified(ctx context.Context, id int32, role domain.UserRole, verified *bool) (*domain.User, error) {
	args := m.Called(ctx, id, role, verified)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockJewelryRepo struct{ mock.Mock }

func (m *mockJewelryRepo) Create(ctx context.Context, item *domain.Jewelry) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockJewelryRepo) GetByID(ctx context.Context, id int32) (*domain.Jewelry, error) {
	args := m.Called(ctx, id)
	if j := args.Get(0); j != nil {
		return j.(*domain.Jewelry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJewelryRepo) Update(ctx context.Context, item *domain.Jewelry) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockJewelryRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockJewelryRepo) Search(ctx context.Context, filter domain.JewelryFilter) ([]domain.Jewelry, int32, error) {
	args := m.Called(ctx, filter)
	if j := args.Get(0); j != nil {
		return j.([]domain.Jewelry), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockJewelryRepo) SetAvailability(ctx context.Context, id int32, available, requireAvailable bool) error {
	return m.Called(ctx, id, available, requireAvailable).Error(0)
}

func (m *mockJewelryRepo) AddViews(ctx context.Context, id int32, delta int32) error {
	return m.Called(ctx, id, delta).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) ListByRenter(ctx context.Context, renterID int32, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, limit, skip)
	if b := args.Get(0); b != nil {
		return b.([]domain.Booking), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockBookingRepo) ListByOwner(ctx context.Context, ownerID int32, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, limit, skip)
	if b := args.Get(0); b != nil {
		return b.([]domain.Booking), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockBookingRepo) ListAll(ctx context.Context, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, limit, skip)
	if b := args.Get(0); b != nil {
		return b.([]domain.Booking), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if tx := args.Get(0); tx != nil {
		return tx.(*domain.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTransactionRepo) UpdateStatus(ctx context.Context, id int32, status domain.TransactionStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockTransactionRepo) ListByUser(ctx context.Context, userID int32, limit, skip int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, userID, limit, skip)
	if tx := args.Get(0); tx != nil {
		return tx.([]domain.Transaction), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

type mockEstimationRepo struct{ mock.Mock }

func (m *mockEstimationRepo) Create(ctx context.Context, est *domain.Estimation) error {
	return m.Called(ctx, est).Error(0)
}

func (m *mockEstimationRepo) GetByID(ctx context.Context, id int32) (*domain.Estimation, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*domain.Estimation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEstimationRepo) ListByUser(ctx context.Context, userID int32, limit, skip int32) ([]domain.Estimation, int32, error) {
	args := m.Called(ctx, userID, limit, skip)
	if e := args.Get(0); e != nil {
		return e.([]domain.Estimation), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) Exists(ctx context.Context, reviewerID, targetID int32, targetType domain.ReviewTargetType) (bool, error) {
	args := m.Called(ctx, reviewerID, targetID, targetType)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByTarget(ctx context.Context, targetID int32, targetType domain.ReviewTargetType, limit, skip int32) ([]domain.Review, int32, error) {
	args := m.Called(ctx, targetID, targetType, limit, skip)
	if r := args.Get(0); r != nil {
		return r.([]domain.Review), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) GetOrCreateConversation(ctx context.Context, user1ID, user2ID int32) (*domain.Conversation, error) {
	args := m.Called(ctx, user1ID, user2ID)
	if c := args.Get(0); c != nil {
		return c.(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) GetConversation(ctx context.Context, id int32) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.([]domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessageRepo) ListMessages(ctx context.Context, conversationID int32, limit, skip int32) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, limit, skip)
	if msgs := args.Get(0); msgs != nil {
		return msgs.([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, conversationID, receiverID int32) error {
	return m.Called(ctx, conversationID, receiverID).Error(0)
}

// noopEmail satisfies EmailSender without touching a provider.
type noopEmail struct{}

func (noopEmail) SendWelcome(ctx context.Context, user *domain.User) error { return nil }
func (noopEmail) SendBookingCreated(ctx context.Context, owner *domain.User, booking *domain.Booking, jewelryTitle string) error {
	return nil
}
func (noopEmail) SendBookingStatusChanged(ctx context.Context, renter *domain.User, booking *domain.Booking, jewelryTitle string) error {
	return nil
}
