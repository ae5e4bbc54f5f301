package service

import (
	"context"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/utils"
)

// AuthResult carries the token pair and profile returned by login/register.
type AuthResult struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Currency  string `json:"currency"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
	Country   *string `json:"country"`
	Currency  *string `json:"currency"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, req UpdateProfileRequest) (*domain.User, error)
}

type AdminService interface {
	ListUsers(ctx context.Context, actor authz.Actor) ([]domain.User, error)
	// UpdateUser changes role and/or verified flag. Empty role means keep,
	// nil verified means keep.
	UpdateUser(ctx context.Context, actor authz.Actor, targetID int32, role domain.UserRole, verified *bool) (*domain.User, error)
	DeleteUser(ctx context.Context, actor authz.Actor, targetID int32) error
}

type CreateJewelryRequest struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Images          []string             `json:"images"`
	Type            domain.JewelryType   `json:"type"`
	WeightGrams     float64              `json:"weight_grams"`
	Purity          domain.PurityGrade   `json:"purity"`
	ListingTypes    []domain.ListingType `json:"listing_types"`
	RentPricePerDay float64              `json:"rent_price_per_day"`
	SalePrice       float64              `json:"sale_price"`
	Location        string               `json:"location"`
}

type UpdateJewelryRequest struct {
	Title           *string               `json:"title"`
	Description     *string               `json:"description"`
	Images          *[]string             `json:"images"`
	WeightGrams     *float64              `json:"weight_grams"`
	Purity          *domain.PurityGrade   `json:"purity"`
	ListingTypes    *[]domain.ListingType `json:"listing_types"`
	RentPricePerDay *float64              `json:"rent_price_per_day"`
	SalePrice       *float64              `json:"sale_price"`
	Available       *bool                 `json:"available"`
	Location        *string               `json:"location"`
}

type JewelryService interface {
	Create(ctx context.Context, actor authz.Actor, req CreateJewelryRequest) (*domain.Jewelry, error)
	// Get returns the listing and records one view for anonymous and
	// non-owner reads.
	Get(ctx context.Context, actor *authz.Actor, id int32) (*domain.Jewelry, error)
	Update(ctx context.Context, actor authz.Actor, id int32, req UpdateJewelryRequest) (*domain.Jewelry, error)
	Delete(ctx context.Context, actor authz.Actor, id int32) error
	Search(ctx context.Context, filter domain.JewelryFilter) ([]domain.Jewelry, int32, error)
}

type CreateBookingRequest struct {
	JewelryID int32  `json:"jewelry_id"`
	StartDate string `json:"start_date"` // RFC 3339
	EndDate   string `json:"end_date"`
	Insurance bool   `json:"insurance"`
}

type BookingService interface {
	Create(ctx context.Context, actor authz.Actor, req CreateBookingRequest) (*domain.Booking, error)
	Preview(ctx context.Context, req CreateBookingRequest) (*utils.RentalQuote, error)
	Get(ctx context.Context, actor authz.Actor, id int32) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, actor authz.Actor, id int32, status domain.BookingStatus) (*domain.Booking, error)
	ListMine(ctx context.Context, actor authz.Actor, status string, limit, skip int32) ([]domain.Booking, int32, error)
	ListOwned(ctx context.Context, actor authz.Actor, status string, limit, skip int32) ([]domain.Booking, int32, error)
	ListAll(ctx context.Context, actor authz.Actor, status string, limit, skip int32) ([]domain.Booking, int32, error)
}

type TransactionService interface {
	Get(ctx context.Context, actor authz.Actor, id int32) (*domain.Transaction, error)
	ListMine(ctx context.Context, actor authz.Actor, limit, skip int32) ([]domain.Transaction, int32, error)
}

type EstimateRequest struct {
	WeightGrams float64            `json:"weight_grams"`
	Purity      domain.PurityGrade `json:"purity"`
	Images      []string           `json:"images"`
}

type EstimationService interface {
	Estimate(ctx context.Context, userID int32, req EstimateRequest) (*domain.Estimation, error)
	Get(ctx context.Context, actor authz.Actor, id int32) (*domain.Estimation, error)
	ListMine(ctx context.Context, userID int32, limit, skip int32) ([]domain.Estimation, int32, error)
}

type CreateReviewRequest struct {
	TargetID   int32                   `json:"target_id"`
	TargetType domain.ReviewTargetType `json:"target_type"`
	BookingID  *int32                  `json:"booking_id"`
	Rating     int32                   `json:"rating"`
	Comment    string                  `json:"comment"`
}

type ReviewService interface {
	Create(ctx context.Context, actor authz.Actor, req CreateReviewRequest) (*domain.Review, error)
	ListByTarget(ctx context.Context, targetID int32, targetType domain.ReviewTargetType, limit, skip int32) ([]domain.Review, int32, error)
}

type SendMessageRequest struct {
	ReceiverID int32    `json:"receiver_id"`
	Content    string   `json:"content"`
	Images     []string `json:"images"`
}

type MessageService interface {
	Send(ctx context.Context, actor authz.Actor, req SendMessageRequest) (*domain.Message, error)
	ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error)
	// GetMessages returns a conversation page and marks messages addressed
	// to the caller as read.
	GetMessages(ctx context.Context, actor authz.Actor, conversationID int32, limit, skip int32) ([]domain.Message, error)
}

// EmailSender sends transactional notifications. Implementations must not
// block request handling on provider latency beyond the passed context.
type EmailSender interface {
	SendWelcome(ctx context.Context, user *domain.User) error
	SendBookingCreated(ctx context.Context, owner *domain.User, booking *domain.Booking, jewelryTitle string) error
	SendBookingStatusChanged(ctx context.Context, renter *domain.User, booking *domain.Booking, jewelryTitle string) error
}
