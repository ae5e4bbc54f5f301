package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository"
	"goldlink-backend/internal/security"
)

type authService struct {
	users  repository.UserRepository
	tokens security.TokenManager
	email  EmailSender
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager, email EmailSender) AuthService {
	return &authService{users: users, tokens: tokens, email: email}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, domain.Validation("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, domain.Validation("password must be at least 8 characters")
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, domain.Validation("first and last name are required")
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, domain.Conflict("email is already registered")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "MAD"
	}

	// Everyone starts as a buyer. Seller/jeweler roles are granted by an
	// admin through the verification flow.
	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         domain.UserRoleBuyer,
		Country:      req.Country,
		Currency:     currency,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.email != nil {
		if err := s.email.SendWelcome(ctx, user); err != nil {
			logger.Warn("failed to send welcome email", "user_id", user.ID, "error", err)
		}
	}

	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.Unauthorized("invalid email or password")
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, domain.Unauthorized("invalid refresh token")
	}
	if claims.Type != security.TokenTypeRefresh {
		return nil, domain.Unauthorized("refresh token required")
	}

	// Re-read the user so revoked accounts and role changes take effect on
	// the next token pair.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("account no longer exists")
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *authService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID int32, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Currency != nil {
		user.Currency = *req.Currency
	}
	if user.FirstName == "" || user.LastName == "" {
		return nil, domain.Validation("first and last name cannot be empty")
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(user *domain.User) (*AuthResult, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
