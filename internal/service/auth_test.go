package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testTokens() security.TokenManager {
	return security.NewTokenManager(testSecret, 60, 0)
}

func TestRegister(t *testing.T) {
	t.Run("New account starts as buyer", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", mock.Anything, "amine@example.com").Return(nil, domain.NotFound("user"))
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.UserRoleBuyer && u.Email == "amine@example.com" && u.Currency == "MAD"
		})).Return(nil)

		svc := NewAuthService(users, testTokens(), noopEmail{})
		result, err := svc.Register(context.Background(), RegisterRequest{
			Email:     "Amine@Example.com",
			Password:  "correct-horse",
			FirstName: "Amine",
			LastName:  "B",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.UserRoleBuyer, result.User.Role)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		users.AssertExpectations(t)
	})

	t.Run("Duplicate email conflicts", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: 9}, nil)

		svc := NewAuthService(users, testTokens(), noopEmail{})
		_, err := svc.Register(context.Background(), RegisterRequest{
			Email: "taken@example.com", Password: "correct-horse", FirstName: "A", LastName: "B",
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Short password rejected", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo), testTokens(), noopEmail{})
		_, err := svc.Register(context.Background(), RegisterRequest{
			Email: "a@example.com", Password: "short", FirstName: "A", LastName: "B",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	stored := &domain.User{ID: 4, Email: "amine@example.com", PasswordHash: string(hash), Role: domain.UserRoleBuyer}

	t.Run("Valid credentials", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", mock.Anything, "amine@example.com").Return(stored, nil)

		svc := NewAuthService(users, testTokens(), noopEmail{})
		result, err := svc.Login(context.Background(), "amine@example.com", "correct-horse")

		assert.NoError(t, err)
		assert.Equal(t, int32(4), result.User.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", mock.Anything, "amine@example.com").Return(stored, nil)

		svc := NewAuthService(users, testTokens(), noopEmail{})
		_, err := svc.Login(context.Background(), "amine@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Unknown email does not leak existence", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.NotFound("user"))

		svc := NewAuthService(users, testTokens(), noopEmail{})
		_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestRefresh(t *testing.T) {
	tokens := testTokens()
	stored := &domain.User{ID: 4, Email: "amine@example.com", Role: domain.UserRoleSeller}

	t.Run("Refresh token rotates the pair", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken(4, "amine@example.com")
		assert.NoError(t, err)

		users := new(mockUserRepo)
		users.On("GetByID", mock.Anything, int32(4)).Return(stored, nil)

		svc := NewAuthService(users, tokens, noopEmail{})
		result, err := svc.Refresh(context.Background(), refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)

		claims, err := tokens.ValidateToken(result.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.Equal(t, domain.UserRoleSeller, claims.Role)
	})

	t.Run("Access token rejected as refresh", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken(4, "amine@example.com", domain.UserRoleBuyer)
		assert.NoError(t, err)

		svc := NewAuthService(new(mockUserRepo), tokens, noopEmail{})
		_, err = svc.Refresh(context.Background(), access)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo), tokens, noopEmail{})
		_, err := svc.Refresh(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
