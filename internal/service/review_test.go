package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
)

func TestReviewCreate(t *testing.T) {
	reviewer := authz.Actor{ID: 4, Role: domain.UserRoleBuyer}

	t.Run("Jewelry review created once", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		jewelry := new(mockJewelryRepo)

		jewelry.On("GetByID", mock.Anything, int32(10)).Return(&domain.Jewelry{ID: 10}, nil)
		reviews.On("Exists", mock.Anything, int32(4), int32(10), domain.ReviewTargetJewelry).Return(false, nil)
		reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

		svc := NewReviewService(reviews, jewelry, new(mockUserRepo))
		review, err := svc.Create(context.Background(), reviewer, CreateReviewRequest{
			TargetID: 10, TargetType: domain.ReviewTargetJewelry, Rating: 5, Comment: "gorgeous piece",
		})

		assert.NoError(t, err)
		assert.Equal(t, int32(4), review.ReviewerID)
		reviews.AssertExpectations(t)
	})

	t.Run("Duplicate review conflicts", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		jewelry := new(mockJewelryRepo)

		jewelry.On("GetByID", mock.Anything, int32(10)).Return(&domain.Jewelry{ID: 10}, nil)
		reviews.On("Exists", mock.Anything, int32(4), int32(10), domain.ReviewTargetJewelry).Return(true, nil)

		svc := NewReviewService(reviews, jewelry, new(mockUserRepo))
		_, err := svc.Create(context.Background(), reviewer, CreateReviewRequest{
			TargetID: 10, TargetType: domain.ReviewTargetJewelry, Rating: 4,
		})

		assert.ErrorIs(t, err, domain.ErrConflict)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Rating bounds enforced", func(t *testing.T) {
		svc := NewReviewService(new(mockReviewRepo), new(mockJewelryRepo), new(mockUserRepo))

		for _, rating := range []int32{0, 6, -1} {
			_, err := svc.Create(context.Background(), reviewer, CreateReviewRequest{
				TargetID: 10, TargetType: domain.ReviewTargetJewelry, Rating: rating,
			})
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})

	t.Run("Comment length capped at 1000 characters", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		jewelry := new(mockJewelryRepo)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(&domain.Jewelry{ID: 10}, nil)
		reviews.On("Exists", mock.Anything, int32(4), int32(10), domain.ReviewTargetJewelry).Return(false, nil)
		reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

		svc := NewReviewService(reviews, jewelry, new(mockUserRepo))

		_, err := svc.Create(context.Background(), reviewer, CreateReviewRequest{
			TargetID: 10, TargetType: domain.ReviewTargetJewelry, Rating: 4,
			Comment: strings.Repeat("a", 1001),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

		_, err = svc.Create(context.Background(), reviewer, CreateReviewRequest{
			TargetID: 10, TargetType: domain.ReviewTargetJewelry, Rating: 4,
			Comment: strings.Repeat("a", 1000),
		})
		assert.NoError(t, err)
	})

	t.Run("Self review rejected", func(t *testing.T) {
		svc := NewReviewService(new(mockReviewRepo), new(mockJewelryRepo), new(mockUserRepo))
		_, err := svc.Create(context.Background(), reviewer, CreateReviewRequest{
			TargetID: reviewer.ID, TargetType: domain.ReviewTargetUser, Rating: 5,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Missing jewelry target not found", func(t *testing.T) {
		jewelry := new(mockJewelryRepo)
		jewelry.On("GetByID", mock.Anything, int32(99)).Return(nil, domain.NotFound("jewelry"))

		svc := NewReviewService(new(mockReviewRepo), jewelry, new(mockUserRepo))
		_, err := svc.Create(context.Background(), reviewer, CreateReviewRequest{
			TargetID: 99, TargetType: domain.ReviewTargetJewelry, Rating: 3,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Unknown target type rejected", func(t *testing.T) {
		svc := NewReviewService(new(mockReviewRepo), new(mockJewelryRepo), new(mockUserRepo))
		_, err := svc.Create(context.Background(), reviewer, CreateReviewRequest{
			TargetID: 10, TargetType: "SHOP", Rating: 3,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
