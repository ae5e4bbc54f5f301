package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository"
)

const maxReviewCommentChars = 1000

type reviewService struct {
	reviews repository.ReviewRepository
	jewelry repository.JewelryRepository
	users   repository.UserRepository
}

func NewReviewService(reviews repository.ReviewRepository, jewelry repository.JewelryRepository, users repository.UserRepository) ReviewService {
	return &reviewService{reviews: reviews, jewelry: jewelry, users: users}
}

func (s *reviewService) Create(ctx context.Context, actor authz.Actor, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.Validation("rating must be between 1 and 5")
	}
	if utf8.RuneCountInString(req.Comment) > maxReviewCommentChars {
		return nil, domain.Validationf("comment must be at most %d characters", maxReviewCommentChars)
	}
	if !domain.ValidReviewTargetType(req.TargetType) {
		return nil, domain.Validationf("unknown review target type %q", req.TargetType)
	}

	switch req.TargetType {
	case domain.ReviewTargetJewelry:
		if _, err := s.jewelry.GetByID(ctx, req.TargetID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NotFound("jewelry")
			}
			return nil, err
		}
	case domain.ReviewTargetUser:
		if req.TargetID == actor.ID {
			return nil, domain.Validation("you cannot review yourself")
		}
		if _, err := s.users.GetByID(ctx, req.TargetID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NotFound("user")
			}
			return nil, err
		}
	}

	exists, err := s.reviews.Exists(ctx, actor.ID, req.TargetID, req.TargetType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("you have already reviewed this target")
	}

	review := &domain.Review{
		ReviewerID: actor.ID,
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
		BookingID:  req.BookingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	logger.Info("review created",
		"review_id", review.ID, "reviewer_id", actor.ID,
		"target_type", req.TargetType, "target_id", req.TargetID, "rating", req.Rating)
	return review, nil
}

func (s *reviewService) ListByTarget(ctx context.Context, targetID int32, targetType domain.ReviewTargetType, limit, skip int32) ([]domain.Review, int32, error) {
	if !domain.ValidReviewTargetType(targetType) {
		return nil, 0, domain.Validationf("unknown review target type %q", targetType)
	}
	return s.reviews.ListByTarget(ctx, targetID, targetType, limit, skip)
}
