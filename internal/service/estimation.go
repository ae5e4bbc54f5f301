package service

import (
	"context"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository"
	"goldlink-backend/internal/utils"
)

type estimationService struct {
	estimations repository.EstimationRepository
}

func NewEstimationService(estimations repository.EstimationRepository) EstimationService {
	return &estimationService{estimations: estimations}
}

func (s *estimationService) Estimate(ctx context.Context, userID int32, req EstimateRequest) (*domain.Estimation, error) {
	valuation, err := utils.EstimateValue(req.WeightGrams, req.Purity, len(req.Images) > 0)
	if err != nil {
		return nil, err
	}

	est := &domain.Estimation{
		UserID:          userID,
		Images:          req.Images,
		WeightGrams:     req.WeightGrams,
		Purity:          req.Purity,
		GoldValue:       valuation.GoldValue,
		CommercialValue: valuation.CommercialValue,
		Confidence:      valuation.Confidence,
		Certified:       false,
	}
	if err := s.estimations.Create(ctx, est); err != nil {
		return nil, err
	}

	logger.Info("estimation created",
		"estimation_id", est.ID, "user_id", userID,
		"purity", req.Purity, "commercial_value", est.CommercialValue)
	return est, nil
}

func (s *estimationService) Get(ctx context.Context, actor authz.Actor, id int32) (*domain.Estimation, error) {
	est, err := s.estimations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if est.UserID != actor.ID && !actor.IsAdmin() {
		return nil, domain.Unauthorized("this estimation belongs to another user")
	}
	return est, nil
}

func (s *estimationService) ListMine(ctx context.Context, userID int32, limit, skip int32) ([]domain.Estimation, int32, error) {
	return s.estimations.ListByUser(ctx, userID, limit, skip)
}
