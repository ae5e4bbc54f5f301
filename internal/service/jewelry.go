package service

import (
	"context"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/cache"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository"
	"goldlink-backend/internal/utils"
)

type jewelryService struct {
	jewelry repository.JewelryRepository
	users   repository.UserRepository
	views   *cache.ViewCounter // nil disables view counting
}

func NewJewelryService(jewelry repository.JewelryRepository, users repository.UserRepository, views *cache.ViewCounter) JewelryService {
	return &jewelryService{jewelry: jewelry, users: users, views: views}
}

func (s *jewelryService) Create(ctx context.Context, actor authz.Actor, req CreateJewelryRequest) (*domain.Jewelry, error) {
	if !authz.CanCreateListing(actor) {
		return nil, domain.Unauthorized("seller or jeweler role required to create listings")
	}
	if req.Title == "" {
		return nil, domain.Validation("title is required")
	}
	if !domain.ValidJewelryType(req.Type) {
		return nil, domain.Validationf("unknown jewelry type %q", req.Type)
	}
	if !domain.ValidPurityGrade(req.Purity) {
		return nil, domain.Validationf("unknown purity grade %q", req.Purity)
	}
	if req.WeightGrams <= 0 {
		return nil, domain.Validation("weight must be positive")
	}

	item := &domain.Jewelry{
		OwnerID:         actor.ID,
		Title:           req.Title,
		Description:     req.Description,
		Images:          req.Images,
		Type:            req.Type,
		WeightGrams:     req.WeightGrams,
		Purity:          req.Purity,
		ListingTypes:    req.ListingTypes,
		RentPricePerDay: req.RentPricePerDay,
		SalePrice:       req.SalePrice,
		Available:       true,
		Location:        req.Location,
	}
	if err := item.ValidateListingPrices(); err != nil {
		return nil, err
	}

	// Estimated value is derived, not client-supplied.
	valuation, err := utils.EstimateValue(item.WeightGrams, item.Purity, len(item.Images) > 0)
	if err != nil {
		return nil, err
	}
	item.EstimatedValue = valuation.CommercialValue

	if err := s.jewelry.Create(ctx, item); err != nil {
		return nil, err
	}
	logger.Info("jewelry listing created", "jewelry_id", item.ID, "owner_id", actor.ID)
	return item, nil
}

func (s *jewelryService) Get(ctx context.Context, actor *authz.Actor, id int32) (*domain.Jewelry, error) {
	item, err := s.jewelry.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if owner, err := s.users.GetByID(ctx, item.OwnerID); err == nil {
		item.Owner = owner
	}

	// Owners browsing their own listings do not inflate view counts.
	if s.views != nil && (actor == nil || actor.ID != item.OwnerID) {
		if err := s.views.Increment(ctx, id); err != nil {
			logger.Warn("failed to record jewelry view", "jewelry_id", id, "error", err)
		}
	}

	return item, nil
}

func (s *jewelryService) Update(ctx context.Context, actor authz.Actor, id int32, req UpdateJewelryRequest) (*domain.Jewelry, error) {
	item, err := s.jewelry.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutateListing(actor, item.OwnerID) {
		return nil, domain.Unauthorized("only the owner may modify this listing")
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Images != nil {
		item.Images = *req.Images
	}
	if req.WeightGrams != nil {
		item.WeightGrams = *req.WeightGrams
	}
	if req.Purity != nil {
		item.Purity = *req.Purity
	}
	if req.ListingTypes != nil {
		item.ListingTypes = *req.ListingTypes
	}
	if req.RentPricePerDay != nil {
		item.RentPricePerDay = *req.RentPricePerDay
	}
	if req.SalePrice != nil {
		item.SalePrice = *req.SalePrice
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.Location != nil {
		item.Location = *req.Location
	}

	if item.Title == "" {
		return nil, domain.Validation("title cannot be empty")
	}
	if item.WeightGrams <= 0 {
		return nil, domain.Validation("weight must be positive")
	}
	if !domain.ValidPurityGrade(item.Purity) {
		return nil, domain.Validationf("unknown purity grade %q", item.Purity)
	}
	if err := item.ValidateListingPrices(); err != nil {
		return nil, err
	}

	// Weight or purity changes move the derived valuation.
	if req.WeightGrams != nil || req.Purity != nil || req.Images != nil {
		valuation, err := utils.EstimateValue(item.WeightGrams, item.Purity, len(item.Images) > 0)
		if err != nil {
			return nil, err
		}
		item.EstimatedValue = valuation.CommercialValue
	}

	if err := s.jewelry.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *jewelryService) Delete(ctx context.Context, actor authz.Actor, id int32) error {
	item, err := s.jewelry.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanMutateListing(actor, item.OwnerID) {
		return domain.Unauthorized("only the owner may delete this listing")
	}
	if err := s.jewelry.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("jewelry listing deleted", "jewelry_id", id, "actor_id", actor.ID)
	return nil
}

func (s *jewelryService) Search(ctx context.Context, filter domain.JewelryFilter) ([]domain.Jewelry, int32, error) {
	if filter.Type != "" && !domain.ValidJewelryType(filter.Type) {
		return nil, 0, domain.Validationf("unknown jewelry type %q", filter.Type)
	}
	if filter.Purity != "" && !domain.ValidPurityGrade(filter.Purity) {
		return nil, 0, domain.Validationf("unknown purity grade %q", filter.Purity)
	}
	if filter.MinPrice < 0 || filter.MaxPrice < 0 {
		return nil, 0, domain.Validation("price bounds must be non-negative")
	}
	if filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, 0, domain.Validation("min price cannot exceed max price")
	}
	return s.jewelry.Search(ctx, filter)
}
