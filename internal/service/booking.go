package service

import (
	"context"
	"time"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository"
	"goldlink-backend/internal/utils"
)

type bookingService struct {
	bookings     repository.BookingRepository
	jewelry      repository.JewelryRepository
	transactions repository.TransactionRepository
	users        repository.UserRepository
	email        EmailSender
}

func NewBookingService(
	bookings repository.BookingRepository,
	jewelry repository.JewelryRepository,
	transactions repository.TransactionRepository,
	users repository.UserRepository,
	email EmailSender,
) BookingService {
	return &bookingService{
		bookings:     bookings,
		jewelry:      jewelry,
		transactions: transactions,
		users:        users,
		email:        email,
	}
}

// parseBookingDates accepts RFC 3339 timestamps or bare dates.
func parseBookingDates(start, end string) (time.Time, time.Time, error) {
	parse := func(s string) (time.Time, error) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", s)
	}

	startAt, err := parse(start)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validation("start date must be RFC 3339 or YYYY-MM-DD")
	}
	endAt, err := parse(end)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validation("end date must be RFC 3339 or YYYY-MM-DD")
	}
	return startAt, endAt, nil
}

func (s *bookingService) Create(ctx context.Context, actor authz.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	startAt, endAt, err := parseBookingDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	item, err := s.jewelry.GetByID(ctx, req.JewelryID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == actor.ID {
		return nil, domain.Validation("you cannot book your own listing")
	}
	if !item.HasListingType(domain.ListingTypeRent) {
		return nil, domain.Validation("this item is not listed for rent")
	}
	if !item.Available {
		return nil, domain.Conflict("jewelry is not available")
	}

	quote, err := utils.BookingPrice(item.RentPricePerDay, startAt, endAt, req.Insurance)
	if err != nil {
		return nil, err
	}

	// Claim the item first. The conditional update loses against a
	// concurrent booking, in which case we never insert anything.
	if err := s.jewelry.SetAvailability(ctx, item.ID, false, true); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		JewelryID:    item.ID,
		RenterID:     actor.ID,
		OwnerID:      item.OwnerID,
		StartDate:    startAt,
		EndDate:      endAt,
		TotalPrice:   quote.TotalPrice,
		Deposit:      quote.Deposit,
		Insurance:    req.Insurance,
		InsuranceFee: quote.InsuranceFee,
		Status:       domain.BookingStatusPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		// Release the claim so the failed insert does not strand the item.
		if relErr := s.jewelry.SetAvailability(ctx, item.ID, true, false); relErr != nil {
			logger.Error("failed to release jewelry after booking insert error",
				"jewelry_id", item.ID, "error", relErr)
		}
		return nil, err
	}

	logger.Info("booking created",
		"booking_id", booking.ID, "jewelry_id", item.ID, "renter_id", actor.ID,
		"total", booking.TotalPrice, "deposit", booking.Deposit)

	if s.email != nil {
		if owner, err := s.users.GetByID(ctx, item.OwnerID); err == nil {
			if err := s.email.SendBookingCreated(ctx, owner, booking, item.Title); err != nil {
				logger.Warn("failed to send booking notification", "booking_id", booking.ID, "error", err)
			}
		}
	}

	return booking, nil
}

func (s *bookingService) Preview(ctx context.Context, req CreateBookingRequest) (*utils.RentalQuote, error) {
	startAt, endAt, err := parseBookingDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	item, err := s.jewelry.GetByID(ctx, req.JewelryID)
	if err != nil {
		return nil, err
	}
	if !item.HasListingType(domain.ListingTypeRent) {
		return nil, domain.Validation("this item is not listed for rent")
	}

	quote, err := utils.PreviewQuote(item.RentPricePerDay, item.EstimatedValue, startAt, endAt, req.Insurance)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *bookingService) Get(ctx context.Context, actor authz.Actor, id int32) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanReadBooking(actor, booking.RenterID, booking.OwnerID) {
		return nil, domain.Unauthorized("you are not a party to this booking")
	}
	if item, err := s.jewelry.GetByID(ctx, booking.JewelryID); err == nil {
		booking.Jewelry = item
	}
	return booking, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, actor authz.Actor, id int32, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Renters may cancel their own pending bookings; every other change is
	// the owner's or an admin's call.
	renterCancel := actor.ID == booking.RenterID &&
		status == domain.BookingStatusCancelled &&
		booking.Status == domain.BookingStatusPending
	if !renterCancel && !authz.CanUpdateBookingStatus(actor, booking.OwnerID) {
		return nil, domain.Unauthorized("only the owner may update this booking")
	}

	if err := domain.ValidateTransition(booking.Status, status); err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.Status = status

	switch status {
	case domain.BookingStatusCompleted:
		s.settleCompleted(ctx, booking)
		s.releaseJewelry(ctx, booking.JewelryID)
	case domain.BookingStatusCancelled:
		s.releaseJewelry(ctx, booking.JewelryID)
	}

	logger.Info("booking status changed",
		"booking_id", id, "status", status, "actor_id", actor.ID)

	if s.email != nil {
		if renter, err := s.users.GetByID(ctx, booking.RenterID); err == nil {
			title := ""
			if item, err := s.jewelry.GetByID(ctx, booking.JewelryID); err == nil {
				title = item.Title
			}
			if err := s.email.SendBookingStatusChanged(ctx, renter, booking, title); err != nil {
				logger.Warn("failed to send status notification", "booking_id", id, "error", err)
			}
		}
	}

	return booking, nil
}

// settleCompleted records the rental payment with the platform commission.
func (s *bookingService) settleCompleted(ctx context.Context, booking *domain.Booking) {
	amount := booking.TotalPrice + booking.InsuranceFee
	tx := &domain.Transaction{
		BookingID:  &booking.ID,
		JewelryID:  &booking.JewelryID,
		BuyerID:    booking.RenterID,
		SellerID:   booking.OwnerID,
		Amount:     amount,
		Commission: amount * domain.CommissionRate,
		Status:     domain.TransactionStatusCompleted,
		Type:       domain.TransactionTypeRent,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		logger.Error("failed to record rental transaction",
			"booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) releaseJewelry(ctx context.Context, jewelryID int32) {
	if err := s.jewelry.SetAvailability(ctx, jewelryID, true, false); err != nil {
		logger.Error("failed to restore jewelry availability",
			"jewelry_id", jewelryID, "error", err)
	}
}

func (s *bookingService) ListMine(ctx context.Context, actor authz.Actor, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	return s.bookings.ListByRenter(ctx, actor.ID, status, limit, skip)
}

func (s *bookingService) ListOwned(ctx context.Context, actor authz.Actor, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	return s.bookings.ListByOwner(ctx, actor.ID, status, limit, skip)
}

func (s *bookingService) ListAll(ctx context.Context, actor authz.Actor, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	if !actor.IsAdmin() {
		return nil, 0, domain.Unauthorized("admin role required")
	}
	return s.bookings.ListAll(ctx, status, limit, skip)
}
