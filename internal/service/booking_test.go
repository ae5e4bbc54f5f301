package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
)

func testBookingService(bookings *mockBookingRepo, jewelry *mockJewelryRepo, transactions *mockTransactionRepo, users *mockUserRepo) BookingService {
	return NewBookingService(bookings, jewelry, transactions, users, noopEmail{})
}

func rentableItem() *domain.Jewelry {
	return &domain.Jewelry{
		ID:              10,
		OwnerID:         2,
		Title:           "K18 tennis bracelet",
		ListingTypes:    []domain.ListingType{domain.ListingTypeRent},
		RentPricePerDay: 1200,
		EstimatedValue:  28665,
		Available:       true,
	}
}

func TestBookingCreate(t *testing.T) {
	renter := authz.Actor{ID: 4, Role: domain.UserRoleBuyer}
	req := CreateBookingRequest{
		JewelryID: 10,
		StartDate: "2026-02-01",
		EndDate:   "2026-02-08",
		Insurance: true,
	}

	t.Run("Happy path claims the item and prices the booking", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		jewelry := new(mockJewelryRepo)
		users := new(mockUserRepo)

		jewelry.On("GetByID", mock.Anything, int32(10)).Return(rentableItem(), nil)
		jewelry.On("SetAvailability", mock.Anything, int32(10), false, true).Return(nil)
		bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		users.On("GetByID", mock.Anything, int32(2)).Return(&domain.User{ID: 2, Email: "owner@example.com", FirstName: "Nadia"}, nil)

		svc := testBookingService(bookings, jewelry, new(mockTransactionRepo), users)
		booking, err := svc.Create(context.Background(), renter, req)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.Equal(t, int32(2), booking.OwnerID)
		assert.InDelta(t, 8400.0, booking.TotalPrice, 0.01)
		assert.InDelta(t, 1680.0, booking.Deposit, 0.01)
		assert.InDelta(t, 420.0, booking.InsuranceFee, 0.01)
		jewelry.AssertExpectations(t)
		bookings.AssertExpectations(t)
	})

	t.Run("Owner cannot book own item", func(t *testing.T) {
		jewelry := new(mockJewelryRepo)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(rentableItem(), nil)

		svc := testBookingService(new(mockBookingRepo), jewelry, new(mockTransactionRepo), new(mockUserRepo))
		_, err := svc.Create(context.Background(), authz.Actor{ID: 2, Role: domain.UserRoleSeller}, req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Item not listed for rent", func(t *testing.T) {
		item := rentableItem()
		item.ListingTypes = []domain.ListingType{domain.ListingTypeSale}
		item.SalePrice = 30000

		jewelry := new(mockJewelryRepo)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(item, nil)

		svc := testBookingService(new(mockBookingRepo), jewelry, new(mockTransactionRepo), new(mockUserRepo))
		_, err := svc.Create(context.Background(), renter, req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unavailable item conflicts", func(t *testing.T) {
		item := rentableItem()
		item.Available = false

		jewelry := new(mockJewelryRepo)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(item, nil)

		svc := testBookingService(new(mockBookingRepo), jewelry, new(mockTransactionRepo), new(mockUserRepo))
		_, err := svc.Create(context.Background(), renter, req)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Losing the availability race conflicts without inserting", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		jewelry := new(mockJewelryRepo)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(rentableItem(), nil)
		jewelry.On("SetAvailability", mock.Anything, int32(10), false, true).
			Return(domain.Conflict("jewelry is not available"))

		svc := testBookingService(bookings, jewelry, new(mockTransactionRepo), new(mockUserRepo))
		_, err := svc.Create(context.Background(), renter, req)

		assert.ErrorIs(t, err, domain.ErrConflict)
		bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed insert releases the claim", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		jewelry := new(mockJewelryRepo)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(rentableItem(), nil)
		jewelry.On("SetAvailability", mock.Anything, int32(10), false, true).Return(nil)
		bookings.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
		jewelry.On("SetAvailability", mock.Anything, int32(10), true, false).Return(nil)

		svc := testBookingService(bookings, jewelry, new(mockTransactionRepo), new(mockUserRepo))
		_, err := svc.Create(context.Background(), renter, req)

		assert.Error(t, err)
		jewelry.AssertExpectations(t)
	})

	t.Run("Bad dates rejected before any storage access", func(t *testing.T) {
		svc := testBookingService(new(mockBookingRepo), new(mockJewelryRepo), new(mockTransactionRepo), new(mockUserRepo))
		_, err := svc.Create(context.Background(), renter, CreateBookingRequest{
			JewelryID: 10, StartDate: "02/01/2026", EndDate: "02/08/2026",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBookingUpdateStatus(t *testing.T) {
	owner := authz.Actor{ID: 2, Role: domain.UserRoleSeller}
	renter := authz.Actor{ID: 4, Role: domain.UserRoleBuyer}

	pending := func() *domain.Booking {
		return &domain.Booking{
			ID: 7, JewelryID: 10, RenterID: 4, OwnerID: 2,
			StartDate:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
			TotalPrice: 8400, InsuranceFee: 420,
			Status: domain.BookingStatusPending,
		}
	}

	t.Run("Owner confirms pending booking", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		jewelry := new(mockJewelryRepo)
		users := new(mockUserRepo)

		bookings.On("GetByID", mock.Anything, int32(7)).Return(pending(), nil)
		bookings.On("UpdateStatus", mock.Anything, int32(7), domain.BookingStatusConfirmed).Return(nil)
		users.On("GetByID", mock.Anything, int32(4)).Return(&domain.User{ID: 4, Email: "r@example.com"}, nil)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(rentableItem(), nil)

		svc := testBookingService(bookings, jewelry, new(mockTransactionRepo), users)
		booking, err := svc.UpdateStatus(context.Background(), owner, 7, domain.BookingStatusConfirmed)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	})

	t.Run("Renter cannot confirm", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		bookings.On("GetByID", mock.Anything, int32(7)).Return(pending(), nil)

		svc := testBookingService(bookings, new(mockJewelryRepo), new(mockTransactionRepo), new(mockUserRepo))
		_, err := svc.UpdateStatus(context.Background(), renter, 7, domain.BookingStatusConfirmed)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Renter may cancel own pending booking", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		jewelry := new(mockJewelryRepo)
		users := new(mockUserRepo)

		bookings.On("GetByID", mock.Anything, int32(7)).Return(pending(), nil)
		bookings.On("UpdateStatus", mock.Anything, int32(7), domain.BookingStatusCancelled).Return(nil)
		jewelry.On("SetAvailability", mock.Anything, int32(10), true, false).Return(nil)
		users.On("GetByID", mock.Anything, int32(4)).Return(&domain.User{ID: 4}, nil)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(rentableItem(), nil)

		svc := testBookingService(bookings, jewelry, new(mockTransactionRepo), users)
		booking, err := svc.UpdateStatus(context.Background(), renter, 7, domain.BookingStatusCancelled)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
		jewelry.AssertCalled(t, "SetAvailability", mock.Anything, int32(10), true, false)
	})

	t.Run("Forbidden transition conflicts", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		bookings.On("GetByID", mock.Anything, int32(7)).Return(pending(), nil)

		svc := testBookingService(bookings, new(mockJewelryRepo), new(mockTransactionRepo), new(mockUserRepo))
		_, err := svc.UpdateStatus(context.Background(), owner, 7, domain.BookingStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Completion records the commissioned transaction and frees the item", func(t *testing.T) {
		active := pending()
		active.Status = domain.BookingStatusActive

		bookings := new(mockBookingRepo)
		jewelry := new(mockJewelryRepo)
		transactions := new(mockTransactionRepo)
		users := new(mockUserRepo)

		bookings.On("GetByID", mock.Anything, int32(7)).Return(active, nil)
		bookings.On("UpdateStatus", mock.Anything, int32(7), domain.BookingStatusCompleted).Return(nil)
		transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TransactionTypeRent &&
				tx.BuyerID == 4 && tx.SellerID == 2 &&
				math.Abs(tx.Amount-8820) < 0.01 && // 8400 + 420
				math.Abs(tx.Commission-882) < 0.01
		})).Return(nil)
		jewelry.On("SetAvailability", mock.Anything, int32(10), true, false).Return(nil)
		users.On("GetByID", mock.Anything, int32(4)).Return(&domain.User{ID: 4}, nil)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(rentableItem(), nil)

		svc := testBookingService(bookings, jewelry, transactions, users)
		_, err := svc.UpdateStatus(context.Background(), owner, 7, domain.BookingStatusCompleted)

		assert.NoError(t, err)
		transactions.AssertExpectations(t)
		jewelry.AssertExpectations(t)
	})
}

func TestBookingPreview(t *testing.T) {
	t.Run("Preview uses the value-based deposit", func(t *testing.T) {
		jewelry := new(mockJewelryRepo)
		jewelry.On("GetByID", mock.Anything, int32(10)).Return(rentableItem(), nil)

		svc := testBookingService(new(mockBookingRepo), jewelry, new(mockTransactionRepo), new(mockUserRepo))
		quote, err := svc.Preview(context.Background(), CreateBookingRequest{
			JewelryID: 10, StartDate: "2026-02-01", EndDate: "2026-02-08", Insurance: false,
		})

		assert.NoError(t, err)
		assert.InDelta(t, 8400.0, quote.TotalPrice, 0.01)
		assert.InDelta(t, 2866.5, quote.Deposit, 0.01) // 10% of 28665
	})
}

func TestBookingListAll(t *testing.T) {
	t.Run("Admin only", func(t *testing.T) {
		svc := testBookingService(new(mockBookingRepo), new(mockJewelryRepo), new(mockTransactionRepo), new(mockUserRepo))
		_, _, err := svc.ListAll(context.Background(), authz.Actor{ID: 4, Role: domain.UserRoleBuyer}, "", 20, 0)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
