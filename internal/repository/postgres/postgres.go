package postgres

import (
	"database/sql"
	"errors"

	"goldlink-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.JewelryRepository
	repository.BookingRepository
	repository.TransactionRepository
	repository.EstimationRepository
	repository.ReviewRepository
	repository.MessageRepository
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation. Application-level pre-checks race with concurrent writers, so
// the constraint itself is the final arbiter and must surface as a conflict
// rather than an internal error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		JewelryRepository:     NewJewelryRepository(db),
		BookingRepository:     NewBookingRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		EstimationRepository:  NewEstimationRepository(db),
		ReviewRepository:      NewReviewRepository(db),
		MessageRepository:     NewMessageRepository(db),
	}
}
