package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, jewelry_id, renter_id, owner_id, start_date, end_date, total_price, deposit, insurance, insurance_fee, status, created_on, updated_on`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.JewelryID, &b.RenterID, &b.OwnerID, &b.StartDate, &b.EndDate, &b.TotalPrice, &b.Deposit, &b.Insurance, &b.InsuranceFee, &b.Status, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (jewelry_id, renter_id, owner_id, start_date, end_date, total_price, deposit, insurance, insurance_fee, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.JewelryID, b.RenterID, b.OwnerID, b.StartDate, b.EndDate, b.TotalPrice, b.Deposit,
		b.Insurance, b.InsuranceFee, b.Status, now, now).
		Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("booking")
	}
	return b, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("booking")
	}
	return nil
}

func (r *bookingRepository) list(ctx context.Context, where string, whereArgs []interface{}, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ` + where
	args := whereArgs
	idx := len(args) + 1
	if status != "" {
		if where == "" {
			query += fmt.Sprintf("WHERE status = $%d", idx)
		} else {
			query += fmt.Sprintf(" AND status = $%d", idx)
		}
		args = append(args, status)
		idx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "WHERE renter_id = $1", []interface{}{renterID}, status, limit, skip)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "WHERE owner_id = $1", []interface{}{ownerID}, status, limit, skip)
}

func (r *bookingRepository) ListAll(ctx context.Context, status string, limit, skip int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "", nil, status, limit, skip)
}
