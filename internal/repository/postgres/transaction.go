package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, booking_id, jewelry_id, buyer_id, seller_id, amount, commission, status, type, created_on`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(&t.ID, &t.BookingID, &t.JewelryID, &t.BuyerID, &t.SellerID, &t.Amount, &t.Commission, &t.Status, &t.Type, &t.CreatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (booking_id, jewelry_id, buyer_id, seller_id, amount, commission, status, type, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		t.BookingID, t.JewelryID, t.BuyerID, t.SellerID, t.Amount, t.Commission, t.Status, t.Type, time.Now()).
		Scan(&t.ID, &t.CreatedOn)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("transaction")
	}
	return t, err
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id int32, status domain.TransactionStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE transactions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("transaction")
	}
	return nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int32, limit, skip int32) ([]domain.Transaction, int32, error) {
	base := `SELECT ` + transactionColumns + ` FROM transactions WHERE buyer_id = $1 OR seller_id = $1`

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM ("+base+") AS sub", userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := base + " ORDER BY created_on DESC LIMIT $2 OFFSET $3"
	rows, err := r.db.QueryContext(ctx, query, userID, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *t)
	}
	return txs, count, rows.Err()
}
