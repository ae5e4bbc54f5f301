package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/repository"

	"github.com/lib/pq"
)

type estimationRepository struct {
	db *sql.DB
}

func NewEstimationRepository(db *sql.DB) repository.EstimationRepository {
	return &estimationRepository{db: db}
}

const estimationColumns = `id, user_id, images, weight_grams, purity, gold_value, commercial_value, confidence, certified, created_on`

func scanEstimation(row interface{ Scan(...any) error }) (*domain.Estimation, error) {
	e := &domain.Estimation{}
	err := row.Scan(&e.ID, &e.UserID, pq.Array(&e.Images), &e.WeightGrams, &e.Purity, &e.GoldValue, &e.CommercialValue, &e.Confidence, &e.Certified, &e.CreatedOn)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *estimationRepository) Create(ctx context.Context, e *domain.Estimation) error {
	query := `INSERT INTO estimations (user_id, images, weight_grams, purity, gold_value, commercial_value, confidence, certified, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		e.UserID, pq.Array(e.Images), e.WeightGrams, e.Purity, e.GoldValue, e.CommercialValue, e.Confidence, e.Certified, time.Now()).
		Scan(&e.ID, &e.CreatedOn)
}

func (r *estimationRepository) GetByID(ctx context.Context, id int32) (*domain.Estimation, error) {
	query := `SELECT ` + estimationColumns + ` FROM estimations WHERE id = $1`
	e, err := scanEstimation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("estimation")
	}
	return e, err
}

func (r *estimationRepository) ListByUser(ctx context.Context, userID int32, limit, skip int32) ([]domain.Estimation, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM estimations WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `SELECT ` + estimationColumns + ` FROM estimations WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ests []domain.Estimation
	for rows.Next() {
		e, err := scanEstimation(rows)
		if err != nil {
			return nil, 0, err
		}
		ests = append(ests, *e)
	}
	return ests, count, rows.Err()
}
