package postgres

import (
	"context"
	"database/sql"
	"time"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, reviewer_id, target_id, target_type, booking_id, rating, comment, created_on`

func scanReview(row interface{ Scan(...any) error }) (*domain.Review, error) {
	rv := &domain.Review{}
	err := row.Scan(&rv.ID, &rv.ReviewerID, &rv.TargetID, &rv.TargetType, &rv.BookingID, &rv.Rating, &rv.Comment, &rv.CreatedOn)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// Create inserts the review and recomputes the target's aggregate rating in
// the same database transaction, so a reader never sees the new review
// without the updated average.
func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO reviews (reviewer_id, target_id, target_type, booking_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		rv.ReviewerID, rv.TargetID, rv.TargetType, rv.BookingID, rv.Rating, rv.Comment, time.Now()).
		Scan(&rv.ID, &rv.CreatedOn)
	if isUniqueViolation(err) {
		// Two concurrent submissions can both pass the Exists pre-check;
		// the (reviewer, target) constraint settles the race.
		return domain.Conflict("you have already reviewed this target")
	}
	if err != nil {
		return err
	}

	switch rv.TargetType {
	case domain.ReviewTargetJewelry:
		err = updateJewelryRating(ctx, tx, rv.TargetID)
	case domain.ReviewTargetUser:
		err = updateUserRating(ctx, tx, rv.TargetID)
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

func updateJewelryRating(ctx context.Context, tx *sql.Tx, jewelryID int32) error {
	query := `UPDATE jewelry
	          SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE target_id = $1 AND target_type = 'JEWELRY'), 0),
	              review_count = (SELECT COUNT(*) FROM reviews WHERE target_id = $1 AND target_type = 'JEWELRY')
	          WHERE id = $1`
	_, err := tx.ExecContext(ctx, query, jewelryID)
	return err
}

func (r *reviewRepository) Exists(ctx context.Context, reviewerID, targetID int32, targetType domain.ReviewTargetType) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE reviewer_id = $1 AND target_id = $2 AND target_type = $3)`
	err := r.db.QueryRowContext(ctx, query, reviewerID, targetID, targetType).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) ListByTarget(ctx context.Context, targetID int32, targetType domain.ReviewTargetType, limit, skip int32) ([]domain.Review, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM reviews WHERE target_id = $1 AND target_type = $2`
	if err := r.db.QueryRowContext(ctx, countQuery, targetID, targetType).Scan(&count); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE target_id = $1 AND target_type = $2 ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, targetID, targetType, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, count, rows.Err()
}
