package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldlink-backend/internal/domain"
)

func TestReviewCreateRecomputesAggregate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepository(db)

	t.Run("Jewelry review updates jewelry aggregate in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(int32(4), int32(10), domain.ReviewTargetJewelry, nil, int32(5), "lovely", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))
		mock.ExpectExec(`UPDATE jewelry\s+SET rating = COALESCE`).
			WithArgs(int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		review := &domain.Review{
			ReviewerID: 4, TargetID: 10, TargetType: domain.ReviewTargetJewelry,
			Rating: 5, Comment: "lovely",
		}
		assert.NoError(t, repo.Create(context.Background(), review))
		assert.Equal(t, int32(1), review.ID)
	})

	t.Run("User review updates user aggregate", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(int32(4), int32(2), domain.ReviewTargetUser, nil, int32(4), "", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(2, time.Now()))
		mock.ExpectExec(`UPDATE users\s+SET rating = COALESCE`).
			WithArgs(int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		review := &domain.Review{
			ReviewerID: 4, TargetID: 2, TargetType: domain.ReviewTargetUser, Rating: 4,
		}
		assert.NoError(t, repo.Create(context.Background(), review))
	})

	t.Run("Duplicate pair surfaces as conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(int32(4), int32(10), domain.ReviewTargetJewelry, nil, int32(5), "", sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "reviews_reviewer_id_target_id_target_type_key"})
		mock.ExpectRollback()

		review := &domain.Review{
			ReviewerID: 4, TargetID: 10, TargetType: domain.ReviewTargetJewelry, Rating: 5,
		}
		assert.ErrorIs(t, repo.Create(context.Background(), review), domain.ErrConflict)
	})

	t.Run("Aggregate failure rolls back the insert", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs(int32(4), int32(10), domain.ReviewTargetJewelry, nil, int32(3), "", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(3, time.Now()))
		mock.ExpectExec(`UPDATE jewelry\s+SET rating = COALESCE`).
			WithArgs(int32(10)).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		review := &domain.Review{
			ReviewerID: 4, TargetID: 10, TargetType: domain.ReviewTargetJewelry, Rating: 3,
		}
		assert.Error(t, repo.Create(context.Background(), review))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int32(4), int32(10), domain.ReviewTargetJewelry).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), 4, 10, domain.ReviewTargetJewelry)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
