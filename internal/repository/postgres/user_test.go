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

func userRows(u *domain.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "first_name", "last_name", "phone", "role",
		"avatar_url", "verified", "rating", "review_count", "country", "currency",
		"created_on", "updated_on",
	}).AddRow(
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role,
		u.AvatarURL, u.Verified, u.Rating, u.ReviewCount, u.Country, u.Currency,
		u.CreatedOn, u.UpdatedOn,
	)
}

func testUser() *domain.User {
	return &domain.User{
		ID: 4, Email: "amine@example.com", PasswordHash: "x",
		FirstName: "Amine", LastName: "B", Role: domain.UserRoleBuyer,
		Currency: "MAD", CreatedOn: time.Now(), UpdatedOn: time.Now(),
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	// Two concurrent registrations can both pass the GetByEmail pre-check;
	// the unique index must come back as a conflict, not a raw error.
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	u := testUser()
	u.ID = 0
	err = repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs(int32(4)).
			WillReturnRows(userRows(testUser()))

		u, err := repo.GetByID(context.Background(), 4)
		assert.NoError(t, err)
		assert.Equal(t, "amine@example.com", u.Email)
	})

	t.Run("Missing maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateRoleAndVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("Role and verified both set", func(t *testing.T) {
		verified := true
		updated := testUser()
		updated.Role = domain.UserRoleSeller
		updated.Verified = true

		mock.ExpectQuery(`UPDATE users SET role = COALESCE`).
			WithArgs("SELLER", &verified, sqlmock.AnyArg(), int32(4)).
			WillReturnRows(userRows(updated))

		u, err := repo.UpdateRoleAndVerified(context.Background(), 4, domain.UserRoleSeller, &verified)
		assert.NoError(t, err)
		assert.Equal(t, domain.UserRoleSeller, u.Role)
		assert.True(t, u.Verified)
	})

	t.Run("Unknown user maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE users SET role = COALESCE`).
			WithArgs("SELLER", (*bool)(nil), sqlmock.AnyArg(), int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.UpdateRoleAndVerified(context.Background(), 99, domain.UserRoleSeller, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs(int32(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(context.Background(), 4))
	})

	t.Run("Missing maps to not found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs(int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(context.Background(), 99), domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
