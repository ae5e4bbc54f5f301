package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, avatar_url, verified, rating, review_count, country, currency, created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.AvatarURL, &u.Verified, &u.Rating, &u.ReviewCount, &u.Country, &u.Currency, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, phone, role, avatar_url, verified, country, currency, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_on, updated_on`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.AvatarURL, u.Verified, u.Country, u.Currency, now, now).
		Scan(&u.ID, &u.CreatedOn, &u.UpdatedOn)
	if isUniqueViolation(err) {
		return domain.Conflict("email is already registered")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user")
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user")
	}
	return u, err
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET first_name=$1, last_name=$2, phone=$3, avatar_url=$4, country=$5, currency=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, u.FirstName, u.LastName, u.Phone, u.AvatarURL, u.Country, u.Currency, time.Now(), u.ID)
	return err
}

func (r *userRepository) UpdateRoleAndVerified(ctx context.Context, id int32, role domain.UserRole, verified *bool) (*domain.User, error) {
	query := `UPDATE users SET role = COALESCE(NULLIF($1, ''), role), verified = COALESCE($2, verified), updated_on = $3 WHERE id = $4 RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, string(role), verified, time.Now(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user")
	}
	return u, err
}

func (r *userRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("user")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateRating rewrites a user's aggregate review fields. Called from the
// review repository inside its transaction.
func updateUserRating(ctx context.Context, tx *sql.Tx, userID int32) error {
	query := `UPDATE users
	          SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE target_id = $1 AND target_type = 'USER'), 0),
	              review_count = (SELECT COUNT(*) FROM reviews WHERE target_id = $1 AND target_type = 'USER')
	          WHERE id = $1`
	_, err := tx.ExecContext(ctx, query, userID)
	return err
}
