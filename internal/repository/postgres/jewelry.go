package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/repository"

	"github.com/lib/pq"
)

type jewelryRepository struct {
	db *sql.DB
}

func NewJewelryRepository(db *sql.DB) repository.JewelryRepository {
	return &jewelryRepository{db: db}
}

const jewelryColumns = `id, owner_id, title, description, images, type, weight_grams, purity, estimated_value, listing_types, rent_price_per_day, sale_price, available, location, views, rating, review_count, created_on, updated_on`

func scanJewelry(row interface{ Scan(...any) error }) (*domain.Jewelry, error) {
	j := &domain.Jewelry{}
	var listingTypes []string
	err := row.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Description, pq.Array(&j.Images), &j.Type, &j.WeightGrams, &j.Purity, &j.EstimatedValue, pq.Array(&listingTypes), &j.RentPricePerDay, &j.SalePrice, &j.Available, &j.Location, &j.Views, &j.Rating, &j.ReviewCount, &j.CreatedOn, &j.UpdatedOn)
	if err != nil {
		return nil, err
	}
	for _, lt := range listingTypes {
		j.ListingTypes = append(j.ListingTypes, domain.ListingType(lt))
	}
	return j, nil
}

func listingTypeStrings(types []domain.ListingType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func (r *jewelryRepository) Create(ctx context.Context, j *domain.Jewelry) error {
	query := `INSERT INTO jewelry (owner_id, title, description, images, type, weight_grams, purity, estimated_value, listing_types, rent_price_per_day, sale_price, available, location, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		j.OwnerID, j.Title, j.Description, pq.Array(j.Images), j.Type, j.WeightGrams, j.Purity,
		j.EstimatedValue, pq.Array(listingTypeStrings(j.ListingTypes)), j.RentPricePerDay, j.SalePrice,
		j.Available, j.Location, now, now).
		Scan(&j.ID, &j.CreatedOn, &j.UpdatedOn)
}

func (r *jewelryRepository) GetByID(ctx context.Context, id int32) (*domain.Jewelry, error) {
	query := `SELECT ` + jewelryColumns + ` FROM jewelry WHERE id = $1`
	j, err := scanJewelry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("jewelry")
	}
	return j, err
}

func (r *jewelryRepository) Update(ctx context.Context, j *domain.Jewelry) error {
	query := `UPDATE jewelry SET title=$1, description=$2, images=$3, weight_grams=$4, purity=$5, estimated_value=$6, listing_types=$7, rent_price_per_day=$8, sale_price=$9, available=$10, location=$11, updated_on=$12 WHERE id=$13`
	res, err := r.db.ExecContext(ctx, query,
		j.Title, j.Description, pq.Array(j.Images), j.WeightGrams, j.Purity, j.EstimatedValue,
		pq.Array(listingTypeStrings(j.ListingTypes)), j.RentPricePerDay, j.SalePrice, j.Available,
		j.Location, time.Now(), j.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("jewelry")
	}
	return nil
}

func (r *jewelryRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jewelry WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("jewelry")
	}
	return nil
}

func (r *jewelryRepository) Search(ctx context.Context, f domain.JewelryFilter) ([]domain.Jewelry, int32, error) {
	query := `SELECT ` + jewelryColumns + ` FROM jewelry WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.OwnerID != 0 {
		query += fmt.Sprintf(" AND owner_id = $%d", idx)
		args = append(args, f.OwnerID)
		idx++
	}
	if f.OnlyAvailable {
		query += " AND available = TRUE"
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", idx)
		args = append(args, string(f.Type))
		idx++
	}
	if f.Purity != "" {
		query += fmt.Sprintf(" AND purity = $%d", idx)
		args = append(args, string(f.Purity))
		idx++
	}
	if f.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE '%%' || $%d || '%%'", idx)
		args = append(args, f.Location)
		idx++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND (title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", idx, idx)
		args = append(args, f.Search)
		idx++
	}
	if f.MinPrice > 0 {
		query += fmt.Sprintf(" AND (sale_price >= $%d OR rent_price_per_day >= $%d)", idx, idx)
		args = append(args, f.MinPrice)
		idx++
	}
	if f.MaxPrice > 0 {
		query += fmt.Sprintf(" AND (sale_price <= $%d OR rent_price_per_day <= $%d)", idx, idx)
		args = append(args, f.MaxPrice)
		idx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, f.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Jewelry
	for rows.Next() {
		j, err := scanJewelry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *j)
	}
	return items, count, rows.Err()
}

func (r *jewelryRepository) SetAvailability(ctx context.Context, id int32, available, requireAvailable bool) error {
	query := `UPDATE jewelry SET available = $1, updated_on = $2 WHERE id = $3`
	if requireAvailable {
		query += ` AND available = TRUE`
	}
	res, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if requireAvailable {
			return domain.Conflict("jewelry is not available")
		}
		return domain.NotFound("jewelry")
	}
	return nil
}

func (r *jewelryRepository) AddViews(ctx context.Context, id int32, delta int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE jewelry SET views = views + $1 WHERE id = $2`, delta, id)
	return err
}
