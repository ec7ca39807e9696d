package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/favorite"
)

// FavoriteRepo persists saved places
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo creates a new FavoriteRepo
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Create inserts a favorite; labels are unique per user
func (r *FavoriteRepo) Create(ctx context.Context, f *favorite.Favorite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, label, address, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, f.ID, f.UserID, f.Label, f.Address, f.Latitude, f.Longitude, f.CreatedAt)
	if isUniqueViolation(err) {
		return favorite.ErrDuplicateLabel
	}
	return err
}

// ListByUser lists a user's saved places alphabetically by label
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*favorite.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, label, address, latitude, longitude, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY label ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*favorite.Favorite
	for rows.Next() {
		var f favorite.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.Label, &f.Address, &f.Latitude, &f.Longitude, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

// Delete removes a favorite, scoped to its owner
func (r *FavoriteRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	return mustAffect(res, favorite.ErrFavoriteNotFound)
}
