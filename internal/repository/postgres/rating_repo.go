package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/uppi/backend/internal/domain/rating"
)

// RatingRepo persists ratings and keeps profile aggregates in sync
type RatingRepo struct {
	db *sql.DB
}

// NewRatingRepo creates a new RatingRepo
func NewRatingRepo(db *sql.DB) *RatingRepo {
	return &RatingRepo{db: db}
}

// Create inserts a rating and recomputes the reviewed user's aggregate in the
// same transaction, so readers never see the rating without its effect.
func (r *RatingRepo) Create(ctx context.Context, rt *rating.Rating) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ratings (id, ride_id, reviewer_id, reviewed_id, score, comment, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rt.ID, rt.RideID, rt.ReviewerID, rt.ReviewedID, rt.Score, rt.Comment, pq.Array(rt.Tags), rt.CreatedAt)
	if isUniqueViolation(err) {
		return rating.ErrAlreadyRated
	}
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE profiles
		SET rating = (
			SELECT ROUND(COALESCE(AVG(score), $2), 2)
			FROM ratings WHERE reviewed_id = $1
		), updated_at = NOW()
		WHERE id = $1
	`, rt.ReviewedID, rating.DefaultScore); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByRideAndReviewer retrieves the rating a reviewer left for a ride
func (r *RatingRepo) GetByRideAndReviewer(ctx context.Context, rideID, reviewerID uuid.UUID) (*rating.Rating, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, ride_id, reviewer_id, reviewed_id, score, COALESCE(comment, ''), tags, created_at
		FROM ratings WHERE ride_id = $1 AND reviewer_id = $2
	`, rideID, reviewerID)
	return scanRating(row)
}

// ListByReviewed lists ratings received by a user, newest first
func (r *RatingRepo) ListByReviewed(ctx context.Context, reviewedID uuid.UUID, limit int) ([]*rating.Rating, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ride_id, reviewer_id, reviewed_id, score, COALESCE(comment, ''), tags, created_at
		FROM ratings WHERE reviewed_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, reviewedID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*rating.Rating
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

func scanRating(row scanner) (*rating.Rating, error) {
	var rt rating.Rating
	err := row.Scan(&rt.ID, &rt.RideID, &rt.ReviewerID, &rt.ReviewedID, &rt.Score, &rt.Comment, pq.Array(&rt.Tags), &rt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, rating.ErrRatingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
