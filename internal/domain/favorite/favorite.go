package favorite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Favorite is a saved place for quick ride requests
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Label     string    `json:"label"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository interface
type Repository interface {
	Create(ctx context.Context, f *Favorite) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Favorite, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrDuplicateLabel   = errors.New("favorite label already in use")
)
