package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/wallet"
)

// WalletRepo persists the append-only wallet ledger
type WalletRepo struct {
	db *sql.DB
}

// NewWalletRepo creates a new WalletRepo
func NewWalletRepo(db *sql.DB) *WalletRepo {
	return &WalletRepo{db: db}
}

// Create appends a ledger entry
func (r *WalletRepo) Create(ctx context.Context, t *wallet.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallet_transactions (id, user_id, ride_id, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.UserID, t.RideID, t.Amount, t.Type, t.Description, t.CreatedAt)
	return err
}

// ListByUser lists a user's ledger entries, newest first
func (r *WalletRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*wallet.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, ride_id, amount, type, description, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*wallet.Transaction
	for rows.Next() {
		var t wallet.Transaction
		var rideID uuid.NullUUID
		if err := rows.Scan(&t.ID, &t.UserID, &rideID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		if rideID.Valid {
			id := rideID.UUID
			t.RideID = &id
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}

// Balance derives the balance from the ledger, never from a stored column
func (r *WalletRepo) Balance(ctx context.Context, userID uuid.UUID) (float64, error) {
	var balance float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END), 0)
		FROM wallet_transactions
		WHERE user_id = $1
	`, userID).Scan(&balance)
	return balance, err
}
