package wallet

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// TransactionType signs a ledger entry: credit increases the balance, debit
// decreases it. Amounts themselves are always positive.
type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// Transaction is one signed ledger entry
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	RideID      *uuid.UUID      `json:"ride_id,omitempty"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Repository interface
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Transaction, error)
	// Balance derives the balance by summing the user's ledger; it is never
	// stored.
	Balance(ctx context.Context, userID uuid.UUID) (float64, error)
}

// Errors
var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidType   = errors.New("invalid transaction type")
)

// IsValid validates the transaction type
func (t TransactionType) IsValid() bool {
	return t == TypeCredit || t == TypeDebit
}

// Signed returns the transaction's contribution to the balance.
func (t *Transaction) Signed() float64 {
	if t.Type == TypeDebit {
		return -t.Amount
	}
	return t.Amount
}

// Replay computes a balance from a full transaction history, rounded to two
// decimals to keep it stable across insert orders.
func Replay(txs []*Transaction) float64 {
	sum := 0.0
	for _, t := range txs {
		sum += t.Signed()
	}
	return math.Round(sum*100) / 100
}
