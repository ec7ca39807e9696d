package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/uppi/backend/internal/domain/notification"
	"github.com/uppi/backend/internal/domain/wallet"
	"github.com/uppi/backend/pkg/logger"
)

// Notifier delivers fire-and-forget wallet notifications
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, typ notification.Type, rideID *uuid.UUID)
}

// Service handles wallet balance, history and manual ledger entries. Ride
// settlement never goes through here; it is written transactionally with the
// ride completion.
type Service struct {
	wallets        wallet.Repository
	redis          *redis.Client
	notifier       Notifier
	logger         *logger.Logger
	idempotencyTTL time.Duration
}

var ErrIdempotencyKeyMissing = errors.New("idempotency key required")

const defaultIdempotencyTTL = 24 * time.Hour

// NewService creates a new payments service
func NewService(wallets wallet.Repository, redisClient *redis.Client, notifier Notifier, log *logger.Logger, idempotencyTTL time.Duration) *Service {
	if idempotencyTTL <= 0 {
		idempotencyTTL = defaultIdempotencyTTL
	}
	return &Service{wallets: wallets, redis: redisClient, notifier: notifier, logger: log, idempotencyTTL: idempotencyTTL}
}

// Balance returns the user's derived wallet balance
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (float64, error) {
	return s.wallets.Balance(ctx, userID)
}

// History lists the user's ledger entries, newest first
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]*wallet.Transaction, error) {
	return s.wallets.ListByUser(ctx, userID, limit)
}

// Deposit credits the user's wallet. The idempotency key deduplicates
// client retries; replays return the original transaction.
func (s *Service) Deposit(ctx context.Context, userID uuid.UUID, amount float64, description, idempotencyKey string) (*wallet.Transaction, error) {
	return s.record(ctx, userID, amount, wallet.TypeCredit, description, idempotencyKey)
}

// Withdraw debits the user's wallet
func (s *Service) Withdraw(ctx context.Context, userID uuid.UUID, amount float64, description, idempotencyKey string) (*wallet.Transaction, error) {
	balance, err := s.wallets.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, fmt.Errorf("%w: balance %.2f, requested %.2f", ErrInsufficientFunds, balance, amount)
	}
	return s.record(ctx, userID, amount, wallet.TypeDebit, description, idempotencyKey)
}

var ErrInsufficientFunds = errors.New("insufficient wallet balance")

func (s *Service) record(ctx context.Context, userID uuid.UUID, amount float64, typ wallet.TransactionType, description, idempotencyKey string) (*wallet.Transaction, error) {
	if amount <= 0 {
		return nil, wallet.ErrInvalidAmount
	}
	if idempotencyKey == "" {
		return nil, ErrIdempotencyKeyMissing
	}

	cacheKey := fmt.Sprintf("wallet:idempotency:%s:%s", userID, idempotencyKey)
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var t wallet.Transaction
		if err := json.Unmarshal([]byte(cached), &t); err == nil {
			s.logger.Info("Returning cached wallet transaction",
				logger.String("idempotency_key", idempotencyKey),
			)
			return &t, nil
		}
	}

	t := &wallet.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Type:        typ,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := s.wallets.Create(ctx, t); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(t); err == nil {
		s.redis.Set(ctx, cacheKey, data, s.idempotencyTTL)
	}

	verb := "credited to"
	if typ == wallet.TypeDebit {
		verb = "debited from"
	}
	s.notifier.Notify(ctx, userID, "Wallet updated",
		fmt.Sprintf("R$ %.2f %s your wallet", amount, verb),
		notification.TypeWallet, nil)

	s.logger.Info("Wallet transaction recorded",
		logger.String("user_id", userID.String()),
		logger.String("type", string(typ)),
		logger.Float64("amount", amount),
	)
	return t, nil
}
