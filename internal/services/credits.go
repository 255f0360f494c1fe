package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

// ErrInvalidAmount is returned for a zero credit grant or a missing user.
var ErrInvalidAmount = errors.New("invalid credit amount")

// CreditService exposes balances and administrative credit grants.
type CreditService struct {
	ledger storage.CreditLedger
	events eventPublisher
}

// NewCreditService creates a new CreditService. kafkaWriter may be nil.
func NewCreditService(ledger storage.CreditLedger, kafkaWriter KafkaWriter) *CreditService {
	return &CreditService{ledger: ledger, events: newEventPublisher(kafkaWriter)}
}

// Balance returns the displayed balance; a user without entries has 0.
func (s *CreditService) Balance(ctx context.Context, userID string) (int64, error) {
	balance, found, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get balance", "user_id", userID, "error", err)
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return balance, nil
}

// Grant applies a signed adjustment. An empty source defaults to "admin".
func (s *CreditService) Grant(ctx context.Context, userID string, amount int64, source string) (int64, error) {
	if userID == "" || amount == 0 {
		return 0, ErrInvalidAmount
	}
	if source == "" {
		source = models.SourceAdmin
	}

	balance, err := s.ledger.ApplyTransaction(ctx, userID, amount, source)
	if err != nil {
		logger.Log.Errorw("failed to apply credit transaction", "user_id", userID, "amount", amount, "source", source, "error", err)
		return 0, err
	}

	s.events.publish(ctx, creditAppliedEvent(userID, amount, balance, source))
	return balance, nil
}

// Transactions lists the user's ledger newest first.
func (s *CreditService) Transactions(ctx context.Context, userID string) ([]models.CreditTransaction, error) {
	txs, err := s.ledger.ListTransactions(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list credit transactions", "user_id", userID, "error", err)
		return nil, err
	}
	return txs, nil
}
