package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/maheshrc27/socialflow/internal/repository"
)

// Fixed operation costs. There is no ledger; only the running balance is kept.
const (
	GenerationCost   = 10
	RegenerationCost = 2
)

var ErrInvalidAmount = errors.New("amount must be positive")

type CreditService interface {
	Balance(ctx context.Context, userID string) (int, error)
	TopUp(ctx context.Context, userID string, amount int) (int, error)
	// Spend debits the cost when the balance covers it and reports whether
	// the debit happened. The balance never goes negative.
	Spend(ctx context.Context, userID string, cost int) (bool, error)
}

type creditService struct {
	cr repository.CreditRepository

	// Serializes the read-then-write debit so two concurrent requests for the
	// same process cannot both pass the balance check.
	mu sync.Mutex
}

func NewCreditService(cr repository.CreditRepository) CreditService {
	return &creditService{cr: cr}
}

func (s *creditService) Balance(ctx context.Context, userID string) (int, error) {
	return s.cr.Get(ctx, userID)
}

func (s *creditService) TopUp(ctx context.Context, userID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.cr.Get(ctx, userID)
	if err != nil {
		return 0, err
	}

	updated := current + amount
	if err := s.cr.Set(ctx, userID, updated); err != nil {
		return 0, err
	}
	slog.Info("credits topped up", "user_id", userID, "amount", amount, "balance", updated)
	return updated, nil
}

func (s *creditService) Spend(ctx context.Context, userID string, cost int) (bool, error) {
	if cost <= 0 {
		return false, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.cr.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if current < cost {
		return false, nil
	}

	if err := s.cr.Set(ctx, userID, current-cost); err != nil {
		return false, err
	}
	return true, nil
}
