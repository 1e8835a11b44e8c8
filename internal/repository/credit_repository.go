package repository

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/maheshrc27/socialflow/internal/storage"
)

// StartingCredits is the balance every account begins with.
const StartingCredits = 50

type CreditRepository interface {
	Get(ctx context.Context, userID string) (int, error)
	Set(ctx context.Context, userID string, amount int) error
}

type creditRepository struct {
	kv storage.KV
}

func NewCreditRepository(kv storage.KV) CreditRepository {
	return &creditRepository{kv: kv}
}

func (r *creditRepository) Get(ctx context.Context, userID string) (int, error) {
	val, ok, err := r.kv.Get(ctx, creditsKey(userID))
	if err != nil {
		return 0, err
	}
	if !ok {
		return StartingCredits, nil
	}
	amount, err := strconv.Atoi(val)
	if err != nil {
		slog.Info(err.Error())
		return StartingCredits, nil
	}
	return amount, nil
}

func (r *creditRepository) Set(ctx context.Context, userID string, amount int) error {
	return r.kv.Set(ctx, creditsKey(userID), strconv.Itoa(amount))
}
