package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/socialflow/internal/repository"
	"github.com/maheshrc27/socialflow/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCreditService() CreditService {
	return NewCreditService(repository.NewCreditRepository(storage.NewMemoryKV()))
}

func TestCreditBalanceDefaults(t *testing.T) {
	s := newTestCreditService()

	balance, err := s.Balance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, repository.StartingCredits, balance)
}

func TestSpend(t *testing.T) {
	tests := []struct {
		name        string
		balance     int
		cost        int
		wantOK      bool
		wantBalance int
	}{
		{name: "exact balance", balance: 10, cost: 10, wantOK: true, wantBalance: 0},
		{name: "more than enough", balance: 50, cost: 10, wantOK: true, wantBalance: 40},
		{name: "one short", balance: 9, cost: 10, wantOK: false, wantBalance: 9},
		{name: "zero balance", balance: 0, cost: 2, wantOK: false, wantBalance: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryKV()
			repo := repository.NewCreditRepository(kv)
			s := NewCreditService(repo)

			require.NoError(t, repo.Set(ctx, "u", tt.balance))

			ok, err := s.Spend(ctx, "u", tt.cost)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)

			balance, err := s.Balance(ctx, "u")
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, balance)
			assert.GreaterOrEqual(t, balance, 0)
		})
	}
}

func TestSpendRejectsNonPositiveCost(t *testing.T) {
	s := newTestCreditService()

	_, err := s.Spend(context.Background(), "u", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = s.Spend(context.Background(), "u", -3)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTopUp(t *testing.T) {
	ctx := context.Background()
	s := newTestCreditService()

	balance, err := s.TopUp(ctx, "u", 100)
	require.NoError(t, err)
	assert.Equal(t, repository.StartingCredits+100, balance)

	_, err = s.TopUp(ctx, "u", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = s.TopUp(ctx, "u", -10)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
