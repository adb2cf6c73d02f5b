package repository

import (
	"context"
	"testing"

	"mutuel/repository/testutil"
	"mutuel/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository_GetAndCreate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	t.Run("wallet not created yet", func(t *testing.T) {
		wallet, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})

	t.Run("create and get", func(t *testing.T) {
		created, err := repo.Create(ctx, decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, created.Balance.Equal(decimal.NewFromInt(100)))
		assert.False(t, created.CreatedAt.IsZero())

		wallet, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.Equal(t, created.ID, wallet.ID)
		assert.True(t, wallet.Balance.Equal(created.Balance))
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		_, err := repo.Create(ctx, decimal.NewFromInt(50))
		assert.Error(t, err)
	})
}

func TestWalletRepository_CreditAndDebit(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, decimal.NewFromInt(100))
	require.NoError(t, err)

	t.Run("credit increases balance", func(t *testing.T) {
		err := repo.Credit(ctx, decimal.NewFromInt(25))
		require.NoError(t, err)

		wallet, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(125)))
	})

	t.Run("debit decreases balance", func(t *testing.T) {
		err := repo.Debit(ctx, decimal.NewFromInt(25))
		require.NoError(t, err)

		wallet, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("fractional amounts survive the round trip", func(t *testing.T) {
		err := repo.Credit(ctx, decimal.RequireFromString("3.20"))
		require.NoError(t, err)

		wallet, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("103.20")))

		err = repo.Debit(ctx, decimal.RequireFromString("3.20"))
		require.NoError(t, err)
	})

	t.Run("debit beyond balance fails", func(t *testing.T) {
		err := repo.Debit(ctx, decimal.NewFromInt(1000))
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)

		// Balance is untouched by the failed debit
		wallet, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("debit of exactly the balance drains the wallet", func(t *testing.T) {
		err := repo.Debit(ctx, decimal.NewFromInt(100))
		require.NoError(t, err)

		wallet, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.IsZero())

		err = repo.Debit(ctx, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)
	})

	t.Run("rejects invalid amounts", func(t *testing.T) {
		assert.Error(t, repo.Debit(ctx, decimal.Zero))
		assert.Error(t, repo.Debit(ctx, decimal.NewFromInt(-5)))
		assert.Error(t, repo.Credit(ctx, decimal.NewFromInt(-5)))
	})
}

func TestWalletRepository_ConcurrentDebits(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, decimal.NewFromInt(100))
	require.NoError(t, err)

	// 20 debits of 10 against a balance of 100: exactly 10 may succeed
	const attempts = 20
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			results <- repo.Debit(ctx, decimal.NewFromInt(10))
		}()
	}

	succeeded := 0
	for i := 0; i < attempts; i++ {
		if err := <-results; err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, service.ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 10, succeeded)

	wallet, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
}
