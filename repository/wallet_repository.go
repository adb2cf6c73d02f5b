package repository

import (
	"context"
	"fmt"

	"mutuel/database"
	"mutuel/models"
	"mutuel/service"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository implements the service.WalletRepository interface
type WalletRepository struct {
	q queryable
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *database.DB) *WalletRepository {
	return &WalletRepository{q: db.Pool}
}

// newWalletRepositoryWithTx creates a new wallet repository with a transaction
func newWalletRepositoryWithTx(tx queryable) *WalletRepository {
	return &WalletRepository{q: tx}
}

// Get retrieves the singleton wallet, or nil if it has not been created
func (r *WalletRepository) Get(ctx context.Context) (*models.Wallet, error) {
	query := `
		SELECT id, balance, created_at, updated_at
		FROM wallets
		WHERE id = $1
	`

	var wallet models.Wallet
	err := r.q.QueryRow(ctx, query, models.WalletID).Scan(
		&wallet.ID,
		&wallet.Balance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return &wallet, nil
}

// Create creates the singleton wallet with the initial balance
func (r *WalletRepository) Create(ctx context.Context, initialBalance decimal.Decimal) (*models.Wallet, error) {
	query := `
		INSERT INTO wallets (id, balance)
		VALUES ($1, $2)
		RETURNING id, balance, created_at, updated_at
	`

	var wallet models.Wallet
	err := r.q.QueryRow(ctx, query, models.WalletID, initialBalance).Scan(
		&wallet.ID,
		&wallet.Balance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return &wallet, nil
}

// Credit adds to the balance atomically
func (r *WalletRepository) Credit(ctx context.Context, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("credit amount must not be negative")
	}

	query := `
		UPDATE wallets
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, models.WalletID)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found")
	}

	return nil
}

// Debit subtracts from the balance atomically. The conditional update
// serializes concurrent debits so the balance never goes negative.
func (r *WalletRepository) Debit(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("debit amount must be positive")
	}

	query := `
		UPDATE wallets
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, models.WalletID)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}

	if result.RowsAffected() == 0 {
		wallet, err := r.Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to check wallet: %w", err)
		}
		if wallet == nil {
			return fmt.Errorf("wallet not found")
		}
		return fmt.Errorf("%w: have %s, need %s", service.ErrInsufficientFunds, wallet.Balance, amount)
	}

	return nil
}
