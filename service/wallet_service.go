package service

import (
	"context"
	"fmt"

	"mutuel/config"
	"mutuel/models"

	"github.com/shopspring/decimal"
)

type walletService struct {
	uowFactory UnitOfWorkFactory
}

// NewWalletService creates a new wallet service
func NewWalletService(uowFactory UnitOfWorkFactory) WalletService {
	return &walletService{
		uowFactory: uowFactory,
	}
}

func (s *walletService) Deposit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("deposit amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	wallet, err := getOrCreateWallet(ctx, uow, config.Get().StartingBalance)
	if err != nil {
		return decimal.Zero, err
	}

	if err := uow.WalletRepository().Credit(ctx, amount); err != nil {
		return decimal.Zero, fmt.Errorf("failed to credit deposit: %w", err)
	}
	newBalance := wallet.Balance.Add(amount)

	entry := &models.LedgerEntry{
		EntryType:     models.EntryTypeDeposit,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  newBalance,
		ChangeAmount:  amount,
	}
	if err := RecordLedgerEntry(ctx, uow, entry); err != nil {
		return decimal.Zero, err
	}

	if err := uow.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

func (s *walletService) Withdraw(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("withdrawal amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	wallet, err := getOrCreateWallet(ctx, uow, config.Get().StartingBalance)
	if err != nil {
		return decimal.Zero, err
	}

	if err := uow.WalletRepository().Debit(ctx, amount); err != nil {
		return decimal.Zero, err
	}
	newBalance := wallet.Balance.Sub(amount)

	entry := &models.LedgerEntry{
		EntryType:     models.EntryTypeWithdrawal,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  newBalance,
		ChangeAmount:  amount.Neg(),
	}
	if err := RecordLedgerEntry(ctx, uow, entry); err != nil {
		return decimal.Zero, err
	}

	if err := uow.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

func (s *walletService) Balance(ctx context.Context) (decimal.Decimal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := getOrCreateWallet(ctx, uow, config.Get().StartingBalance)
	if err != nil {
		return decimal.Zero, err
	}

	// Commit so a first-use wallet bootstrap is durable
	if err := uow.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wallet.Balance, nil
}

func (s *walletService) History(ctx context.Context, limit int) ([]*models.LedgerEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.LedgerRepository().GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger history: %w", err)
	}
	return entries, nil
}
