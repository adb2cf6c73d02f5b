package service

import (
	"context"
	"fmt"

	"mutuel/events"
	"mutuel/models"

	"github.com/shopspring/decimal"
)

// RecordLedgerEntry records a ledger entry and emits the balance change
// event. This is the single entry point for all wallet balance changes.
func RecordLedgerEntry(ctx context.Context, uow UnitOfWork, entry *models.LedgerEntry) error {
	if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	// Emitted only after the surrounding transaction commits
	uow.EventBus().Publish(events.BalanceChangeEvent{
		EntryType:    entry.EntryType,
		OldBalance:   entry.BalanceBefore,
		NewBalance:   entry.BalanceAfter,
		ChangeAmount: entry.ChangeAmount,
	})

	return nil
}

// getOrCreateWallet fetches the singleton wallet inside the unit of work,
// bootstrapping it with the starting balance on first use.
func getOrCreateWallet(ctx context.Context, uow UnitOfWork, startingBalance decimal.Decimal) (*models.Wallet, error) {
	wallet, err := uow.WalletRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet != nil {
		return wallet, nil
	}

	wallet, err = uow.WalletRepository().Create(ctx, startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	entry := &models.LedgerEntry{
		EntryType:     models.EntryTypeInitial,
		BalanceBefore: decimal.Zero,
		BalanceAfter:  wallet.Balance,
		ChangeAmount:  wallet.Balance,
	}
	if err := RecordLedgerEntry(ctx, uow, entry); err != nil {
		return nil, err
	}

	return wallet, nil
}
