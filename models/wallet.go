package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletID is the identifier of the singleton wallet row. One wallet per
// installation is assumed.
const WalletID = 1

// Wallet holds the durable balance. Every mutation goes through a signed
// ledger entry inside the same transaction.
type Wallet struct {
	ID        int64           `db:"id"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// EntryType represents the kind of balance change recorded in the ledger
type EntryType string

const (
	EntryTypeInitial      EntryType = "initial"
	EntryTypeDeposit      EntryType = "deposit"
	EntryTypeWithdrawal   EntryType = "withdrawal"
	EntryTypeBetDebit     EntryType = "bet_debit"
	EntryTypePayoutCredit EntryType = "payout_credit"
	EntryTypeRefund       EntryType = "refund"
)

// LedgerEntry is one signed balance transition. ChangeAmount is negative for
// debits and withdrawals, positive otherwise; BalanceAfter always equals
// BalanceBefore plus ChangeAmount.
type LedgerEntry struct {
	ID            int64           `db:"id"`
	EntryType     EntryType       `db:"entry_type"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	ChangeAmount  decimal.Decimal `db:"change_amount"`
	TicketID      *uuid.UUID      `db:"ticket_id"`
	Metadata      map[string]any  `db:"metadata"`
	CreatedAt     time.Time       `db:"created_at"`
}
