package service

import (
	"context"

	"mutuel/events"
	"mutuel/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data access. Credit and
// Debit are single atomic balance transitions on the singleton wallet row.
type WalletRepository interface {
	// Get retrieves the wallet, or nil if it has not been created yet
	Get(ctx context.Context) (*models.Wallet, error)

	// Create creates the singleton wallet with the initial balance
	Create(ctx context.Context, initialBalance decimal.Decimal) (*models.Wallet, error)

	// Credit adds to the balance atomically; amount must not be negative
	Credit(ctx context.Context, amount decimal.Decimal) error

	// Debit subtracts from the balance atomically, failing with
	// ErrInsufficientFunds if the balance would go negative
	Debit(ctx context.Context, amount decimal.Decimal) error
}

// TicketRepository defines the interface for bet ticket data access
type TicketRepository interface {
	// Create persists a new ticket
	Create(ctx context.Context, ticket *models.BetTicket) error

	// GetByID retrieves a ticket, or nil if it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*models.BetTicket, error)

	// List returns tickets ordered by creation time descending, optionally
	// filtered by status; limit <= 0 means no limit
	List(ctx context.Context, status *models.TicketStatus, limit int) ([]*models.BetTicket, error)

	// ListPending returns pending tickets ordered by creation time ascending
	ListPending(ctx context.Context) ([]*models.BetTicket, error)

	// Settle transitions a pending ticket to a terminal status with its
	// payout, failing with ErrTicketNotPending if the ticket has already
	// left the pending state
	Settle(ctx context.Context, id uuid.UUID, status models.TicketStatus, payout decimal.Decimal) error

	// Delete removes a pending ticket, failing with ErrTicketNotPending if
	// the ticket exists but is no longer pending
	Delete(ctx context.Context, id uuid.UUID) error
}

// LedgerRepository defines the interface for the wallet ledger
type LedgerRepository interface {
	// Record creates a new ledger entry
	Record(ctx context.Context, entry *models.LedgerEntry) error

	// GetRecent returns the most recent ledger entries
	GetRecent(ctx context.Context, limit int) ([]*models.LedgerEntry, error)
}

// RaceCatalog is the read-only boundary to the external race/entry catalog
type RaceCatalog interface {
	// GetEntries returns the entry list for a race
	GetEntries(ctx context.Context, raceID string) ([]models.RaceEntry, error)

	// GetRaceResult returns the race result; Finalized is false while the
	// race has not been made official
	GetRaceResult(ctx context.Context, raceID string) (*models.RaceResult, error)
}

// BettingService defines the interface for placing and managing bets
type BettingService interface {
	// PlaceBet validates and prices a bet, debits the wallet, and persists
	// the ticket as a single atomic unit
	PlaceBet(ctx context.Context, raceID string, betType models.BetType, selection models.Selection, unitAmount decimal.Decimal) (*models.PlaceBetResult, error)

	// CancelBet removes a pending ticket and refunds its total cost as a
	// single atomic unit, returning the new balance
	CancelBet(ctx context.Context, ticketID uuid.UUID) (decimal.Decimal, error)

	// GetTicket retrieves a single ticket
	GetTicket(ctx context.Context, ticketID uuid.UUID) (*models.BetTicket, error)

	// ListTickets returns tickets ordered by creation time descending
	ListTickets(ctx context.Context, status *models.TicketStatus, limit int) ([]*models.BetTicket, error)
}

// WalletService defines the interface for user-initiated wallet operations
type WalletService interface {
	// Deposit adds funds to the wallet and returns the new balance
	Deposit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)

	// Withdraw removes funds, failing with ErrInsufficientFunds if the
	// balance would go negative
	Withdraw(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)

	// Balance returns the current balance, creating the wallet on first use
	Balance(ctx context.Context) (decimal.Decimal, error)

	// History returns the most recent ledger entries
	History(ctx context.Context, limit int) ([]*models.LedgerEntry, error)
}

// SettlementService defines the interface for resolving pending tickets
type SettlementService interface {
	// ResolvePending settles every pending ticket whose race has been
	// finalized. Each ticket's credit and status transition is its own
	// atomic unit, so an aborted run leaves only settled tickets terminal.
	ResolvePending(ctx context.Context) (*models.SettlementReport, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	WalletRepository() WalletRepository
	TicketRepository() TicketRepository
	LedgerRepository() LedgerRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
