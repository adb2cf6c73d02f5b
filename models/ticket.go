package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketStatus represents the lifecycle state of a bet ticket
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusWin       TicketStatus = "win"
	TicketStatusLoss      TicketStatus = "loss"
	TicketStatusReturned  TicketStatus = "returned"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// Valid reports whether the status is a known ticket status
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusWin, TicketStatusLoss, TicketStatusReturned, TicketStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status is immutable
func (s TicketStatus) Terminal() bool {
	return s != TicketStatusPending && s.Valid()
}

// BetTicket is a placed wager against a race. TotalCost is the calculator's
// price at creation time and is never recomputed after placement.
type BetTicket struct {
	ID         uuid.UUID       `db:"id"`
	RaceID     string          `db:"race_id"`
	Type       BetType         `db:"bet_type"`
	Selection  Selection       `db:"selection"`
	UnitAmount decimal.Decimal `db:"unit_amount"`
	TotalCost  decimal.Decimal `db:"total_cost"`
	Status     TicketStatus    `db:"status"`
	Payout     decimal.Decimal `db:"payout"`
	SettledAt  *time.Time      `db:"settled_at"`
	CreatedAt  time.Time       `db:"created_at"`
}

// CanCancel reports whether the ticket may still be cancelled with a refund
func (t *BetTicket) CanCancel() bool {
	return t.Status == TicketStatusPending
}

// CanSettle reports whether settlement may transition the ticket
func (t *BetTicket) CanSettle() bool {
	return t.Status == TicketStatusPending
}
