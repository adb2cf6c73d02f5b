package models

import "github.com/shopspring/decimal"

// PlaceBetResult is returned to the caller after a successful placement
type PlaceBetResult struct {
	Ticket     *BetTicket
	NewBalance decimal.Decimal
}

// TicketPayout pairs a settled ticket with the amount credited for it
type TicketPayout struct {
	Ticket *BetTicket
	Payout decimal.Decimal
}

// SettlementReport summarizes one settlement run. Skipped counts tickets
// whose race was not yet finalized; Warnings counts tickets left pending
// because the catalog could not be reached.
type SettlementReport struct {
	Resolved      int
	Skipped       int
	Warnings      int
	NewlyWon      []TicketPayout
	TotalNewlyWon decimal.Decimal
}
