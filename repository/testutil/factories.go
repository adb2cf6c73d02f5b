package testutil

import (
	"mutuel/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTestTicket creates a pending win ticket with default values
func CreateTestTicket(raceID string) *models.BetTicket {
	return &models.BetTicket{
		ID:         uuid.New(),
		RaceID:     raceID,
		Type:       models.BetTypeWin,
		Selection:  models.NewSingleSelection(4),
		UnitAmount: decimal.NewFromInt(10),
		TotalCost:  decimal.NewFromInt(10),
		Status:     models.TicketStatusPending,
		Payout:     decimal.Zero,
	}
}

// CreateTestTicketWithType creates a pending ticket with a specific bet type
// and selection
func CreateTestTicketWithType(raceID string, betType models.BetType, sel models.Selection, unitAmount, totalCost decimal.Decimal) *models.BetTicket {
	ticket := CreateTestTicket(raceID)
	ticket.Type = betType
	ticket.Selection = sel
	ticket.UnitAmount = unitAmount
	ticket.TotalCost = totalCost
	return ticket
}

// CreateTestLedgerEntry creates a ledger entry with default amounts
func CreateTestLedgerEntry(entryType models.EntryType) *models.LedgerEntry {
	return &models.LedgerEntry{
		EntryType:     entryType,
		BalanceBefore: decimal.NewFromInt(100),
		BalanceAfter:  decimal.NewFromInt(90),
		ChangeAmount:  decimal.NewFromInt(-10),
		Metadata: map[string]any{
			"test": true,
		},
	}
}

// CreateTestLedgerEntryWithAmounts creates a ledger entry with specific amounts
func CreateTestLedgerEntryWithAmounts(entryType models.EntryType, before, after, change decimal.Decimal) *models.LedgerEntry {
	entry := CreateTestLedgerEntry(entryType)
	entry.BalanceBefore = before
	entry.BalanceAfter = after
	entry.ChangeAmount = change
	return entry
}
