package service

import (
	"mutuel/models"

	"github.com/shopspring/decimal"
)

// gradeOutcome is the terminal state a ticket resolves to
type gradeOutcome struct {
	Status models.TicketStatus
	Payout decimal.Decimal
}

// poolWindow returns the worst finishing rank a pool still pays on
func poolWindow(pool models.PoolType) int {
	switch pool {
	case models.PoolWin:
		return 1
	case models.PoolPlace:
		return 2
	case models.PoolShow:
		return 3
	default:
		return 0
	}
}

// scalePayout converts a payout quoted at the source's base unit to the
// ticket's unit amount
func scalePayout(quoted, unitAmount decimal.Decimal) decimal.Decimal {
	return quoted.Div(models.PayoutBaseUnit).Mul(unitAmount)
}

// gradeTicket resolves a pending ticket against a finalized race result.
// Scratch status comes from the entry list as published at settlement time,
// so a horse scratched after placement returns the stake.
func gradeTicket(ticket *models.BetTicket, result *models.RaceResult, entries []models.RaceEntry) gradeOutcome {
	scratched := make(map[int]bool)
	for _, entry := range entries {
		if entry.Scratched {
			scratched[entry.ProgramNumber] = true
		}
	}

	if ticket.Type.Kind() == models.KindSingle {
		return gradeSingle(ticket, result, scratched)
	}
	return gradeCombination(ticket, result, scratched)
}

// gradeSingle grades the win/place/show families. A compound ticket is one
// horse played in several pools; each leg is evaluated independently and
// the payouts are summed.
func gradeSingle(ticket *models.BetTicket, result *models.RaceResult, scratched map[int]bool) gradeOutcome {
	program := ticket.Selection.Program

	// Scratched after placement: every leg is voided, stake comes back
	if scratched[program] {
		return gradeOutcome{Status: models.TicketStatusReturned, Payout: ticket.TotalCost}
	}

	rank := result.FinishRank(program)
	key := models.CombinationKey(program)

	won := false
	total := decimal.Zero
	for _, pool := range ticket.Type.Legs() {
		if rank == 0 || rank > poolWindow(pool) {
			continue
		}
		won = true
		total = total.Add(scalePayout(result.Payout(pool, key), ticket.UnitAmount))
	}

	if !won {
		return gradeOutcome{Status: models.TicketStatusLoss, Payout: decimal.Zero}
	}
	return gradeOutcome{Status: models.TicketStatusWin, Payout: total}
}

// gradeCombination grades box, key and straight tickets. The ticket wins iff
// one of its enumerated combinations exactly matches the official order for
// the covered positions; the payout is the source's combination payout, not
// re-derived from the enumerated paths.
func gradeCombination(ticket *models.BetTicket, result *models.RaceResult, scratched map[int]bool) gradeOutcome {
	allScratched := true
	for _, program := range ticket.Selection.Programs() {
		if !scratched[program] {
			allScratched = false
			break
		}
	}
	if allScratched {
		return gradeOutcome{Status: models.TicketStatusReturned, Payout: ticket.TotalCost}
	}

	positions := ticket.Type.Positions()
	if len(result.Positions) < positions {
		return gradeOutcome{Status: models.TicketStatusLoss, Payout: decimal.Zero}
	}
	official := result.Positions[:positions]

	combinations, err := ticket.Selection.EnumerateCombinations(ticket.Type)
	if err != nil {
		// Shape was validated at placement; an unpriceable historical
		// ticket cannot win
		return gradeOutcome{Status: models.TicketStatusLoss, Payout: decimal.Zero}
	}

	for _, combination := range combinations {
		if equalInts(combination, official) {
			quoted := result.Payout(ticket.Type.CombinationPool(), models.CombinationKey(official...))
			return gradeOutcome{
				Status: models.TicketStatusWin,
				Payout: scalePayout(quoted, ticket.UnitAmount),
			}
		}
	}

	return gradeOutcome{Status: models.TicketStatusLoss, Payout: decimal.Zero}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
