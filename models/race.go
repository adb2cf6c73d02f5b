package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PoolType identifies a wagering pool on the result source
type PoolType string

const (
	PoolWin      PoolType = "win"
	PoolPlace    PoolType = "place"
	PoolShow     PoolType = "show"
	PoolExacta   PoolType = "exacta"
	PoolTrifecta PoolType = "trifecta"
)

// PayoutBaseUnit is the stake the result source quotes its payouts at.
// Settlement scales quoted payouts by unitAmount relative to this base.
var PayoutBaseUnit = decimal.NewFromInt(2)

// RaceEntry is one runner on a race card as published by the catalog
type RaceEntry struct {
	ProgramNumber int    `json:"program_number"`
	HorseID       string `json:"horse_id"`
	Scratched     bool   `json:"scratched"`
}

// RaceResult is the official outcome of a race as published by the catalog.
// Payouts maps pool type to combination key to the payout quoted at the
// base unit; single-horse pools key by the program number alone.
type RaceResult struct {
	RaceID    string                               `json:"race_id"`
	Finalized bool                                 `json:"finalized"`
	Positions []int                                `json:"positions"`
	Payouts   map[PoolType]map[string]decimal.Decimal `json:"payouts"`
}

// CombinationKey renders an ordered combination as the catalog's payout key,
// e.g. CombinationKey(2, 1) == "2-1"
func CombinationKey(programs ...int) string {
	parts := make([]string, len(programs))
	for i, p := range programs {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "-")
}

// FinishRank returns the 1-based finishing position of a program number,
// or 0 if the horse did not finish in the recorded positions
func (r *RaceResult) FinishRank(program int) int {
	for i, p := range r.Positions {
		if p == program {
			return i + 1
		}
	}
	return 0
}

// Payout returns the quoted payout for a combination in a pool, or zero if
// the source published none
func (r *RaceResult) Payout(pool PoolType, key string) decimal.Decimal {
	if r.Payouts == nil {
		return decimal.Zero
	}
	return r.Payouts[pool][key]
}
