package models

import "github.com/shopspring/decimal"

// Price computes the total cost of a ticket: the unit amount multiplied by
// the number of combinations the selection covers for the bet type. It is
// pure and never consults external state; the result is frozen onto the
// ticket at placement time and never recomputed.
func Price(t BetType, s Selection, unitAmount decimal.Decimal) (decimal.Decimal, error) {
	combinations, err := s.Combinations(t)
	if err != nil {
		return decimal.Zero, err
	}
	return unitAmount.Mul(decimal.NewFromInt(int64(combinations))), nil
}
