package service

import (
	"testing"

	"mutuel/models"

	"github.com/stretchr/testify/assert"
)

func raceEntries(programs ...int) []models.RaceEntry {
	entries := make([]models.RaceEntry, len(programs))
	for i, p := range programs {
		entries[i] = models.RaceEntry{ProgramNumber: p, HorseID: "horse"}
	}
	return entries
}

func withScratch(entries []models.RaceEntry, program int) []models.RaceEntry {
	out := append([]models.RaceEntry(nil), entries...)
	for i := range out {
		if out[i].ProgramNumber == program {
			out[i].Scratched = true
		}
	}
	return out
}

func TestValidateSelection_Valid(t *testing.T) {
	entries := raceEntries(1, 2, 3, 4, 5)

	tests := []struct {
		name      string
		betType   models.BetType
		selection models.Selection
	}{
		{"win single", models.BetTypeWin, models.NewSingleSelection(4)},
		{"win place show single", models.BetTypeWinPlaceShow, models.NewSingleSelection(1)},
		{"exacta box minimum", models.BetTypeExactaBox, models.NewBoxSelection(1, 2)},
		{"trifecta box", models.BetTypeTrifectaBox, models.NewBoxSelection(1, 2, 3, 4)},
		{"exacta key with overlap", models.BetTypeExactaKey, models.NewSlotSelection([]int{1, 2}, []int{2, 3})},
		{"trifecta straight", models.BetTypeTrifectaStraight, models.NewSlotSelection([]int{5}, []int{2}, []int{1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateSelection(tt.betType, tt.selection, entries))
		})
	}
}

func TestValidateSelection_UnknownHorse(t *testing.T) {
	entries := raceEntries(1, 2, 3)

	err := ValidateSelection(models.BetTypeWin, models.NewSingleSelection(9), entries)
	assert.ErrorIs(t, err, ErrUnknownHorse)

	err = ValidateSelection(models.BetTypeExactaBox, models.NewBoxSelection(1, 9), entries)
	assert.ErrorIs(t, err, ErrUnknownHorse)
}

func TestValidateSelection_ScratchedHorse(t *testing.T) {
	entries := withScratch(raceEntries(1, 2, 3), 2)

	err := ValidateSelection(models.BetTypeWin, models.NewSingleSelection(2), entries)
	assert.ErrorIs(t, err, ErrScratchedHorse)

	err = ValidateSelection(models.BetTypeExactaKey, models.NewSlotSelection([]int{1}, []int{2}), entries)
	assert.ErrorIs(t, err, ErrScratchedHorse)
}

func TestValidateSelection_InsufficientBoxSize(t *testing.T) {
	entries := raceEntries(1, 2, 3, 4)

	err := ValidateSelection(models.BetTypeExactaBox, models.NewBoxSelection(1), entries)
	assert.ErrorIs(t, err, ErrInsufficientSelectionSize)

	err = ValidateSelection(models.BetTypeTrifectaBox, models.NewBoxSelection(1, 2), entries)
	assert.ErrorIs(t, err, ErrInsufficientSelectionSize)

	// Duplicates do not count toward the minimum
	err = ValidateSelection(models.BetTypeTrifectaBox, models.NewBoxSelection(1, 2, 2), entries)
	assert.ErrorIs(t, err, ErrInsufficientSelectionSize)
}

func TestValidateSelection_EmptySlot(t *testing.T) {
	entries := raceEntries(1, 2, 3)

	err := ValidateSelection(models.BetTypeExactaKey, models.NewSlotSelection([]int{1}, []int{}), entries)
	assert.ErrorIs(t, err, ErrEmptySlot)
}

func TestValidateSelection_DuplicateAcrossStraightSlots(t *testing.T) {
	entries := raceEntries(1, 2, 3, 4, 5)

	err := ValidateSelection(models.BetTypeTrifectaStraight,
		models.NewSlotSelection([]int{5}, []int{5}, []int{1}), entries)
	assert.ErrorIs(t, err, ErrDuplicateAcrossStraightSlots)

	err = ValidateSelection(models.BetTypeExactaStraight,
		models.NewSlotSelection([]int{3}, []int{3}), entries)
	assert.ErrorIs(t, err, ErrDuplicateAcrossStraightSlots)
}

func TestValidateSelection_StraightRequiresSingletonSlots(t *testing.T) {
	entries := raceEntries(1, 2, 3)

	err := ValidateSelection(models.BetTypeExactaStraight,
		models.NewSlotSelection([]int{1, 2}, []int{3}), entries)
	assert.ErrorIs(t, err, models.ErrInvalidSelectionShape)
}

func TestValidateSelection_KeyAllowsCrossSlotOverlap(t *testing.T) {
	entries := raceEntries(1, 2, 3)

	// Overlap is legal for key bets; it only reduces the path count
	err := ValidateSelection(models.BetTypeTrifectaKey,
		models.NewSlotSelection([]int{1, 2}, []int{1, 2}, []int{3}), entries)
	assert.NoError(t, err)
}

func TestValidateSelection_ShapeMismatch(t *testing.T) {
	entries := raceEntries(1, 2, 3)

	err := ValidateSelection(models.BetTypeWin, models.NewBoxSelection(1, 2), entries)
	assert.ErrorIs(t, err, models.ErrInvalidSelectionShape)
}
