package service

import (
	"fmt"

	"mutuel/models"
)

// ValidateSelection enforces the structural rules of a selection against a
// race's published entries. Every referenced program number must exist and
// must not be scratched; box selections need the type's minimum distinct
// horse count; key selections need every slot non-empty; straight selections
// additionally need singleton, pairwise disjoint slots.
func ValidateSelection(betType models.BetType, selection models.Selection, entries []models.RaceEntry) error {
	if err := selection.CheckShape(betType); err != nil {
		return err
	}

	byProgram := make(map[int]models.RaceEntry, len(entries))
	for _, entry := range entries {
		byProgram[entry.ProgramNumber] = entry
	}

	for _, program := range selection.Programs() {
		entry, ok := byProgram[program]
		if !ok {
			return fmt.Errorf("%w: program %d is not entered in this race", ErrUnknownHorse, program)
		}
		if entry.Scratched {
			return fmt.Errorf("%w: program %d", ErrScratchedHorse, program)
		}
	}

	switch betType.Kind() {
	case models.KindBox:
		if distinct := len(selection.Programs()); distinct < betType.MinBoxSize() {
			return fmt.Errorf("%w: %s requires at least %d horses, got %d",
				ErrInsufficientSelectionSize, betType, betType.MinBoxSize(), distinct)
		}

	case models.KindSlots:
		for i, slot := range selection.Slots {
			if len(slot) == 0 {
				return fmt.Errorf("%w: position %d", ErrEmptySlot, i+1)
			}
		}
		if betType.Straight() {
			seen := make(map[int]int)
			for i, slot := range selection.Slots {
				if len(slot) != 1 {
					return fmt.Errorf("%w: %s requires exactly one horse per position, position %d has %d",
						models.ErrInvalidSelectionShape, betType, i+1, len(slot))
				}
				program := slot[0]
				if prev, dup := seen[program]; dup {
					return fmt.Errorf("%w: program %d in positions %d and %d",
						ErrDuplicateAcrossStraightSlots, program, prev, i+1)
				}
				seen[program] = i + 1
			}
		}
	}

	return nil
}
