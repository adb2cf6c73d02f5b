package models

import "fmt"

// BetType identifies one of the supported wager types
type BetType string

const (
	BetTypeWin             BetType = "win"
	BetTypePlace           BetType = "place"
	BetTypeShow            BetType = "show"
	BetTypeWinPlace        BetType = "win_place"
	BetTypePlaceShow       BetType = "place_show"
	BetTypeWinPlaceShow    BetType = "win_place_show"
	BetTypeExactaStraight  BetType = "exacta_straight"
	BetTypeTrifectaStraight BetType = "trifecta_straight"
	BetTypeExactaBox       BetType = "exacta_box"
	BetTypeTrifectaBox     BetType = "trifecta_box"
	BetTypeExactaKey       BetType = "exacta_key"
	BetTypeTrifectaKey     BetType = "trifecta_key"
)

// SelectionKind describes the selection shape a bet type expects
type SelectionKind int

const (
	// KindSingle takes one program number (win/place/show families)
	KindSingle SelectionKind = iota
	// KindBox takes a flat set of program numbers
	KindBox
	// KindSlots takes per-position candidate sets (key and straight)
	KindSlots
)

// ParseBetType converts a string to a BetType
func ParseBetType(s string) (BetType, error) {
	t := BetType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown bet type %q", s)
	}
	return t, nil
}

// Valid reports whether the bet type is one of the supported variants
func (t BetType) Valid() bool {
	switch t {
	case BetTypeWin, BetTypePlace, BetTypeShow,
		BetTypeWinPlace, BetTypePlaceShow, BetTypeWinPlaceShow,
		BetTypeExactaStraight, BetTypeTrifectaStraight,
		BetTypeExactaBox, BetTypeTrifectaBox,
		BetTypeExactaKey, BetTypeTrifectaKey:
		return true
	}
	return false
}

// Kind returns the selection shape the bet type expects
func (t BetType) Kind() SelectionKind {
	switch t {
	case BetTypeExactaBox, BetTypeTrifectaBox:
		return KindBox
	case BetTypeExactaStraight, BetTypeTrifectaStraight, BetTypeExactaKey, BetTypeTrifectaKey:
		return KindSlots
	default:
		return KindSingle
	}
}

// Positions returns the number of finishing positions the bet type covers
func (t BetType) Positions() int {
	switch t {
	case BetTypeExactaStraight, BetTypeExactaBox, BetTypeExactaKey:
		return 2
	case BetTypeTrifectaStraight, BetTypeTrifectaBox, BetTypeTrifectaKey:
		return 3
	default:
		return 1
	}
}

// Straight reports whether each slot must reduce to exactly one horse
// with no horse repeated across slots
func (t BetType) Straight() bool {
	return t == BetTypeExactaStraight || t == BetTypeTrifectaStraight
}

// MinBoxSize returns the minimum distinct horse count for box selections
func (t BetType) MinBoxSize() int {
	switch t {
	case BetTypeExactaBox:
		return 2
	case BetTypeTrifectaBox:
		return 3
	default:
		return 0
	}
}

// Legs returns the constituent pools evaluated for single-horse bet types.
// A WinPlace ticket is one horse played in both the win and place pools.
func (t BetType) Legs() []PoolType {
	switch t {
	case BetTypeWin:
		return []PoolType{PoolWin}
	case BetTypePlace:
		return []PoolType{PoolPlace}
	case BetTypeShow:
		return []PoolType{PoolShow}
	case BetTypeWinPlace:
		return []PoolType{PoolWin, PoolPlace}
	case BetTypePlaceShow:
		return []PoolType{PoolPlace, PoolShow}
	case BetTypeWinPlaceShow:
		return []PoolType{PoolWin, PoolPlace, PoolShow}
	default:
		return nil
	}
}

// CombinationPool returns the pool the combination payout is sourced from
// for multi-position bet types
func (t BetType) CombinationPool() PoolType {
	if t.Positions() == 3 {
		return PoolTrifecta
	}
	return PoolExacta
}
