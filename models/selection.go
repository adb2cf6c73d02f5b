package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSelectionShape indicates a selection whose shape does not match
// the arity expected by the bet type
var ErrInvalidSelectionShape = errors.New("selection shape does not match bet type")

// Selection is the horse selection payload of a ticket. Exactly one of the
// three shapes is populated, matching the bet type's SelectionKind:
// a single program number, a flat box set, or per-position slot sets.
type Selection struct {
	Kind    SelectionKind `json:"kind"`
	Program int           `json:"program,omitempty"`
	Box     []int         `json:"box,omitempty"`
	Slots   [][]int       `json:"slots,omitempty"`
}

// NewSingleSelection builds a selection holding one program number
func NewSingleSelection(program int) Selection {
	return Selection{Kind: KindSingle, Program: program}
}

// NewBoxSelection builds a flat-set selection
func NewBoxSelection(programs ...int) Selection {
	return Selection{Kind: KindBox, Box: programs}
}

// NewSlotSelection builds a per-position selection; slot order is finish order
func NewSlotSelection(slots ...[]int) Selection {
	return Selection{Kind: KindSlots, Slots: slots}
}

// CheckShape verifies that the selection's shape matches what the bet type
// expects. The validator applies the full structural rules on top of it.
func (s Selection) CheckShape(t BetType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: unknown bet type %q", ErrInvalidSelectionShape, t)
	}
	if s.Kind != t.Kind() {
		return fmt.Errorf("%w: %s requires kind %d, got %d", ErrInvalidSelectionShape, t, t.Kind(), s.Kind)
	}
	if s.Kind == KindSlots && len(s.Slots) != t.Positions() {
		return fmt.Errorf("%w: %s requires %d slots, got %d", ErrInvalidSelectionShape, t, t.Positions(), len(s.Slots))
	}
	return nil
}

// Programs returns the distinct program numbers the selection references,
// in ascending order
func (s Selection) Programs() []int {
	seen := make(map[int]struct{})
	switch s.Kind {
	case KindSingle:
		seen[s.Program] = struct{}{}
	case KindBox:
		for _, p := range s.Box {
			seen[p] = struct{}{}
		}
	case KindSlots:
		for _, slot := range s.Slots {
			for _, p := range slot {
				seen[p] = struct{}{}
			}
		}
	}
	programs := make([]int, 0, len(seen))
	for p := range seen {
		programs = append(programs, p)
	}
	sort.Ints(programs)
	return programs
}

// Combinations returns the number of distinct combinations the ticket covers,
// which is the cost multiplier applied to the unit amount. Single-horse types
// count one combination per pool leg; box types count ordered permutations;
// slot types count the valid paths through the slots in order, pruning any
// candidate already used earlier in the path.
func (s Selection) Combinations(t BetType) (int, error) {
	if err := s.CheckShape(t); err != nil {
		return 0, err
	}
	switch s.Kind {
	case KindSingle:
		return len(t.Legs()), nil
	case KindBox:
		n := len(s.Programs())
		count := 1
		for i := 0; i < t.Positions(); i++ {
			count *= n - i
		}
		if count < 0 {
			count = 0
		}
		return count, nil
	default:
		return len(s.enumeratePaths()), nil
	}
}

// EnumerateCombinations lists every combination the ticket covers as an
// ordered sequence of program numbers per finishing position. Settlement
// matches these against the official finish order.
func (s Selection) EnumerateCombinations(t BetType) ([][]int, error) {
	if err := s.CheckShape(t); err != nil {
		return nil, err
	}
	switch s.Kind {
	case KindSingle:
		return [][]int{{s.Program}}, nil
	case KindBox:
		slots := make([][]int, t.Positions())
		programs := s.Programs()
		for i := range slots {
			slots[i] = programs
		}
		boxed := Selection{Kind: KindSlots, Slots: slots}
		return boxed.enumeratePaths(), nil
	default:
		return s.enumeratePaths(), nil
	}
}

// enumeratePaths walks the slots depth first, accumulating the current path
// and skipping any candidate that already occupies an earlier position.
func (s Selection) enumeratePaths() [][]int {
	var paths [][]int
	var walk func(slot int, path []int)
	walk = func(slot int, path []int) {
		if slot == len(s.Slots) {
			paths = append(paths, append([]int(nil), path...))
			return
		}
		for _, candidate := range s.Slots[slot] {
			if containsInt(path, candidate) {
				continue
			}
			walk(slot+1, append(path, candidate))
		}
	}
	if len(s.Slots) == 0 {
		return nil
	}
	walk(0, make([]int, 0, len(s.Slots)))
	return paths
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// Value serializes the selection for JSONB storage
func (s Selection) Value() ([]byte, error) {
	return json.Marshal(s)
}

// ScanSelection deserializes a selection from its JSONB representation
func ScanSelection(data []byte) (Selection, error) {
	var s Selection
	if err := json.Unmarshal(data, &s); err != nil {
		return Selection{}, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return s, nil
}
