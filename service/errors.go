package service

import "errors"

// Validation failures. These are rejected before any state change and the
// caller may resubmit a corrected request.
var (
	ErrUnknownHorse                 = errors.New("unknown horse")
	ErrScratchedHorse               = errors.New("scratched horse")
	ErrInsufficientSelectionSize    = errors.New("insufficient selection size")
	ErrEmptySlot                    = errors.New("empty position slot")
	ErrDuplicateAcrossStraightSlots = errors.New("horse appears in multiple straight slots")
)

// Wallet and ticket failures
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrTicketNotPending  = errors.New("ticket is not pending")
)
