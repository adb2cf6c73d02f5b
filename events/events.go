package events

import (
	"context"
	"sync"

	"mutuel/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange EventType = "balance_change"
	EventTypeTicketPlaced  EventType = "ticket_placed"
	EventTypeTicketCancelled EventType = "ticket_cancelled"
	EventTypeTicketSettled EventType = "ticket_settled"
	EventTypeSettlementRun EventType = "settlement_run"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a wallet balance change that occurred
type BalanceChangeEvent struct {
	EntryType    models.EntryType
	OldBalance   decimal.Decimal
	NewBalance   decimal.Decimal
	ChangeAmount decimal.Decimal
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// TicketPlacedEvent represents a bet ticket that was placed
type TicketPlacedEvent struct {
	TicketID  uuid.UUID
	RaceID    string
	BetType   models.BetType
	TotalCost decimal.Decimal
}

func (e TicketPlacedEvent) Type() EventType {
	return EventTypeTicketPlaced
}

// TicketCancelledEvent represents a pending ticket that was cancelled
type TicketCancelledEvent struct {
	TicketID uuid.UUID
	Refund   decimal.Decimal
}

func (e TicketCancelledEvent) Type() EventType {
	return EventTypeTicketCancelled
}

// TicketSettledEvent represents a ticket resolved to a terminal outcome
type TicketSettledEvent struct {
	TicketID uuid.UUID
	RaceID   string
	Status   models.TicketStatus
	Payout   decimal.Decimal
}

func (e TicketSettledEvent) Type() EventType {
	return EventTypeTicketSettled
}

// SettlementRunEvent summarizes one completed settlement run
type SettlementRunEvent struct {
	Resolved int
	Skipped  int
	Warnings int
}

func (e SettlementRunEvent) Type() EventType {
	return EventTypeSettlementRun
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and
// forwards them to the real bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus wrapping the real one
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush or Discard
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful commit.
// Events are emitted on a background context so handlers are not tied to
// the transaction context's lifetime.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops all pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
