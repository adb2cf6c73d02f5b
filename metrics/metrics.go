package metrics

import (
	"context"

	"mutuel/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsPlaced counts placed tickets by bet type
	TicketsPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mutuel_tickets_placed_total",
		Help: "Number of bet tickets placed",
	}, []string{"bet_type"})

	// TicketsCancelled counts cancelled tickets
	TicketsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mutuel_tickets_cancelled_total",
		Help: "Number of pending tickets cancelled and refunded",
	})

	// TicketsSettled counts settled tickets by terminal outcome
	TicketsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mutuel_tickets_settled_total",
		Help: "Number of tickets resolved to a terminal outcome",
	}, []string{"outcome"})

	// SettlementWarnings counts tickets left pending due to catalog trouble
	SettlementWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mutuel_settlement_warnings_total",
		Help: "Number of tickets skipped during settlement because the catalog was unavailable",
	})

	// LedgerEntries counts wallet balance transitions by entry type
	LedgerEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mutuel_ledger_entries_total",
		Help: "Number of wallet ledger entries recorded",
	}, []string{"entry_type"})
)

// SubscribeToBus wires the collectors to the domain event bus so every
// committed operation is counted
func SubscribeToBus(bus *events.Bus) {
	bus.Subscribe(events.EventTypeTicketPlaced, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.TicketPlacedEvent); ok {
			TicketsPlaced.WithLabelValues(string(e.BetType)).Inc()
		}
	})

	bus.Subscribe(events.EventTypeTicketCancelled, func(ctx context.Context, event events.Event) {
		TicketsCancelled.Inc()
	})

	bus.Subscribe(events.EventTypeTicketSettled, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.TicketSettledEvent); ok {
			TicketsSettled.WithLabelValues(string(e.Status)).Inc()
		}
	})

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			LedgerEntries.WithLabelValues(string(e.EntryType)).Inc()
		}
	})

	bus.Subscribe(events.EventTypeSettlementRun, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.SettlementRunEvent); ok {
			SettlementWarnings.Add(float64(e.Warnings))
		}
	})
}
