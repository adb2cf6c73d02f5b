package service

import (
	"context"
	"fmt"

	"mutuel/events"
	"mutuel/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	uowFactory UnitOfWorkFactory
	catalog    RaceCatalog
}

// NewSettlementService creates a new settlement service
func NewSettlementService(uowFactory UnitOfWorkFactory, catalog RaceCatalog) SettlementService {
	return &settlementService{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// raceSnapshot caches one race's catalog state for the duration of a run
type raceSnapshot struct {
	result  *models.RaceResult
	entries []models.RaceEntry
}

func (s *settlementService) ResolvePending(ctx context.Context) (*models.SettlementReport, error) {
	pending, err := s.listPending(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.SettlementReport{TotalNewlyWon: decimal.Zero}
	snapshots := make(map[string]*raceSnapshot)

	// Tickets are settled one at a time so an aborted run leaves only
	// already-processed tickets in a terminal state
	for _, ticket := range pending {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		snapshot, err := s.lookupRace(ctx, snapshots, ticket.RaceID)
		if err != nil {
			// Catalog trouble leaves the ticket pending for the next run
			report.Warnings++
			log.WithFields(log.Fields{
				"ticketID": ticket.ID,
				"raceID":   ticket.RaceID,
			}).WithError(err).Warn("Catalog unavailable, leaving ticket pending")
			continue
		}

		if !snapshot.result.Finalized {
			report.Skipped++
			continue
		}

		outcome := gradeTicket(ticket, snapshot.result, snapshot.entries)
		if err := s.settleTicket(ctx, ticket, outcome); err != nil {
			report.Warnings++
			log.WithFields(log.Fields{
				"ticketID": ticket.ID,
				"raceID":   ticket.RaceID,
			}).WithError(err).Warn("Failed to settle ticket, leaving it pending")
			continue
		}

		report.Resolved++
		if outcome.Status == models.TicketStatusWin {
			report.NewlyWon = append(report.NewlyWon, models.TicketPayout{
				Ticket: ticket,
				Payout: outcome.Payout,
			})
			report.TotalNewlyWon = report.TotalNewlyWon.Add(outcome.Payout)
		}
	}

	log.WithFields(log.Fields{
		"resolved": report.Resolved,
		"skipped":  report.Skipped,
		"warnings": report.Warnings,
	}).Info("Settlement run completed")

	return report, nil
}

func (s *settlementService) listPending(ctx context.Context) ([]*models.BetTicket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pending, err := uow.TicketRepository().ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tickets: %w", err)
	}
	return pending, nil
}

// lookupRace fetches a race's result and entries, caching per run so several
// tickets on the same race cost one catalog round trip
func (s *settlementService) lookupRace(ctx context.Context, snapshots map[string]*raceSnapshot, raceID string) (*raceSnapshot, error) {
	if snapshot, ok := snapshots[raceID]; ok {
		return snapshot, nil
	}

	result, err := s.catalog.GetRaceResult(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result for race %s: %w", raceID, err)
	}

	snapshot := &raceSnapshot{result: result}
	if result.Finalized {
		entries, err := s.catalog.GetEntries(ctx, raceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get entries for race %s: %w", raceID, err)
		}
		snapshot.entries = entries
	}

	snapshots[raceID] = snapshot
	return snapshot, nil
}

// settleTicket applies one ticket's outcome as its own atomic unit: the
// wallet credit, the ledger entry and the status transition commit together.
func (s *settlementService) settleTicket(ctx context.Context, ticket *models.BetTicket, outcome gradeOutcome) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Re-check under the transaction; a ticket already terminal must never
	// be re-evaluated
	current, err := uow.TicketRepository().GetByID(ctx, ticket.ID)
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if current == nil {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, ticket.ID)
	}
	if !current.CanSettle() {
		return fmt.Errorf("%w: status is %s", ErrTicketNotPending, current.Status)
	}

	if outcome.Payout.IsPositive() {
		wallet, err := uow.WalletRepository().Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to get wallet: %w", err)
		}
		if wallet == nil {
			return fmt.Errorf("wallet not found")
		}

		if err := uow.WalletRepository().Credit(ctx, outcome.Payout); err != nil {
			return fmt.Errorf("failed to credit payout: %w", err)
		}

		entry := &models.LedgerEntry{
			EntryType:     models.EntryTypePayoutCredit,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  wallet.Balance.Add(outcome.Payout),
			ChangeAmount:  outcome.Payout,
			TicketID:      &ticket.ID,
			Metadata: map[string]any{
				"race_id": ticket.RaceID,
				"outcome": string(outcome.Status),
			},
		}
		if err := RecordLedgerEntry(ctx, uow, entry); err != nil {
			return err
		}
	}

	if err := uow.TicketRepository().Settle(ctx, ticket.ID, outcome.Status, outcome.Payout); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	uow.EventBus().Publish(events.TicketSettledEvent{
		TicketID: ticket.ID,
		RaceID:   ticket.RaceID,
		Status:   outcome.Status,
		Payout:   outcome.Payout,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	ticket.Status = outcome.Status
	ticket.Payout = outcome.Payout

	return nil
}
