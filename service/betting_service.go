package service

import (
	"context"
	"fmt"

	"mutuel/config"
	"mutuel/events"
	"mutuel/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type bettingService struct {
	uowFactory UnitOfWorkFactory
	catalog    RaceCatalog
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory UnitOfWorkFactory, catalog RaceCatalog) BettingService {
	return &bettingService{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

func (s *bettingService) PlaceBet(ctx context.Context, raceID string, betType models.BetType, selection models.Selection, unitAmount decimal.Decimal) (*models.PlaceBetResult, error) {
	// Validate inputs
	if raceID == "" {
		return nil, fmt.Errorf("race id is required")
	}
	if !betType.Valid() {
		return nil, fmt.Errorf("unknown bet type %q", betType)
	}
	if !unitAmount.IsPositive() {
		return nil, fmt.Errorf("unit amount must be positive")
	}

	// Consult the catalog for entry existence and scratch status. This
	// happens before any state change; a validation failure leaves the
	// wallet untouched.
	entries, err := s.catalog.GetEntries(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for race %s: %w", raceID, err)
	}
	if err := ValidateSelection(betType, selection, entries); err != nil {
		return nil, err
	}

	// Price the ticket. The cost is frozen here and never recomputed.
	totalCost, err := models.Price(betType, selection, unitAmount)
	if err != nil {
		return nil, err
	}
	if !totalCost.IsPositive() {
		return nil, fmt.Errorf("selection covers no combinations")
	}

	// Debit and persist as a single atomic unit. If the persist fails the
	// rollback restores the debit, so no money is taken without a ticket.
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	wallet, err := getOrCreateWallet(ctx, uow, config.Get().StartingBalance)
	if err != nil {
		return nil, err
	}

	if err := uow.WalletRepository().Debit(ctx, totalCost); err != nil {
		return nil, fmt.Errorf("failed to debit bet cost: %w", err)
	}
	newBalance := wallet.Balance.Sub(totalCost)

	ticket := &models.BetTicket{
		ID:         uuid.New(),
		RaceID:     raceID,
		Type:       betType,
		Selection:  selection,
		UnitAmount: unitAmount,
		TotalCost:  totalCost,
		Status:     models.TicketStatusPending,
		Payout:     decimal.Zero,
	}
	if err := uow.TicketRepository().Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to persist ticket: %w", err)
	}

	entry := &models.LedgerEntry{
		EntryType:     models.EntryTypeBetDebit,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  newBalance,
		ChangeAmount:  totalCost.Neg(),
		TicketID:      &ticket.ID,
		Metadata: map[string]any{
			"race_id":  raceID,
			"bet_type": string(betType),
		},
	}
	if err := RecordLedgerEntry(ctx, uow, entry); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.TicketPlacedEvent{
		TicketID:  ticket.ID,
		RaceID:    raceID,
		BetType:   betType,
		TotalCost: totalCost,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"ticketID":  ticket.ID,
		"raceID":    raceID,
		"betType":   betType,
		"totalCost": totalCost,
	}).Info("Bet placed")

	return &models.PlaceBetResult{
		Ticket:     ticket,
		NewBalance: newBalance,
	}, nil
}

func (s *bettingService) CancelBet(ctx context.Context, ticketID uuid.UUID) (decimal.Decimal, error) {
	// Removal and refund are one atomic unit; both apply or neither does
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	ticket, err := uow.TicketRepository().GetByID(ctx, ticketID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrTicketNotFound, ticketID)
	}
	if !ticket.CanCancel() {
		return decimal.Zero, fmt.Errorf("%w: status is %s", ErrTicketNotPending, ticket.Status)
	}

	if err := uow.TicketRepository().Delete(ctx, ticketID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to delete ticket: %w", err)
	}

	wallet, err := uow.WalletRepository().Get(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return decimal.Zero, fmt.Errorf("wallet not found")
	}

	if err := uow.WalletRepository().Credit(ctx, ticket.TotalCost); err != nil {
		return decimal.Zero, fmt.Errorf("failed to refund ticket cost: %w", err)
	}
	newBalance := wallet.Balance.Add(ticket.TotalCost)

	// The ticket row is gone by the time this entry lands, so the ticket
	// reference lives in the metadata only
	entry := &models.LedgerEntry{
		EntryType:     models.EntryTypeRefund,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  newBalance,
		ChangeAmount:  ticket.TotalCost,
		Metadata: map[string]any{
			"ticket_id": ticketID.String(),
			"race_id":   ticket.RaceID,
		},
	}
	if err := RecordLedgerEntry(ctx, uow, entry); err != nil {
		return decimal.Zero, err
	}

	uow.EventBus().Publish(events.TicketCancelledEvent{
		TicketID: ticketID,
		Refund:   ticket.TotalCost,
	})

	if err := uow.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"ticketID": ticketID,
		"refund":   ticket.TotalCost,
	}).Info("Bet cancelled")

	return newBalance, nil
}

func (s *bettingService) GetTicket(ctx context.Context, ticketID uuid.UUID) (*models.BetTicket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ticket, err := uow.TicketRepository().GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, ticketID)
	}
	return ticket, nil
}

func (s *bettingService) ListTickets(ctx context.Context, status *models.TicketStatus, limit int) ([]*models.BetTicket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tickets, err := uow.TicketRepository().List(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}
