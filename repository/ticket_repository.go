package repository

import (
	"context"
	"fmt"

	"mutuel/database"
	"mutuel/models"
	"mutuel/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TicketRepository implements the service.TicketRepository interface
type TicketRepository struct {
	q queryable
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{q: db.Pool}
}

// newTicketRepositoryWithTx creates a new ticket repository with a transaction
func newTicketRepositoryWithTx(tx queryable) *TicketRepository {
	return &TicketRepository{q: tx}
}

// Create persists a new ticket
func (r *TicketRepository) Create(ctx context.Context, ticket *models.BetTicket) error {
	selection, err := ticket.Selection.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	query := `
		INSERT INTO tickets (id, race_id, bet_type, selection, unit_amount, total_cost, status, payout)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err = r.q.QueryRow(ctx, query,
		ticket.ID,
		ticket.RaceID,
		ticket.Type,
		selection,
		ticket.UnitAmount,
		ticket.TotalCost,
		ticket.Status,
		ticket.Payout,
	).Scan(&ticket.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create ticket %s: %w", ticket.ID, err)
	}

	return nil
}

// GetByID retrieves a ticket by its ID, or nil if it does not exist
func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BetTicket, error) {
	query := `
		SELECT id, race_id, bet_type, selection, unit_amount, total_cost, status, payout, settled_at, created_at
		FROM tickets
		WHERE id = $1
	`

	ticket, err := scanTicket(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket %s: %w", id, err)
	}

	return ticket, nil
}

// List returns tickets ordered by creation time descending
func (r *TicketRepository) List(ctx context.Context, status *models.TicketStatus, limit int) ([]*models.BetTicket, error) {
	query := `
		SELECT id, race_id, bet_type, selection, unit_amount, total_cost, status, payout, settled_at, created_at
		FROM tickets
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
	`

	args := []any{status}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// ListPending returns pending tickets, oldest first, for settlement scans
func (r *TicketRepository) ListPending(ctx context.Context) ([]*models.BetTicket, error) {
	query := `
		SELECT id, race_id, bet_type, selection, unit_amount, total_cost, status, payout, settled_at, created_at
		FROM tickets
		WHERE status = $1
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, models.TicketStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// Settle transitions a pending ticket to a terminal status. The status guard
// in the WHERE clause makes re-settlement impossible.
func (r *TicketRepository) Settle(ctx context.Context, id uuid.UUID, status models.TicketStatus, payout decimal.Decimal) error {
	if !status.Terminal() {
		return fmt.Errorf("cannot settle ticket %s to non-terminal status %s", id, status)
	}

	query := `
		UPDATE tickets
		SET status = $1, payout = $2, settled_at = NOW()
		WHERE id = $3 AND status = $4
	`

	result, err := r.q.Exec(ctx, query, status, payout, id, models.TicketStatusPending)
	if err != nil {
		return fmt.Errorf("failed to settle ticket %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: ticket %s", service.ErrTicketNotPending, id)
	}

	return nil
}

// Delete removes a pending ticket. Terminal tickets are immutable history
// and can never be deleted.
func (r *TicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM tickets
		WHERE id = $1 AND status = $2
	`

	result, err := r.q.Exec(ctx, query, id, models.TicketStatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete ticket %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check ticket: %w", err)
		}
		if existing == nil {
			return fmt.Errorf("%w: %s", service.ErrTicketNotFound, id)
		}
		return fmt.Errorf("%w: status is %s", service.ErrTicketNotPending, existing.Status)
	}

	return nil
}

func scanTicket(row pgx.Row) (*models.BetTicket, error) {
	var ticket models.BetTicket
	var selectionJSON []byte

	err := row.Scan(
		&ticket.ID,
		&ticket.RaceID,
		&ticket.Type,
		&selectionJSON,
		&ticket.UnitAmount,
		&ticket.TotalCost,
		&ticket.Status,
		&ticket.Payout,
		&ticket.SettledAt,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.Selection, err = models.ScanSelection(selectionJSON)
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

func collectTickets(rows pgx.Rows) ([]*models.BetTicket, error) {
	var tickets []*models.BetTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}
