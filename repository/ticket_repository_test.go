package repository

import (
	"context"
	"testing"

	"mutuel/models"
	"mutuel/repository/testutil"
	"mutuel/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()

	t.Run("ticket not found", func(t *testing.T) {
		ticket, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})

	t.Run("create and get single selection", func(t *testing.T) {
		ticket := testutil.CreateTestTicket("race-1")

		err := repo.Create(ctx, ticket)
		require.NoError(t, err)
		assert.False(t, ticket.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, ticket.ID, got.ID)
		assert.Equal(t, "race-1", got.RaceID)
		assert.Equal(t, models.BetTypeWin, got.Type)
		assert.Equal(t, models.KindSingle, got.Selection.Kind)
		assert.Equal(t, 4, got.Selection.Program)
		assert.Equal(t, models.TicketStatusPending, got.Status)
		assert.True(t, got.UnitAmount.Equal(decimal.NewFromInt(10)))
		assert.True(t, got.Payout.IsZero())
		assert.Nil(t, got.SettledAt)
	})

	t.Run("create and get box selection", func(t *testing.T) {
		ticket := testutil.CreateTestTicketWithType("race-2",
			models.BetTypeTrifectaBox,
			models.NewBoxSelection(1, 2, 3),
			decimal.NewFromInt(1),
			decimal.NewFromInt(6),
		)

		err := repo.Create(ctx, ticket)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, models.KindBox, got.Selection.Kind)
		assert.Equal(t, []int{1, 2, 3}, got.Selection.Box)
	})

	t.Run("create and get slot selection", func(t *testing.T) {
		ticket := testutil.CreateTestTicketWithType("race-3",
			models.BetTypeExactaKey,
			models.NewSlotSelection([]int{5}, []int{1, 2}),
			decimal.NewFromInt(2),
			decimal.NewFromInt(4),
		)

		err := repo.Create(ctx, ticket)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, models.KindSlots, got.Selection.Kind)
		assert.Equal(t, [][]int{{5}, {1, 2}}, got.Selection.Slots)
	})
}

func TestTicketRepository_List(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()

	first := testutil.CreateTestTicket("race-1")
	second := testutil.CreateTestTicket("race-2")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Settle(ctx, second.ID, models.TicketStatusLoss, decimal.Zero))

	t.Run("all tickets newest first", func(t *testing.T) {
		tickets, err := repo.List(ctx, nil, 0)
		require.NoError(t, err)
		require.Len(t, tickets, 2)
		assert.Equal(t, second.ID, tickets[0].ID)
		assert.Equal(t, first.ID, tickets[1].ID)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := models.TicketStatusLoss
		tickets, err := repo.List(ctx, &status, 0)
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, second.ID, tickets[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		tickets, err := repo.List(ctx, nil, 1)
		require.NoError(t, err)
		assert.Len(t, tickets, 1)
	})

	t.Run("pending only oldest first", func(t *testing.T) {
		pending, err := repo.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, first.ID, pending[0].ID)
	})
}

func TestTicketRepository_Settle(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()

	t.Run("settle pending ticket", func(t *testing.T) {
		ticket := testutil.CreateTestTicket("race-1")
		require.NoError(t, repo.Create(ctx, ticket))

		err := repo.Settle(ctx, ticket.ID, models.TicketStatusWin, decimal.NewFromInt(24))
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TicketStatusWin, got.Status)
		assert.True(t, got.Payout.Equal(decimal.NewFromInt(24)))
		require.NotNil(t, got.SettledAt)
	})

	t.Run("settling twice fails", func(t *testing.T) {
		ticket := testutil.CreateTestTicket("race-1")
		require.NoError(t, repo.Create(ctx, ticket))
		require.NoError(t, repo.Settle(ctx, ticket.ID, models.TicketStatusLoss, decimal.Zero))

		err := repo.Settle(ctx, ticket.ID, models.TicketStatusWin, decimal.NewFromInt(24))
		assert.ErrorIs(t, err, service.ErrTicketNotPending)

		// First outcome stands
		got, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TicketStatusLoss, got.Status)
	})

	t.Run("non-terminal status rejected", func(t *testing.T) {
		ticket := testutil.CreateTestTicket("race-1")
		require.NoError(t, repo.Create(ctx, ticket))

		err := repo.Settle(ctx, ticket.ID, models.TicketStatusPending, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestTicketRepository_Delete(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()

	t.Run("delete pending ticket", func(t *testing.T) {
		ticket := testutil.CreateTestTicket("race-1")
		require.NoError(t, repo.Create(ctx, ticket))

		err := repo.Delete(ctx, ticket.ID)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete missing ticket", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrTicketNotFound)
	})

	t.Run("settled ticket cannot be deleted", func(t *testing.T) {
		ticket := testutil.CreateTestTicket("race-1")
		require.NoError(t, repo.Create(ctx, ticket))
		require.NoError(t, repo.Settle(ctx, ticket.ID, models.TicketStatusWin, decimal.NewFromInt(24)))

		err := repo.Delete(ctx, ticket.ID)
		assert.ErrorIs(t, err, service.ErrTicketNotPending)
	})
}
