package app

import (
	"context"
	"fmt"

	"mutuel/database"
	"mutuel/events"
	"mutuel/repository"
	"mutuel/service"
)

// App bundles the wagering engine's services behind one handle. This is the
// surface a surrounding application embeds; transport framing stays outside.
type App struct {
	Betting    service.BettingService
	Wallet     service.WalletService
	Settlement service.SettlementService
	Bus        *events.Bus
}

// New wires the engine against a database connection and a race catalog
func New(db *database.DB, raceCatalog service.RaceCatalog) *App {
	bus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, bus)

	return &App{
		Betting:    service.NewBettingService(uowFactory, raceCatalog),
		Wallet:     service.NewWalletService(uowFactory),
		Settlement: service.NewSettlementService(uowFactory, raceCatalog),
		Bus:        bus,
	}
}

// RunSettlement resolves pending tickets once and announces the run on the
// event bus
func (a *App) RunSettlement(ctx context.Context) (resolved int, err error) {
	report, err := a.Settlement.ResolvePending(ctx)
	if err != nil {
		return 0, fmt.Errorf("settlement run failed: %w", err)
	}

	a.Bus.Emit(ctx, events.SettlementRunEvent{
		Resolved: report.Resolved,
		Skipped:  report.Skipped,
		Warnings: report.Warnings,
	})

	return report.Resolved, nil
}
