package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/isnorttestingpipelines/txm-web/internal/config"
	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/quotes"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

// Scheduler refreshes the quote for every watchlist symbol on a fixed
// interval. Symbols are fetched in parallel and each quote is upserted as
// its fetch completes, so for one symbol the last fetch to finish wins.
type Scheduler struct {
	source *quotes.Source
	store  *trading.Store
	config *config.Config
	logger *logger.Logger
}

func NewScheduler(source *quotes.Source, store *trading.Store, cfg *config.Config, log *logger.Logger) *Scheduler {
	return &Scheduler{
		source: source,
		store:  store,
		config: cfg,
		logger: log,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	interval := s.config.RefreshInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("quote refresher started", "interval", interval.String())

	// Run immediately on start
	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("quote refresher stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in refresh cycle", "panic", fmt.Sprint(r))
		}
	}()

	symbols := s.store.Watchlist()
	if len(symbols) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, symbol := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			s.store.UpsertQuote(s.source.FetchQuote(ctx, sym))
		}(symbol)
	}
	wg.Wait()

	s.logger.Debug("watchlist refreshed", "symbols", len(symbols))
}
