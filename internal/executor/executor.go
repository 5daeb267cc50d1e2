package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/isnorttestingpipelines/txm-web/internal/gateway"
	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/telegram"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

// ErrInvalidOrder marks an order intent rejected before it ever reaches
// the gateway.
var ErrInvalidOrder = errors.New("invalid order")

// Executor drives order intents through the gateway and folds the results
// into the trading store. It never touches cash or positions: the ledger
// is re-established only by RefreshPortfolio.
type Executor struct {
	gateway  gateway.Gateway
	store    *trading.Store
	notifier *telegram.Notifier
	logger   *logger.Logger
}

func NewExecutor(gw gateway.Gateway, store *trading.Store, notifier *telegram.Notifier, log *logger.Logger) *Executor {
	return &Executor{
		gateway:  gw,
		store:    store,
		notifier: notifier,
		logger:   log,
	}
}

// PlaceOrder validates the intent, submits it and records the returned
// order newest-first. Submission failures propagate: the user must see
// that the order did not go through.
func (e *Executor) PlaceOrder(ctx context.Context, symbol string, quantity int64, price float64, side trading.Side) (trading.Order, error) {
	if symbol == "" {
		return trading.Order{}, fmt.Errorf("%w: symbol is required", ErrInvalidOrder)
	}
	if quantity <= 0 {
		return trading.Order{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidOrder, quantity)
	}
	if price < 0 {
		return trading.Order{}, fmt.Errorf("%w: price must not be negative, got %v", ErrInvalidOrder, price)
	}
	if side != trading.SideBuy && side != trading.SideSell {
		return trading.Order{}, fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, side)
	}

	order, err := e.gateway.PlaceOrder(ctx, symbol, quantity, price, side)
	if err != nil {
		e.logger.Error("place order", "symbol", symbol, "error", err)
		e.notifier.NotifyError("place order", err)
		return trading.Order{}, err
	}

	e.store.RecordOrder(order)
	e.notifier.NotifyOrderPlaced(order)
	return order, nil
}

// CancelOrder asks the gateway to cancel and, on acknowledgement,
// transitions the recorded order to CANCELLED. The order stays in history
// either way.
func (e *Executor) CancelOrder(ctx context.Context, id string) (gateway.CancelResult, error) {
	result, err := e.gateway.CancelOrder(ctx, id)
	if err != nil {
		e.logger.Error("cancel order", "id", id, "error", err)
		return result, err
	}

	if result.Success {
		if !e.store.MarkOrderStatus(id, trading.StatusCancelled) {
			e.logger.Warn("cancelled order not found in store", "id", id)
		}
		e.notifier.NotifyOrderCancelled(id)
	}
	return result, nil
}

// RefreshPortfolio fetches the authoritative snapshot and replaces the
// store's portfolio wholesale.
func (e *Executor) RefreshPortfolio(ctx context.Context) (trading.Portfolio, error) {
	p, err := e.gateway.GetPortfolio(ctx)
	if err != nil {
		e.logger.Error("refresh portfolio", "error", err)
		return trading.Portfolio{}, err
	}
	e.store.ReplacePortfolio(p)
	return e.store.Portfolio(), nil
}
