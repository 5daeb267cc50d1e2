package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

// Simulated is the fully local gateway: orders are acknowledged as PENDING
// with a generated id, cancellation always succeeds, and the portfolio is
// a canned demo snapshot.
type Simulated struct {
	logger *logger.Logger
}

var _ Gateway = (*Simulated)(nil)

func NewSimulated(log *logger.Logger) *Simulated {
	return &Simulated{logger: log}
}

func (s *Simulated) PlaceOrder(ctx context.Context, symbol string, quantity int64, price float64, side trading.Side) (trading.Order, error) {
	order := trading.Order{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Status:    trading.StatusPending,
		CreatedAt: time.Now(),
	}
	s.logger.Info("simulated order placed",
		"id", order.ID, "symbol", symbol, "side", side, "quantity", quantity, "price", price)
	return order, nil
}

func (s *Simulated) CancelOrder(ctx context.Context, id string) (CancelResult, error) {
	s.logger.Info("simulated order cancelled", "id", id)
	return CancelResult{Success: true, OrderID: id}, nil
}

func (s *Simulated) GetPortfolio(ctx context.Context) (trading.Portfolio, error) {
	return trading.Portfolio{
		Cash:        85000,
		TotalValue:  125000,
		BuyingPower: 85000,
		Positions: []trading.Position{
			trading.NewPosition("AAPL", 50, 150, 195),
			trading.NewPosition("GOOGL", 20, 100, 140),
		},
		Orders: []trading.Order{},
	}, nil
}
