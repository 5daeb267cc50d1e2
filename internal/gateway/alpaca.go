package gateway

import (
	"context"
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"

	"github.com/isnorttestingpipelines/txm-web/internal/config"
	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

// Alpaca routes orders to an Alpaca brokerage account. Whatever status the
// broker reports is stored verbatim after mapping to the local vocabulary.
type Alpaca struct {
	client *alpaca.Client
	logger *logger.Logger
}

var _ Gateway = (*Alpaca)(nil)

func NewAlpaca(cfg *config.Config, log *logger.Logger) *Alpaca {
	return &Alpaca{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    cfg.Gateway.APIKey,
			APISecret: cfg.Gateway.APISecret,
			BaseURL:   cfg.Gateway.BaseURL,
		}),
		logger: log,
	}
}

func (a *Alpaca) PlaceOrder(ctx context.Context, symbol string, quantity int64, price float64, side trading.Side) (trading.Order, error) {
	qty := decimal.NewFromInt(quantity)
	req := alpaca.PlaceOrderRequest{
		Symbol:      symbol,
		Qty:         &qty,
		Side:        alpaca.Buy,
		Type:        alpaca.Market,
		TimeInForce: alpaca.Day,
	}
	if side == trading.SideSell {
		req.Side = alpaca.Sell
	}
	if price > 0 {
		limit := decimal.NewFromFloat(price)
		req.Type = alpaca.Limit
		req.LimitPrice = &limit
	}

	placed, err := a.client.PlaceOrder(req)
	if err != nil {
		return trading.Order{}, fmt.Errorf("place order: %w", err)
	}

	order := trading.Order{
		ID:        placed.ID,
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Status:    mapStatus(string(placed.Status)),
		CreatedAt: placed.CreatedAt,
	}
	a.logger.Info("order routed to alpaca", "id", order.ID, "symbol", symbol, "status", order.Status)
	return order, nil
}

func (a *Alpaca) CancelOrder(ctx context.Context, id string) (CancelResult, error) {
	if err := a.client.CancelOrder(id); err != nil {
		return CancelResult{Success: false, OrderID: id}, fmt.Errorf("cancel order: %w", err)
	}
	return CancelResult{Success: true, OrderID: id}, nil
}

func (a *Alpaca) GetPortfolio(ctx context.Context) (trading.Portfolio, error) {
	acct, err := a.client.GetAccount()
	if err != nil {
		return trading.Portfolio{}, fmt.Errorf("get account: %w", err)
	}

	positions, err := a.client.GetPositions()
	if err != nil {
		return trading.Portfolio{}, fmt.Errorf("get positions: %w", err)
	}

	p := trading.Portfolio{
		Cash:        acct.Cash.InexactFloat64(),
		TotalValue:  acct.PortfolioValue.InexactFloat64(),
		BuyingPower: acct.BuyingPower.InexactFloat64(),
		Positions:   make([]trading.Position, 0, len(positions)),
		Orders:      []trading.Order{},
	}
	for _, pos := range positions {
		current := 0.0
		if pos.CurrentPrice != nil {
			current = pos.CurrentPrice.InexactFloat64()
		}
		p.Positions = append(p.Positions, trading.NewPosition(
			pos.Symbol,
			pos.Qty.IntPart(),
			pos.AvgEntryPrice.InexactFloat64(),
			current,
		))
	}
	return p, nil
}

func mapStatus(s string) trading.Status {
	switch s {
	case "filled":
		return trading.StatusFilled
	case "canceled":
		return trading.StatusCancelled
	case "rejected":
		return trading.StatusRejected
	default:
		return trading.StatusPending
	}
}
