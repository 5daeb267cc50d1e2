package gateway

import (
	"context"

	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

// CancelResult acknowledges a cancellation request. The order itself stays
// in history; the caller transitions its status through the trading store.
type CancelResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// Gateway is the order-submission collaborator. Implementations must
// return a syntactically valid order on success: fresh unique id, a status
// the store can hold verbatim, a creation timestamp.
type Gateway interface {
	PlaceOrder(ctx context.Context, symbol string, quantity int64, price float64, side trading.Side) (trading.Order, error)
	CancelOrder(ctx context.Context, id string) (CancelResult, error)
	GetPortfolio(ctx context.Context) (trading.Portfolio, error)
}
