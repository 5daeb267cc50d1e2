package trading

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusFilled    Status = "FILLED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
)

// Quote is the latest known price and change statistics for one symbol.
// One quote per symbol; a newer quote fully replaces the prior one.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// Order is immutable once created except for status transitions.
type Order struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Side      Side      `json:"type"`
	Quantity  int64     `json:"quantity"`
	Price     float64   `json:"price"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"timestamp"`
}

type Position struct {
	Symbol       string  `json:"symbol"`
	Quantity     int64   `json:"quantity"`
	AveragePrice float64 `json:"averagePrice"`
	CurrentPrice float64 `json:"currentPrice"`
	Value        float64 `json:"value"`
	Gain         float64 `json:"gain"`
	GainPercent  float64 `json:"gainPercent"`
}

type Portfolio struct {
	Cash        float64    `json:"cash"`
	TotalValue  float64    `json:"totalValue"`
	BuyingPower float64    `json:"buyingPower"`
	Positions   []Position `json:"positions"`
	Orders      []Order    `json:"orders"`
}

// NewPosition derives the market-value fields from quantity and prices.
// GainPercent stays zero when the cost basis is zero.
func NewPosition(symbol string, quantity int64, averagePrice, currentPrice float64) Position {
	p := Position{
		Symbol:       symbol,
		Quantity:     quantity,
		AveragePrice: averagePrice,
		CurrentPrice: currentPrice,
	}
	cost := float64(quantity) * averagePrice
	p.Value = Round2(float64(quantity) * currentPrice)
	p.Gain = Round2(p.Value - cost)
	if cost != 0 {
		p.GainPercent = Round2(p.Gain / cost * 100)
	}
	return p
}

// Round2 rounds to two decimal places, the precision every price-like
// value in the system is quoted at.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
