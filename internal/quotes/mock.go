package quotes

import (
	"math/rand"
	"sync"
	"time"

	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

const (
	// Unknown symbols get a base price in [0, unknownPriceMax).
	unknownPriceMax = 500
	// Perturbation band: change falls in ±changeBand/2.
	changeBand = 20
)

var basePrices = map[string]float64{
	"AAPL":  195,
	"GOOGL": 140,
	"MSFT":  380,
	"TSLA":  245,
	"NVDA":  875,
	"AMZN":  175,
	"META":  475,
	"NFLX":  445,
	"PYPL":  82,
	"UBER":  72,
}

// Generator produces plausible quotes without any upstream: a fixed base
// price per known symbol, a bounded random perturbation, and change
// statistics derived from the two. All values are rounded to cents.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *Generator) Quote(symbol string) trading.Quote {
	g.mu.Lock()
	defer g.mu.Unlock()

	base, ok := basePrices[symbol]
	if !ok {
		base = g.rnd.Float64() * unknownPriceMax
		if base < 0.01 {
			// A zero base would make the change percent infinite.
			base = 0.01
		}
	}
	change := (g.rnd.Float64() - 0.5) * changeBand
	changePercent := change / base * 100

	return trading.Quote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         trading.Round2(base + change),
		Change:        trading.Round2(change),
		ChangePercent: trading.Round2(changePercent),
	}
}
