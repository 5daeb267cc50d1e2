package quotes

import (
	"math"
	"math/rand"
	"testing"
)

func TestGeneratorKnownSymbol(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 100; i++ {
		q := g.Quote("AAPL")
		if q.Symbol != "AAPL" {
			t.Fatalf("symbol = %q", q.Symbol)
		}
		base := basePrices["AAPL"]
		if q.Price < base-changeBand/2 || q.Price > base+changeBand/2 {
			t.Errorf("price %v outside base %v ± %v", q.Price, base, changeBand/2)
		}
		if math.Abs(q.Change) > changeBand/2 {
			t.Errorf("change %v outside ±%v", q.Change, changeBand/2)
		}
	}
}

func TestGeneratorUnknownSymbolBounds(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 100; i++ {
		q := g.Quote("ZZZZ")
		if q.Price < -changeBand/2 || q.Price > unknownPriceMax+changeBand/2 {
			t.Errorf("price %v outside [%v, %v]", q.Price, -changeBand/2, unknownPriceMax+changeBand/2)
		}
	}
}

func TestGeneratorChangePercentConsistent(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 100; i++ {
		q := g.Quote("ZZZZ")
		base := q.Price - q.Change
		ab := math.Abs(base)
		if ab < 0.5 {
			// Reconstructing the base from two rounded values loses too
			// much precision near zero to check anything meaningful.
			continue
		}
		want := q.Change / base * 100
		// price and change carry up to half a cent of rounding each, and
		// changePercent itself another half cent.
		tol := 100*(0.005/ab+math.Abs(q.Change)*0.01/(ab*ab)) + 0.01
		if math.Abs(q.ChangePercent-want) > tol {
			t.Errorf("changePercent = %v, want ≈ %v (base %v, change %v)",
				q.ChangePercent, want, base, q.Change)
		}
	}
}

// zeroSource makes rnd.Float64 return exactly 0, the worst draw for the
// unknown-symbol base price.
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

func TestGeneratorZeroDrawStaysFinite(t *testing.T) {
	g := &Generator{rnd: rand.New(zeroSource{})}

	q := g.Quote("ZZZZ")

	for name, v := range map[string]float64{
		"price":         q.Price,
		"change":        q.Change,
		"changePercent": q.ChangePercent,
	} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Errorf("%s = %v, want finite", name, v)
		}
	}
	if q.Change != -changeBand/2 {
		t.Errorf("change = %v, want %v from an all-zero draw", q.Change, -changeBand/2)
	}
}

func TestGeneratorRoundsToCents(t *testing.T) {
	g := NewGenerator()

	rounded := func(v float64) bool {
		scaled := v * 100
		return math.Abs(scaled-math.Round(scaled)) < 1e-6
	}

	for i := 0; i < 100; i++ {
		q := g.Quote("MSFT")
		if !rounded(q.Price) || !rounded(q.Change) || !rounded(q.ChangePercent) {
			t.Errorf("values not rounded to two decimals: %+v", q)
		}
	}
}
