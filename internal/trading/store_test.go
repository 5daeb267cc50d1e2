package trading

import (
	"reflect"
	"testing"
	"time"
)

func TestUpsertQuoteLastWriteWins(t *testing.T) {
	s := NewStore()

	s.UpsertQuote(Quote{Symbol: "AAPL", Price: 190, Change: -1, ChangePercent: -0.52})
	s.UpsertQuote(Quote{Symbol: "AAPL", Price: 195, Change: 2, ChangePercent: 1.03})

	q, ok := s.Quote("AAPL")
	if !ok {
		t.Fatal("quote for AAPL not found")
	}
	if q.Price != 195 || q.Change != 2 || q.ChangePercent != 1.03 {
		t.Errorf("expected last-inserted quote, got %+v", q)
	}
	if len(s.Quotes()) != 1 {
		t.Errorf("expected exactly one quote entry, got %d", len(s.Quotes()))
	}
}

func TestUpsertQuoteDoesNotTouchPositions(t *testing.T) {
	s := NewStore()
	s.ReplacePortfolio(Portfolio{
		Cash:       1000,
		TotalValue: 10750,
		Positions:  []Position{NewPosition("AAPL", 50, 150, 195)},
	})

	s.UpsertQuote(Quote{Symbol: "AAPL", Price: 210})

	p := s.Portfolio()
	if got := p.Positions[0].CurrentPrice; got != 195 {
		t.Errorf("position current price changed on quote upsert: %v", got)
	}
	if got := p.Positions[0].Value; got != 9750 {
		t.Errorf("position value changed on quote upsert: %v", got)
	}
}

func TestWatchlistSetSemantics(t *testing.T) {
	s := NewStore()

	def := []string{"AAPL", "GOOGL", "MSFT", "TSLA", "NVDA"}
	if got := s.Watchlist(); !reflect.DeepEqual(got, def) {
		t.Fatalf("default watchlist = %v, want %v", got, def)
	}

	// Adding a present symbol is a no-op.
	s.AddToWatchlist("TSLA")
	if got := s.Watchlist(); !reflect.DeepEqual(got, def) {
		t.Errorf("watchlist after duplicate add = %v, want %v", got, def)
	}

	s.AddToWatchlist("AMZN")
	s.AddToWatchlist("AMZN")
	got := s.Watchlist()
	count := 0
	for _, sym := range got {
		if sym == "AMZN" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("AMZN appears %d times, want 1", count)
	}

	// Removing an absent symbol leaves the list unchanged.
	before := s.Watchlist()
	s.RemoveFromWatchlist("ZZZZ")
	if got := s.Watchlist(); !reflect.DeepEqual(got, before) {
		t.Errorf("watchlist changed on absent remove: %v", got)
	}

	s.RemoveFromWatchlist("MSFT")
	for _, sym := range s.Watchlist() {
		if sym == "MSFT" {
			t.Error("MSFT still present after remove")
		}
	}
}

func TestRecordOrderPrepends(t *testing.T) {
	s := NewStore()

	first := Order{ID: "o1", Symbol: "AAPL", Side: SideBuy, Quantity: 1, Status: StatusPending, CreatedAt: time.Now()}
	second := Order{ID: "o2", Symbol: "TSLA", Side: SideSell, Quantity: 2, Status: StatusPending, CreatedAt: time.Now()}
	third := Order{ID: "o3", Symbol: "NVDA", Side: SideBuy, Quantity: 3, Status: StatusPending, CreatedAt: time.Now()}

	s.RecordOrder(first)
	s.RecordOrder(second)
	s.RecordOrder(third)

	orders := s.Portfolio().Orders
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for i, want := range []string{"o3", "o2", "o1"} {
		if orders[i].ID != want {
			t.Errorf("orders[%d].ID = %s, want %s", i, orders[i].ID, want)
		}
	}
}

func TestRecordOrderDoesNotAdjustLedger(t *testing.T) {
	s := NewStore()
	before := s.Portfolio()

	s.RecordOrder(Order{ID: "o1", Symbol: "AAPL", Side: SideBuy, Quantity: 10, Price: 195})

	after := s.Portfolio()
	if after.Cash != before.Cash || after.TotalValue != before.TotalValue || after.BuyingPower != before.BuyingPower {
		t.Errorf("ledger fields changed on record: before %+v after %+v", before, after)
	}
}

func TestMarkOrderStatus(t *testing.T) {
	s := NewStore()
	s.RecordOrder(Order{ID: "o1", Status: StatusPending})

	if !s.MarkOrderStatus("o1", StatusCancelled) {
		t.Fatal("MarkOrderStatus returned false for recorded order")
	}
	if got := s.Portfolio().Orders[0].Status; got != StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", got)
	}
	if s.MarkOrderStatus("missing", StatusFilled) {
		t.Error("MarkOrderStatus returned true for unknown id")
	}
}

func TestReplacePortfolioLastCallWins(t *testing.T) {
	s := NewStore()
	s.RecordOrder(Order{ID: "o1"})

	s.ReplacePortfolio(Portfolio{Cash: 85000, TotalValue: 125000, BuyingPower: 85000})

	p := s.Portfolio()
	if p.Cash != 85000 || p.TotalValue != 125000 {
		t.Errorf("portfolio not replaced: %+v", p)
	}
	// Wholesale replace drops previously recorded orders; no merge logic.
	if len(p.Orders) != 0 {
		t.Errorf("expected no orders after wholesale replace, got %d", len(p.Orders))
	}
}

func TestSelectInstrument(t *testing.T) {
	s := NewStore()

	if s.SelectedInstrument() != nil {
		t.Fatal("fresh store has a selection")
	}

	// Selection may reference a quote not present in the quote map.
	s.SelectInstrument(&Quote{Symbol: "ZZZZ", Price: 12.34})
	sel := s.SelectedInstrument()
	if sel == nil || sel.Symbol != "ZZZZ" {
		t.Fatalf("selection = %+v", sel)
	}
	if _, ok := s.Quote("ZZZZ"); ok {
		t.Error("selection leaked into the quote map")
	}

	s.SelectInstrument(nil)
	if s.SelectedInstrument() != nil {
		t.Error("selection not cleared")
	}
}

func TestPortfolioReturnsCopy(t *testing.T) {
	s := NewStore()
	s.RecordOrder(Order{ID: "o1", Status: StatusPending})

	p := s.Portfolio()
	p.Orders[0].Status = StatusFilled

	if got := s.Portfolio().Orders[0].Status; got != StatusPending {
		t.Errorf("mutating the returned snapshot leaked into the store: %s", got)
	}
}
