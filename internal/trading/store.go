package trading

import "sync"

const (
	startingCash = 100000
)

func defaultWatchlist() []string {
	return []string{"AAPL", "GOOGL", "MSFT", "TSLA", "NVDA"}
}

// Store holds the shared trading state: the portfolio snapshot, the latest
// quote per symbol, watchlist membership and the currently selected
// instrument. Mutations are applied atomically under the lock.
//
// The store deliberately enforces no cross-field consistency: UpsertQuote
// does not touch positions, RecordOrder does not adjust cash or buying
// power. Only ReplacePortfolio re-establishes a consistent snapshot, from
// whatever authoritative source fetched it.
type Store struct {
	mu        sync.RWMutex
	portfolio Portfolio
	quotes    map[string]Quote
	watchlist []string
	selected  *Quote
}

func NewStore() *Store {
	return &Store{
		portfolio: Portfolio{
			Cash:        startingCash,
			TotalValue:  startingCash,
			BuyingPower: startingCash,
			Positions:   []Position{},
			Orders:      []Order{},
		},
		quotes:    make(map[string]Quote),
		watchlist: defaultWatchlist(),
	}
}

// ReplacePortfolio swaps in a wholesale snapshot. No merge logic, last
// call wins, orders included.
func (s *Store) ReplacePortfolio(p Portfolio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Positions == nil {
		p.Positions = []Position{}
	}
	if p.Orders == nil {
		p.Orders = []Order{}
	}
	s.portfolio = p
}

func (s *Store) Portfolio() Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.portfolio
	p.Positions = append([]Position(nil), s.portfolio.Positions...)
	p.Orders = append([]Order(nil), s.portfolio.Orders...)
	return p
}

// UpsertQuote inserts or replaces the quote for its symbol. Position
// fields referencing the same symbol are not recomputed.
func (s *Store) UpsertQuote(q Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.Symbol] = q
}

func (s *Store) Quote(symbol string) (Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[symbol]
	return q, ok
}

func (s *Store) Quotes() map[string]Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Quote, len(s.quotes))
	for k, v := range s.quotes {
		out[k] = v
	}
	return out
}

// AddToWatchlist appends the symbol unless it is already present.
func (s *Store) AddToWatchlist(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.watchlist {
		if w == symbol {
			return
		}
	}
	s.watchlist = append(s.watchlist, symbol)
}

// RemoveFromWatchlist is a no-op when the symbol is absent.
func (s *Store) RemoveFromWatchlist(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchlist {
		if w == symbol {
			s.watchlist = append(s.watchlist[:i], s.watchlist[i+1:]...)
			return
		}
	}
}

func (s *Store) Watchlist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.watchlist...)
}

// SelectInstrument sets or clears the selection. The quote is not required
// to exist in the quote map; selection may reference a quote not yet
// fetched.
func (s *Store) SelectInstrument(q *Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q == nil {
		s.selected = nil
		return
	}
	c := *q
	s.selected = &c
}

func (s *Store) SelectedInstrument() *Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	c := *s.selected
	return &c
}

// RecordOrder prepends the order, newest first. Cash, buying power and
// positions are left alone; settlement arrives via ReplacePortfolio.
func (s *Store) RecordOrder(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolio.Orders = append([]Order{o}, s.portfolio.Orders...)
}

// MarkOrderStatus transitions the status of the order with the given id.
// Returns false when no such order is recorded.
func (s *Store) MarkOrderStatus(id string, status Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.portfolio.Orders {
		if s.portfolio.Orders[i].ID == id {
			s.portfolio.Orders[i].Status = status
			return true
		}
	}
	return false
}
