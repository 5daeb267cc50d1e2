package quotes

import (
	"context"
	"encoding/json"

	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

// Source is the fail-open quote capability handed to the rest of the
// system: transport and parse failures at the vendor boundary degrade to
// generated data and are never surfaced as errors. A nil client means
// mock-only operation.
type Source struct {
	client *Client
	mock   *Generator
	logger *logger.Logger
}

func NewSource(client *Client, log *logger.Logger) *Source {
	return &Source{
		client: client,
		mock:   NewGenerator(),
		logger: log,
	}
}

func (s *Source) FetchQuote(ctx context.Context, symbol string) trading.Quote {
	if s.client != nil {
		q, err := s.client.GetQuote(ctx, symbol)
		if err == nil {
			return q
		}
		s.logger.Warn("quote fetch failed, falling back to mock data",
			"symbol", symbol, "error", err)
	}
	return s.mock.Quote(symbol)
}

// Intraday returns nil when the series cannot be fetched.
func (s *Source) Intraday(ctx context.Context, symbol string) json.RawMessage {
	if s.client == nil {
		return nil
	}
	series, err := s.client.GetIntraday(ctx, symbol)
	if err != nil {
		s.logger.Warn("intraday fetch failed", "symbol", symbol, "error", err)
		return nil
	}
	return series
}

// Daily returns nil when the series cannot be fetched.
func (s *Source) Daily(ctx context.Context, symbol string) json.RawMessage {
	if s.client == nil {
		return nil
	}
	series, err := s.client.GetDaily(ctx, symbol)
	if err != nil {
		s.logger.Warn("daily fetch failed", "symbol", symbol, "error", err)
		return nil
	}
	return series
}
