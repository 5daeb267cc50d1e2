package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/isnorttestingpipelines/txm-web/internal/config"
	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

// ErrNoPrice marks an upstream response that parsed but carried no price
// field, which Alpha Vantage returns for unknown symbols and throttled
// keys alike.
var ErrNoPrice = errors.New("quote response missing price")

// Client fetches quotes and time series from the Alpha Vantage query API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.AlphaVantageTimeout()},
		baseURL:    cfg.AlphaVantage.BaseURL,
		apiKey:     cfg.AlphaVantage.APIKey,
		logger:     log,
	}
}

type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

func (c *Client) GetQuote(ctx context.Context, symbol string) (trading.Quote, error) {
	body, err := c.query(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
		"apikey":   {c.apiKey},
	})
	if err != nil {
		return trading.Quote{}, err
	}

	var resp globalQuoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return trading.Quote{}, fmt.Errorf("parse quote response: %w", err)
	}

	priceStr, ok := resp.GlobalQuote["05. price"]
	if !ok || priceStr == "" {
		return trading.Quote{}, ErrNoPrice
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return trading.Quote{}, fmt.Errorf("%w: bad price %q", ErrNoPrice, priceStr)
	}

	q := trading.Quote{
		Symbol: symbol,
		Price:  price,
	}
	if v := resp.GlobalQuote["09. change"]; v != "" {
		q.Change, _ = strconv.ParseFloat(v, 64)
	}
	if v := resp.GlobalQuote["10. change percent"]; v != "" {
		q.ChangePercent, _ = strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	}
	return q, nil
}

// GetIntraday returns the 15-minute intraday series as an opaque JSON
// document.
func (c *Client) GetIntraday(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.query(ctx, url.Values{
		"function": {"TIME_SERIES_INTRADAY"},
		"symbol":   {symbol},
		"interval": {"15min"},
		"apikey":   {c.apiKey},
	})
}

// GetDaily returns the daily series as an opaque JSON document.
func (c *Client) GetDaily(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.query(ctx, url.Values{
		"function": {"TIME_SERIES_DAILY"},
		"symbol":   {symbol},
		"apikey":   {c.apiKey},
	})
}

func (c *Client) query(ctx context.Context, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpha vantage returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
