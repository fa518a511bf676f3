package yahoo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrNoData means the provider answered but had no sessions for the symbol and range.
	ErrNoData = errors.New("yahoo: no data")
	// ErrMalformed means the payload could not be interpreted as a chart.
	ErrMalformed = errors.New("yahoo: malformed response")
)

const chartPath = "/v8/finance/chart/{symbol}"

// Options configures a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	UserAgent    string
	APIKeyHeader string // optional, for keyed proxies in front of the chart API
	APIKey       string
}

// Client is a minimal Yahoo Finance chart API client.
type Client struct {
	http *resty.Client
}

func NewClient(opts Options) *Client {
	c := resty.New()
	c.SetBaseURL(opts.BaseURL)
	c.SetTimeout(opts.Timeout)
	c.SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.APIKeyHeader != "" && opts.APIKey != "" {
		c.SetHeader(opts.APIKeyHeader, opts.APIKey)
	}

	return &Client{http: c}
}

// DailyBars fetches daily bars for symbol in [start, end).
func (c *Client) DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	res, err := c.chart(ctx, symbol, map[string]string{
		"period1":  strconv.FormatInt(start.Unix(), 10),
		"period2":  strconv.FormatInt(end.Unix(), 10),
		"interval": string(IntervalDaily),
	})
	if err != nil {
		return nil, err
	}
	return ParseBars(res)
}

// RecentBars fetches daily bars covering the last `days` calendar days.
func (c *Client) RecentBars(ctx context.Context, symbol string, days int) ([]Bar, error) {
	if days <= 0 {
		return nil, fmt.Errorf("invalid lookback: %d days", days)
	}
	end := time.Now()
	return c.DailyBars(ctx, symbol, end.AddDate(0, 0, -days), end)
}

// Quote fetches the live price (when exposed) together with the current session's bar.
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	res, err := c.chart(ctx, symbol, map[string]string{
		"range":    string(Range1Day),
		"interval": string(IntervalDaily),
	})
	if err != nil {
		return nil, err
	}

	q := &Quote{
		Symbol:      symbol,
		Price:       res.Meta.RegularMarketPrice,
		RetrievedAt: time.Now(),
	}
	// A live price without bars is still a usable quote.
	bars, err := ParseBars(res)
	if err != nil && !errors.Is(err, ErrNoData) {
		return nil, err
	}
	q.Bars = bars
	if q.Price == nil && len(q.Bars) == 0 {
		return nil, ErrNoData
	}
	return q, nil
}

func (c *Client) chart(ctx context.Context, symbol string, params map[string]string) (ChartResult, error) {
	var body, failure ChartResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(params).
		ForceContentType("application/json").
		SetResult(&body).
		SetError(&failure).
		Get(chartPath)
	if err != nil {
		// A status code means the transport worked and only the body failed to decode.
		if resp == nil || resp.StatusCode() == 0 {
			return ChartResult{}, fmt.Errorf("http request failed: %w", err)
		}
		if resp.IsError() {
			return ChartResult{}, fmt.Errorf("yahoo error: status %d: %s", resp.StatusCode(), resp.String())
		}
		return ChartResult{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if resp.IsError() {
		if failure.Chart.Error != nil {
			return ChartResult{}, chartError(symbol, failure.Chart.Error)
		}
		return ChartResult{}, fmt.Errorf("yahoo error: status %d", resp.StatusCode())
	}
	if body.Chart.Error != nil {
		return ChartResult{}, chartError(symbol, body.Chart.Error)
	}
	if len(body.Chart.Result) == 0 {
		return ChartResult{}, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	return body.Chart.Result[0], nil
}

func chartError(symbol string, e *ChartError) error {
	if e.Code == "Not Found" {
		return fmt.Errorf("%w: %s: %s", ErrNoData, symbol, e.Description)
	}
	return fmt.Errorf("yahoo error: %s: %s", e.Code, e.Description)
}
