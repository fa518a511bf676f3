package yahoo

import "time"

// ChartResponse is the envelope returned by the v8 chart endpoint.
// Both successful and failed lookups use the same shape; exactly one of Result or Error is set.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

type ChartError struct {
	Code        string `json:"code"`        // e.g. "Not Found"
	Description string `json:"description"` // e.g. "No data found, symbol may be delisted"
}

type ChartResult struct {
	Meta       ChartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"` // session open, seconds since epoch
	Indicators struct {
		Quote []QuoteSeries `json:"quote"`
	} `json:"indicators"`
}

type ChartMeta struct {
	Currency             string   `json:"currency"`
	Symbol               string   `json:"symbol"`
	ExchangeName         string   `json:"exchangeName"`
	InstrumentType       string   `json:"instrumentType"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	ChartPreviousClose   *float64 `json:"chartPreviousClose"`
	GMTOffset            int      `json:"gmtoffset"` // seconds east of UTC
	Timezone             string   `json:"timezone"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
}

// QuoteSeries holds column-oriented OHLCV values aligned with ChartResult.Timestamp.
// Any element may be null when the provider has no print for that session.
type QuoteSeries struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// Bar is one daily OHLCV row. Nil fields were null in the feed.
type Bar struct {
	Date   time.Time // trading day, midnight UTC
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *float64
}

// Quote is the latest known state of a symbol: a live price if the provider exposes one,
// and the most recent daily bars as a fallback.
type Quote struct {
	Symbol      string
	Price       *float64 // regularMarketPrice; nil when absent
	Bars        []Bar
	RetrievedAt time.Time
}
