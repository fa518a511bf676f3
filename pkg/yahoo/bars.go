package yahoo

import (
	"fmt"
	"time"
)

// ParseBars converts a column-oriented chart result into row-oriented daily bars.
// Sessions are dated in the exchange's own offset so that a Tokyo close is not shifted to the previous day.
// Rows are kept even when every value is null; filtering is up to the caller.
func ParseBars(res ChartResult) ([]Bar, error) {
	if len(res.Timestamp) == 0 {
		return nil, ErrNoData
	}
	if len(res.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: no quote indicators", ErrMalformed)
	}
	q := res.Indicators.Quote[0]

	loc := time.FixedZone(res.Meta.ExchangeTimezoneName, res.Meta.GMTOffset)

	out := make([]Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		local := time.Unix(ts, 0).In(loc)
		out = append(out, Bar{
			Date:   time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  at(q.Close, i),
			Volume: at(q.Volume, i),
		})
	}
	return out, nil
}

// at returns the i-th element or nil when the column is shorter than the timestamp list.
func at(col []*float64, i int) *float64 {
	if i >= len(col) {
		return nil
	}
	return col[i]
}

// LastClose returns the most recent non-null close.
func LastClose(bars []Bar) (float64, bool) {
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Close != nil {
			return *bars[i].Close, true
		}
	}
	return 0, false
}
