package loader

import (
	"context"
	"time"

	"marketdash/internal/dashboard/memorystore"
	"marketdash/internal/dashboard/registry"
	"marketdash/pkg/yahoo"

	"go.uber.org/zap"
)

// HistoryResult is the long-form table of one batch plus the codes that produced nothing.
type HistoryResult struct {
	Points []memorystore.HistoricalPoint
	Failed []string
}

type HistoryLoader struct {
	Source MarketData
	Logger *zap.Logger
}

// Load fetches the daily series of every instrument over [start, end].
// A failing instrument is recorded in Failed and the batch continues; the only error returned
// is the context's, together with whatever was loaded before cancellation.
func (l *HistoryLoader) Load(ctx context.Context, instruments []registry.Instrument,
	start, end time.Time) (HistoryResult, error) {
	var res HistoryResult

	for _, inst := range instruments {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		bars, err := l.Source.DailyBars(ctx, inst.FeedSymbol, start, end)
		if err != nil {
			l.Logger.Debug("history fetch failed", zap.String("code", inst.Code),
				zap.String("symbol", inst.FeedSymbol), zap.Error(err))
			res.Failed = append(res.Failed, inst.Code)
			continue
		}

		points := HistoricalPoints(inst, bars)
		if len(points) == 0 {
			l.Logger.Debug("history has no usable closes", zap.String("code", inst.Code),
				zap.Int("bars", len(bars)))
			res.Failed = append(res.Failed, inst.Code)
			continue
		}
		res.Points = append(res.Points, points...)
	}

	return res, nil
}

// HistoricalPoints converts bars into points, dropping sessions without a positive close
// and repeated dates (the first occurrence wins).
func HistoricalPoints(inst registry.Instrument, bars []yahoo.Bar) []memorystore.HistoricalPoint {
	out := make([]memorystore.HistoricalPoint, 0, len(bars))
	seen := make(map[time.Time]bool, len(bars))

	for _, b := range bars {
		if b.Close == nil || *b.Close <= 0 {
			continue
		}
		if seen[b.Date] {
			continue
		}
		seen[b.Date] = true

		out = append(out, memorystore.HistoricalPoint{
			Code:          inst.Code,
			Name:          inst.Name,
			Group:         inst.Group(),
			Date:          b.Date,
			Close:         *b.Close,
			DayVolatility: DayVolatility(b.High, b.Low, *b.Close),
		})
	}
	return out
}

// DayVolatility is (high-low)/close*100, or 0 when close is 0 or either bound is missing.
func DayVolatility(high, low *float64, closePrice float64) float64 {
	if closePrice == 0 || high == nil || low == nil {
		return 0
	}
	return (*high - *low) / closePrice * 100
}
