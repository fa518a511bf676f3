package loader

import (
	"context"
	"math"

	"marketdash/internal/dashboard/memorystore"
	"marketdash/internal/dashboard/registry"
	"marketdash/pkg/yahoo"

	"go.uber.org/zap"
)

// DefaultLookbackDays is the calendar window fetched for a snapshot.
const DefaultLookbackDays = 5

// SnapshotResult is one family's snapshot table. Omitted lists instruments that returned
// fewer than two closes or failed outright; they are not reported as errors.
type SnapshotResult struct {
	Rows    []memorystore.Snapshot
	Omitted []string
}

type SnapshotLoader struct {
	Source       MarketData
	Logger       *zap.Logger
	LookbackDays int
}

// Load builds one snapshot row per instrument that has at least two closes in the lookback window.
func (l *SnapshotLoader) Load(ctx context.Context, instruments []registry.Instrument) (SnapshotResult, error) {
	days := l.LookbackDays
	if days <= 0 {
		days = DefaultLookbackDays
	}

	var res SnapshotResult
	for _, inst := range instruments {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		bars, err := l.Source.RecentBars(ctx, inst.FeedSymbol, days)
		if err != nil {
			l.Logger.Debug("snapshot fetch failed", zap.String("code", inst.Code), zap.Error(err))
			res.Omitted = append(res.Omitted, inst.Code)
			continue
		}

		row, ok := BuildSnapshot(inst, bars)
		if !ok {
			l.Logger.Debug("snapshot skipped, fewer than two closes", zap.String("code", inst.Code),
				zap.Int("bars", len(bars)))
			res.Omitted = append(res.Omitted, inst.Code)
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	return res, nil
}

// BuildSnapshot derives a snapshot row from recent bars. Sessions with a null close are ignored.
// It reports false when fewer than two closes remain.
func BuildSnapshot(inst registry.Instrument, bars []yahoo.Bar) (memorystore.Snapshot, bool) {
	var closes []float64
	var lastVolume float64
	for _, b := range bars {
		if b.Close == nil {
			continue
		}
		closes = append(closes, *b.Close)
		lastVolume = 0
		if b.Volume != nil {
			lastVolume = *b.Volume
		}
	}
	if len(closes) < 2 {
		return memorystore.Snapshot{}, false
	}

	last := closes[len(closes)-1]
	prev := closes[len(closes)-2]

	return memorystore.Snapshot{
		Code:       inst.Code,
		Name:       inst.Name,
		Group:      inst.Group(),
		Unit:       inst.Unit,
		Flag:       inst.Flag,
		Price:      last,
		PrevClose:  prev,
		ChangePct:  PercentChange(prev, last),
		Volatility: SampleStdDev(Returns(closes)) * 100,
		Volume:     lastVolume,
	}, true
}

// PercentChange is (last-prev)/prev*100, defined as 0 when prev is 0.
func PercentChange(prev, last float64) float64 {
	if prev == 0 {
		return 0
	}
	return (last - prev) / prev * 100
}

// Returns is the fractional change between consecutive closes; a zero base yields 0.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out = append(out, PercentChange(closes[i-1], closes[i])/100)
	}
	return out
}

// SampleStdDev is the n-1 standard deviation; 0 for fewer than two values.
func SampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
