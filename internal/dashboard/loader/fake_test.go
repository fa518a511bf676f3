package loader

import (
	"context"
	"errors"
	"time"

	"marketdash/pkg/yahoo"
)

var errFeed = errors.New("feed unavailable")

type fakeSource struct {
	bars   map[string][]yahoo.Bar
	quotes map[string]*yahoo.Quote
	fail   map[string]bool
	calls  []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		bars:   map[string][]yahoo.Bar{},
		quotes: map[string]*yahoo.Quote{},
		fail:   map[string]bool{},
	}
}

func (f *fakeSource) DailyBars(_ context.Context, symbol string, _, _ time.Time) ([]yahoo.Bar, error) {
	f.calls = append(f.calls, symbol)
	if f.fail[symbol] {
		return nil, errFeed
	}
	if bars, ok := f.bars[symbol]; ok {
		return bars, nil
	}
	return nil, yahoo.ErrNoData
}

func (f *fakeSource) RecentBars(ctx context.Context, symbol string, _ int) ([]yahoo.Bar, error) {
	return f.DailyBars(ctx, symbol, time.Time{}, time.Time{})
}

func (f *fakeSource) Quote(_ context.Context, symbol string) (*yahoo.Quote, error) {
	f.calls = append(f.calls, symbol)
	if f.fail[symbol] {
		return nil, errFeed
	}
	if q, ok := f.quotes[symbol]; ok {
		return q, nil
	}
	return nil, yahoo.ErrNoData
}

func p(v float64) *float64 { return &v }

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

// bar builds a bar with high/low one unit around close.
func bar(d int, closePrice float64) yahoo.Bar {
	return yahoo.Bar{Date: day(d), High: p(closePrice + 1), Low: p(closePrice - 1), Close: p(closePrice), Volume: p(100)}
}

func closesBars(closes ...float64) []yahoo.Bar {
	out := make([]yahoo.Bar, len(closes))
	for i, c := range closes {
		out[i] = bar(i+1, c)
		out[i].Volume = p(float64(10 * (i + 1)))
	}
	return out
}
