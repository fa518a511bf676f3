package loader

import (
	"context"
	"time"

	"marketdash/pkg/yahoo"
)

// MarketData is the price feed the loaders read from. *yahoo.Client satisfies it.
// Implementations are called once per instrument per load with no batching.
type MarketData interface {
	DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]yahoo.Bar, error)
	RecentBars(ctx context.Context, symbol string, days int) ([]yahoo.Bar, error)
	Quote(ctx context.Context, symbol string) (*yahoo.Quote, error)
}

var _ MarketData = (*yahoo.Client)(nil)
