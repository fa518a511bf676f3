package loader

import (
	"context"

	"marketdash/internal/dashboard/memorystore"
	"marketdash/pkg/yahoo"

	"go.uber.org/zap"
)

// IndexDef names a market index and its feed symbol.
type IndexDef struct {
	Name   string
	Symbol string
}

// DefaultIndices are the tracked equity indices, in display order.
var DefaultIndices = []IndexDef{
	{Name: "S&P 500", Symbol: "^GSPC"},
	{Name: "NASDAQ", Symbol: "^IXIC"},
	{Name: "DJIA", Symbol: "^DJI"},
	{Name: "FTSE 100", Symbol: "^FTSE"},
	{Name: "DAX", Symbol: "^GDAXI"},
	{Name: "CAC 40", Symbol: "^FCHI"},
	{Name: "Nikkei 225", Symbol: "^N225"},
	{Name: "Shanghai", Symbol: "000001.SS"},
	{Name: "Hang Seng", Symbol: "^HSI"},
}

// DefaultPolicyRates are maintained by hand and may lag actual decisions.
var DefaultPolicyRates = []memorystore.PolicyRate{
	{Bank: "Fed", Rate: 5.5},
	{Bank: "ECB", Rate: 4.5},
	{Bank: "BOE", Rate: 5.25},
	{Bank: "BOJ", Rate: -0.1},
}

// DefaultStressIndicators are static reference levels, not fetched.
var DefaultStressIndicators = []memorystore.ReferenceValue{
	{Name: "VIX", Value: 18.5, Status: "Normal"},
	{Name: "Credit Spread", Value: 1.2, Status: "Normal"},
	{Name: "USD Index", Value: 104.2, Status: "Normal"},
}

const policyRatesNote = "Policy rates are updated manually and may not reflect the latest decisions."

type MacroLoader struct {
	Source  MarketData
	Logger  *zap.Logger
	Indices []IndexDef
}

// Load reads the level of every index and attaches the static reference tables.
// An index that cannot be read is marked unavailable; Load itself fails only on cancellation.
func (l *MacroLoader) Load(ctx context.Context) (memorystore.MacroSnapshot, error) {
	indices := l.Indices
	if indices == nil {
		indices = DefaultIndices
	}

	snap := memorystore.MacroSnapshot{
		Indices:          make([]memorystore.IndexQuote, 0, len(indices)),
		PolicyRates:      append([]memorystore.PolicyRate(nil), DefaultPolicyRates...),
		RatesStale:       true,
		RatesNote:        policyRatesNote,
		StressIndicators: append([]memorystore.ReferenceValue(nil), DefaultStressIndicators...),
	}

	for _, idx := range indices {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		snap.Indices = append(snap.Indices, l.loadIndex(ctx, idx))
	}
	return snap, nil
}

func (l *MacroLoader) loadIndex(ctx context.Context, idx IndexDef) memorystore.IndexQuote {
	out := memorystore.IndexQuote{Name: idx.Name, Symbol: idx.Symbol}

	q, err := l.Source.Quote(ctx, idx.Symbol)
	if err != nil {
		l.Logger.Debug("index quote failed", zap.String("index", idx.Name), zap.Error(err))
		return out
	}

	if q.Price != nil {
		out.Value, out.Available, out.Source = *q.Price, true, "live"
		return out
	}
	if v, ok := yahoo.LastClose(q.Bars); ok {
		out.Value, out.Available, out.Source = v, true, "close"
		return out
	}

	l.Logger.Debug("index quote has no price", zap.String("index", idx.Name))
	return out
}
