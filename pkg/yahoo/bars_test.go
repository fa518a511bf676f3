package yahoo

import (
	"errors"
	"testing"
)

func f(v float64) *float64 { return &v }

// go test -v --run TestParseBarsShortColumns
func TestParseBarsShortColumns(t *testing.T) {
	var res ChartResult
	res.Timestamp = []int64{1704153600, 1704240000}
	res.Indicators.Quote = []QuoteSeries{{
		Close:  []*float64{f(10)},
		Volume: []*float64{f(5), f(6)},
	}}

	bars, err := ParseBars(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[1].Close != nil {
		t.Error("expected nil close for missing column entry")
	}
	if bars[1].Volume == nil || *bars[1].Volume != 6 {
		t.Error("unexpected volume on second bar")
	}
}

// go test -v --run TestParseBarsEmpty
func TestParseBarsEmpty(t *testing.T) {
	if _, err := ParseBars(ChartResult{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	var res ChartResult
	res.Timestamp = []int64{1704153600}
	if _, err := ParseBars(res); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

// go test -v --run TestLastClose
func TestLastClose(t *testing.T) {
	bars := []Bar{{Close: f(1)}, {Close: f(2)}, {Close: nil}}
	if v, ok := LastClose(bars); !ok || v != 2 {
		t.Errorf("expected 2, got %v %v", v, ok)
	}
	if _, ok := LastClose([]Bar{{}}); ok {
		t.Error("expected no close")
	}
}
