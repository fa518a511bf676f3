package yahoo

// Interval is the bar size accepted by the chart endpoint.
type Interval string

// Range is a relative lookback accepted by the chart endpoint instead of period1/period2.
type Range string

const (
	IntervalDaily Interval = "1d"

	Range1Day Range = "1d"
)
