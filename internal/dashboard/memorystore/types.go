package memorystore

import (
	"time"

	"marketdash/internal/dashboard/registry"
)

// HistoricalPoint is one trading day of one instrument in the long-form history table.
// Close is always > 0; sessions without a usable close never become points.
type HistoricalPoint struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Group         string    `json:"group"` // region for currencies, category otherwise
	Date          time.Time `json:"date"`
	Close         float64   `json:"close"`
	DayVolatility float64   `json:"day_volatility"` // (high-low)/close*100
}

// Snapshot is the latest known state of one instrument, recomputed from scratch every refresh.
type Snapshot struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Group      string  `json:"group"`
	Unit       string  `json:"unit"`
	Flag       string  `json:"flag,omitempty"`
	Price      float64 `json:"price"`      // latest close
	PrevClose  float64 `json:"prev_close"` // close before Price
	ChangePct  float64 `json:"change_pct"`
	Volatility float64 `json:"volatility"` // std-dev of daily pct-change over the lookback, x100
	Volume     float64 `json:"volume"`     // latest session volume
}

// IndexQuote is a market index level. Available is false when retrieval failed.
type IndexQuote struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
	Source    string  `json:"source,omitempty"` // "live" or "close"
}

// Display renders the level or the unavailable sentinel.
func (q IndexQuote) Display() string {
	if !q.Available {
		return Unavailable
	}
	return formatThousands(q.Value)
}

// Unavailable is rendered in place of an index value that could not be retrieved.
const Unavailable = "N/A"

// PolicyRate is a central bank rate kept as static reference data.
type PolicyRate struct {
	Bank string  `json:"bank"`
	Rate float64 `json:"rate"`
}

// ReferenceValue is a static indicator that is not fetched.
type ReferenceValue struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Status string  `json:"status"`
}

// MacroSnapshot pairs fetched index levels with static reference tables.
type MacroSnapshot struct {
	Indices          []IndexQuote     `json:"indices"`
	PolicyRates      []PolicyRate     `json:"policy_rates"`
	RatesStale       bool             `json:"rates_stale"`
	RatesNote        string           `json:"rates_note"`
	StressIndicators []ReferenceValue `json:"stress_indicators"`
}

// RiskScore is a generated regional risk figure. It is not sourced from any feed.
type RiskScore struct {
	Region string `json:"region"`
	Score  int    `json:"score"`
	Level  string `json:"level"`
}

// IndexMove is a generated index day-change. It is not sourced from any feed.
type IndexMove struct {
	Name      string  `json:"name"`
	ChangePct float64 `json:"change_pct"`
}

// Simulated groups every demo value shown on the dashboard. Consumers must label them as such.
type Simulated struct {
	Simulated   bool        `json:"simulated"`
	Note        string      `json:"note"`
	RiskScores  []RiskScore `json:"risk_scores"`
	IndexMoves  []IndexMove `json:"index_moves"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Summary is the cross-sectional aggregate of one family's snapshot table.
type Summary struct {
	Count       int        `json:"count"`
	MeanChange  float64    `json:"mean_change_pct"`
	TotalVolume float64    `json:"total_volume"`
	TopMovers   []Snapshot `json:"top_movers"`
}

// FamilyTable is the snapshot table of one family plus what was left out of it.
type FamilyTable struct {
	Family  registry.Family `json:"family"`
	Rows    []Snapshot      `json:"rows"`
	Omitted []string        `json:"omitted,omitempty"` // fewer than two closes retrieved
	Summary Summary         `json:"summary"`
}

// State is everything one refresh cycle produced. It is built once and never mutated after Store.
type State struct {
	CycleID     string                           `json:"cycle_id"`
	RefreshedAt time.Time                        `json:"refreshed_at"`
	Duration    time.Duration                    `json:"duration"`
	Tables      map[registry.Family]*FamilyTable `json:"tables"`
	Macro       MacroSnapshot                    `json:"macro"`
	Simulated   Simulated                        `json:"simulated"`
}

// Table returns the table of a family, or an empty one.
func (s *State) Table(f registry.Family) *FamilyTable {
	if s == nil || s.Tables[f] == nil {
		return &FamilyTable{Family: f}
	}
	return s.Tables[f]
}

// AlertGroup is the alert list of one family at a given threshold.
type AlertGroup struct {
	Family    registry.Family `json:"family"`
	Threshold float64         `json:"threshold"`
	Rows      []Snapshot      `json:"rows"`
	Lines     []string        `json:"lines"`
}
