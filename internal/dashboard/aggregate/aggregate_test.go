package aggregate

import (
	"testing"

	"marketdash/internal/dashboard/memorystore"
	"marketdash/internal/dashboard/registry"
)

func rows(changes ...float64) []memorystore.Snapshot {
	out := make([]memorystore.Snapshot, len(changes))
	for i, c := range changes {
		out[i] = memorystore.Snapshot{Code: string(rune('A' + i)), ChangePct: c, Volume: float64(i + 1)}
	}
	return out
}

// go test -v --run TestTopMovers
func TestTopMovers(t *testing.T) {
	got := TopMovers(rows(5.0, -3.0, 2.0, 8.0, 0.0), 3)
	want := []float64{8.0, 5.0, 2.0}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ChangePct != want[i] {
			t.Errorf("row %d: got %v, want %v", i, got[i].ChangePct, want[i])
		}
	}
}

// go test -v --run TestTopMoversTiesAndBounds
func TestTopMoversTiesAndBounds(t *testing.T) {
	in := rows(1.0, 3.0, 1.0, 3.0)
	got := TopMovers(in, 10)
	order := []string{"B", "D", "A", "C"}
	for i, code := range order {
		if got[i].Code != code {
			t.Errorf("position %d: got %s, want %s", i, got[i].Code, code)
		}
	}
	if in[0].Code != "A" {
		t.Error("input was reordered")
	}
	if len(TopMovers(in, 0)) != 0 || len(TopMovers(nil, 3)) != 0 {
		t.Error("expected empty result for n=0 or empty input")
	}
}

// go test -v --run TestAlerts
func TestAlerts(t *testing.T) {
	got := Alerts(rows(4.0, -2.0, 3.0, -5.5), 3.0)
	if len(got) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %+v", len(got), got)
	}
	if got[0].ChangePct != 4.0 || got[1].ChangePct != -5.5 {
		t.Errorf("unexpected alerts: %+v", got)
	}
}

// go test -v --run TestMeanAndVolume
func TestMeanAndVolume(t *testing.T) {
	in := rows(1.0, 2.0, 6.0)
	if got := MeanChange(in); got != 3.0 {
		t.Errorf("mean: got %v, want 3", got)
	}
	if got := TotalVolume(in); got != 6.0 {
		t.Errorf("volume: got %v, want 6", got)
	}
	if MeanChange(nil) != 0 || TotalVolume(nil) != 0 {
		t.Error("expected zero for empty table")
	}
}

// go test -v --run TestSummarize
func TestSummarize(t *testing.T) {
	s := Summarize(rows(5.0, -3.0, 2.0, 8.0, 0.0), 2)
	if s.Count != 5 || len(s.TopMovers) != 2 || s.TopMovers[0].ChangePct != 8.0 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.TotalVolume != 15 {
		t.Errorf("unexpected total volume: %v", s.TotalVolume)
	}
}

// go test -v --run TestAlertLine
func TestAlertLine(t *testing.T) {
	cases := []struct {
		family registry.Family
		row    memorystore.Snapshot
		want   string
	}{
		{registry.FamilyCommodities, memorystore.Snapshot{Code: "GOLD", ChangePct: -5.5}, "🛢️ GOLD: -5.50%"},
		{registry.FamilyCurrencies, memorystore.Snapshot{Code: "EUR", Flag: "🇪🇺", ChangePct: 4}, "🇪🇺 EUR: +4.00%"},
		{registry.FamilyCurrencies, memorystore.Snapshot{Code: "XAU", ChangePct: 3.1}, "XAU: +3.10%"},
	}
	for _, c := range cases {
		if got := AlertLine(c.family, c.row); got != c.want {
			t.Errorf("AlertLine(%s, %s) = %q, want %q", c.family, c.row.Code, got, c.want)
		}
	}
}

// go test -v --run TestFailureWarning
func TestFailureWarning(t *testing.T) {
	if got := FailureWarning("currencies", []string{"JPY", "RUB"}); got != "failed to load currencies: JPY, RUB" {
		t.Errorf("unexpected warning: %q", got)
	}
	if FailureWarning("currencies", nil) != "" {
		t.Error("expected empty warning")
	}
}
