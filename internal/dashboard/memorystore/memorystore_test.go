package memorystore

import (
	"sync"
	"testing"
	"time"

	"marketdash/internal/dashboard/registry"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

// go test -v --run TestHistoryStoreReplace
func TestHistoryStoreReplace(t *testing.T) {
	store := NewHistoryStore()
	store.Replace(registry.FamilyCurrencies, []HistoricalPoint{
		{Code: "EUR", Date: day(3), Close: 1.1},
		{Code: "GBP", Date: day(2), Close: 1.2},
		{Code: "EUR", Date: day(2), Close: 1.0},
	}, []string{"JPY"})

	eur := store.GetByCode(registry.FamilyCurrencies, "EUR")
	if len(eur) != 2 || !eur[0].Date.Equal(day(2)) {
		t.Fatalf("expected EUR sorted by date, got %+v", eur)
	}

	all := store.GetFamily(registry.FamilyCurrencies)
	if len(all) != 3 || all[0].Code != "EUR" || all[2].Code != "GBP" {
		t.Errorf("unexpected family table order: %+v", all)
	}
	if got := store.CountAll(); got != 3 {
		t.Errorf("expected 3 points, got %d", got)
	}
	if failed := store.Failed(registry.FamilyCurrencies); len(failed) != 1 || failed[0] != "JPY" {
		t.Errorf("unexpected failed list: %v", failed)
	}

	// copies are detached
	eur[0].Close = 99
	if store.GetByCode(registry.FamilyCurrencies, "EUR")[0].Close == 99 {
		t.Error("store mutated through returned slice")
	}

	if store.GetFamily(registry.FamilyCommodities) != nil {
		t.Error("expected nil for unloaded family")
	}
}

// go test -v --run TestStateStore
func TestStateStore(t *testing.T) {
	store := NewStateStore()
	if store.Load() != nil {
		t.Fatal("expected nil state before first store")
	}
	st := &State{CycleID: "a"}
	store.Store(st)
	if store.Load().CycleID != "a" {
		t.Error("unexpected state after store")
	}

	var empty *State
	if tbl := empty.Table(registry.FamilyCurrencies); tbl == nil || len(tbl.Rows) != 0 {
		t.Error("expected empty table from nil state")
	}
}

// go test -v --run TestIndexQuoteDisplay
func TestIndexQuoteDisplay(t *testing.T) {
	cases := []struct {
		q    IndexQuote
		want string
	}{
		{IndexQuote{Value: 38123.6, Available: true}, "38,124"},
		{IndexQuote{Value: 999.2, Available: true}, "999"},
		{IndexQuote{Value: 1234567, Available: true}, "1,234,567"},
		{IndexQuote{Value: -1500, Available: true}, "-1,500"},
		{IndexQuote{Value: -0.4, Available: true}, "0"},
		{IndexQuote{Value: 19999.5, Available: true}, "20,000"},
		{IndexQuote{Available: false}, Unavailable},
	}
	for _, c := range cases {
		if got := c.q.Display(); got != c.want {
			t.Errorf("Display(%v) = %q, want %q", c.q.Value, got, c.want)
		}
	}
}

// go test -v --run TestIndexQuoteDisplayConcurrent
func TestIndexQuoteDisplayConcurrent(t *testing.T) {
	q := IndexQuote{Value: 5123456.2, Available: true}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got := q.Display(); got != "5,123,456" {
					t.Errorf("Display() = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
