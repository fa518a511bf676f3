package registry

import "testing"

// go test -v --run TestDefaultRegistry
func TestDefaultRegistry(t *testing.T) {
	r := Default()

	if got := len(r.Currencies()); got != 18 {
		t.Errorf("expected 18 currencies, got %d", got)
	}
	if got := len(r.Commodities()); got != 13 {
		t.Errorf("expected 13 commodities, got %d", got)
	}

	for _, f := range Families {
		seen := map[string]bool{}
		for _, inst := range r.Instruments(f) {
			if seen[inst.Code] {
				t.Errorf("%s: duplicate code %s", f, inst.Code)
			}
			seen[inst.Code] = true
		}
	}

	eur, ok := r.Lookup(FamilyCurrencies, "EUR")
	if !ok || eur.FeedSymbol != "EURUSD=X" || eur.Group() != "Europe" {
		t.Errorf("unexpected EUR entry: %+v", eur)
	}
	gold, ok := r.Lookup(FamilyCommodities, "GOLD")
	if !ok || gold.Group() != string(CategoryPreciousMetal) {
		t.Errorf("unexpected GOLD entry: %+v", gold)
	}
}

// go test -v --run TestNewRejectsDuplicates
func TestNewRejectsDuplicates(t *testing.T) {
	dup := []Instrument{
		currency("EUR", "Euro Area", "", "EURUSD=X", "Europe"),
		currency("EUR", "Euro Area", "", "EURUSD=X", "Europe"),
	}
	if _, err := New(dup, nil); err == nil {
		t.Fatal("expected duplicate code error, got nil")
	}

	// same code across families is allowed
	cross := []Instrument{commodity("EUR", "Euro future", CategoryAgricultural, "USD", "6E=F")}
	if _, err := New(DefaultCurrencies(), cross); err != nil {
		t.Fatalf("unexpected error for cross-family code: %v", err)
	}
}

// go test -v --run TestNewRejectsMissingSymbol
func TestNewRejectsMissingSymbol(t *testing.T) {
	bad := []Instrument{commodity("GOLD", "Gold", CategoryPreciousMetal, "USD/oz", "")}
	if _, err := New(nil, bad); err == nil {
		t.Fatal("expected missing feed symbol error, got nil")
	}
}

// go test -v --run TestInstrumentsReturnsCopy
func TestInstrumentsReturnsCopy(t *testing.T) {
	r := Default()
	list := r.Currencies()
	list[0].Code = "XXX"
	if r.Currencies()[0].Code != "EUR" {
		t.Fatal("registry was mutated through returned slice")
	}
}

// go test -v --run TestParseFamily
func TestParseFamily(t *testing.T) {
	if f, err := ParseFamily("commodities"); err != nil || f != FamilyCommodities {
		t.Errorf("unexpected result: %v %v", f, err)
	}
	if _, err := ParseFamily("bonds"); err == nil {
		t.Error("expected error for unknown family")
	}
}
