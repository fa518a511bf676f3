package registry

import (
	"fmt"
)

// Family groups instruments that are loaded, summarized and alerted on together.
type Family string

const (
	FamilyCurrencies  Family = "currencies"
	FamilyCommodities Family = "commodities"
)

// Families lists every family in display order.
var Families = []Family{FamilyCurrencies, FamilyCommodities}

// ParseFamily parses a family name as used in URLs and config.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyCurrencies:
		return FamilyCurrencies, nil
	case FamilyCommodities:
		return FamilyCommodities, nil
	}
	return "", fmt.Errorf("unknown family: %q", s)
}

// Category classifies an instrument for display.
type Category string

const (
	CategoryFiat            Category = "fiat currency"
	CategoryEnergy          Category = "energy"
	CategoryPreciousMetal   Category = "precious metal"
	CategoryIndustrialMetal Category = "industrial metal"
	CategoryAgricultural    Category = "agricultural"
	CategoryCrypto          Category = "crypto"
)

// Instrument is the static metadata of a tracked instrument.
type Instrument struct {
	Code       string   `json:"code"` // e.g. "EUR", "GOLD"
	Name       string   `json:"name"` // display name (country for currencies)
	Family     Family   `json:"family"`
	Category   Category `json:"category"`
	Region     string   `json:"region"`      // currencies only
	Unit       string   `json:"unit"`        // unit of quotation, e.g. "USD/oz"
	Flag       string   `json:"flag"`        // currencies only, display
	FeedSymbol string   `json:"feed_symbol"` // provider ticker, e.g. "EURUSD=X"
}

// Group is the column used to bucket rows on screen: region for currencies, category otherwise.
func (i Instrument) Group() string {
	if i.Family == FamilyCurrencies {
		return i.Region
	}
	return string(i.Category)
}

// Registry holds the instrument lists per family in declaration order.
type Registry struct {
	families map[Family][]Instrument
}

// New builds a registry from per-family instrument lists and validates it.
func New(currencies, commodities []Instrument) (*Registry, error) {
	r := &Registry{
		families: map[Family][]Instrument{
			FamilyCurrencies:  currencies,
			FamilyCommodities: commodities,
		},
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that codes are unique within each family and every instrument has a feed symbol.
func (r *Registry) Validate() error {
	for family, list := range r.families {
		seen := make(map[string]bool, len(list))
		for _, inst := range list {
			if inst.Code == "" {
				return fmt.Errorf("%s: instrument with empty code", family)
			}
			if inst.FeedSymbol == "" {
				return fmt.Errorf("%s: %s has no feed symbol", family, inst.Code)
			}
			if inst.Family != family {
				return fmt.Errorf("%s: %s declared in family %q", family, inst.Code, inst.Family)
			}
			if seen[inst.Code] {
				return fmt.Errorf("%s: duplicate code %s", family, inst.Code)
			}
			seen[inst.Code] = true
		}
	}
	return nil
}

// Instruments returns a copy of the instruments of a family.
func (r *Registry) Instruments(f Family) []Instrument {
	list := r.families[f]
	out := make([]Instrument, len(list))
	copy(out, list)
	return out
}

// Currencies returns the currency instruments.
func (r *Registry) Currencies() []Instrument { return r.Instruments(FamilyCurrencies) }

// Commodities returns the commodity and crypto instruments.
func (r *Registry) Commodities() []Instrument { return r.Instruments(FamilyCommodities) }

// Lookup finds an instrument by family and code.
func (r *Registry) Lookup(f Family, code string) (Instrument, bool) {
	for _, inst := range r.families[f] {
		if inst.Code == code {
			return inst, true
		}
	}
	return Instrument{}, false
}
