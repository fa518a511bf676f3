package registry

func currency(code, name, flag, symbol, region string) Instrument {
	return Instrument{
		Code:       code,
		Name:       name,
		Family:     FamilyCurrencies,
		Category:   CategoryFiat,
		Region:     region,
		Unit:       "USD",
		Flag:       flag,
		FeedSymbol: symbol,
	}
}

func commodity(code, name string, cat Category, unit, symbol string) Instrument {
	return Instrument{
		Code:       code,
		Name:       name,
		Family:     FamilyCommodities,
		Category:   cat,
		Unit:       unit,
		FeedSymbol: symbol,
	}
}

// DefaultCurrencies is the tracked set of currencies quoted against USD.
func DefaultCurrencies() []Instrument {
	return []Instrument{
		currency("EUR", "Euro Area", "🇪🇺", "EURUSD=X", "Europe"),
		currency("GBP", "United Kingdom", "🇬🇧", "GBPUSD=X", "Europe"),
		currency("JPY", "Japan", "🇯🇵", "JPY=X", "Asia"),
		currency("CHF", "Switzerland", "🇨🇭", "CHF=X", "Europe"),
		currency("CAD", "Canada", "🇨🇦", "CAD=X", "Americas"),
		currency("AUD", "Australia", "🇦🇺", "AUD=X", "Oceania"),
		currency("CNY", "China", "🇨🇳", "CNY=X", "Asia"),
		currency("NZD", "New Zealand", "🇳🇿", "NZD=X", "Oceania"),
		currency("SEK", "Sweden", "🇸🇪", "SEK=X", "Europe"),
		currency("NOK", "Norway", "🇳🇴", "NOK=X", "Europe"),
		currency("MXN", "Mexico", "🇲🇽", "MXN=X", "Americas"),
		currency("SGD", "Singapore", "🇸🇬", "SGD=X", "Asia"),
		currency("HKD", "Hong Kong", "🇭🇰", "HKD=X", "Asia"),
		currency("INR", "India", "🇮🇳", "INR=X", "Asia"),
		currency("ZAR", "South Africa", "🇿🇦", "ZAR=X", "Africa"),
		currency("TRY", "Turkey", "🇹🇷", "TRY=X", "Middle East"),
		currency("RUB", "Russia", "🇷🇺", "RUB=X", "Europe"),
		currency("BRL", "Brazil", "🇧🇷", "BRL=X", "Americas"),
	}
}

// DefaultCommodities is the tracked set of commodity futures and crypto assets.
func DefaultCommodities() []Instrument {
	return []Instrument{
		commodity("BRENT", "Brent Crude", CategoryEnergy, "USD/bbl", "BZ=F"),
		commodity("WTI", "WTI Crude", CategoryEnergy, "USD/bbl", "CL=F"),
		commodity("GAS", "Natural Gas", CategoryEnergy, "USD/MMBtu", "NG=F"),
		commodity("GOLD", "Gold", CategoryPreciousMetal, "USD/oz", "GC=F"),
		commodity("SILVER", "Silver", CategoryPreciousMetal, "USD/oz", "SI=F"),
		commodity("COPPER", "Copper", CategoryIndustrialMetal, "USD/lb", "HG=F"),
		commodity("WHEAT", "Wheat", CategoryAgricultural, "USD/bu", "ZW=F"),
		commodity("CORN", "Corn", CategoryAgricultural, "USD/bu", "ZC=F"),
		commodity("SOYBEANS", "Soybeans", CategoryAgricultural, "USD/bu", "ZS=F"),
		commodity("SUGAR", "Sugar", CategoryAgricultural, "USD/lb", "SB=F"),
		commodity("COFFEE", "Coffee", CategoryAgricultural, "USD/lb", "KC=F"),
		commodity("BTC", "Bitcoin", CategoryCrypto, "USD", "BTC-USD"),
		commodity("ETH", "Ethereum", CategoryCrypto, "USD", "ETH-USD"),
	}
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := New(DefaultCurrencies(), DefaultCommodities())
	if err != nil {
		// static tables; only reachable by editing them
		panic("registry: " + err.Error())
	}
	return r
}
