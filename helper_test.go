package plusvalia

import "time"

// day is a helper for tests to build a UTC timestamp on a given day.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// staticPrices is a PriceLookup serving fixed per-asset prices.
type staticPrices map[string]Money

func (p staticPrices) PriceAt(asset, currency string, at time.Time) (Money, error) {
	m, ok := p[asset]
	if !ok {
		return Money{}, &PriceUnavailableError{Asset: asset, Currency: currency, At: at}
	}
	return m, nil
}
