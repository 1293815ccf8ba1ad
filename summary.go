package plusvalia

import (
	"slices"
	"time"
)

// AssetGains aggregates one asset's disposals within a year.
type AssetGains struct {
	Asset     string
	Disposals int
	Proceeds  Money
	Cost      Money
	Gain      Money
}

// Holding is one asset's position after a replay: remaining quantity and its
// aggregate cost basis across all open lots.
type Holding struct {
	Asset     string
	Quantity  Quantity
	CostBasis Money
	AvgCost   Money // CostBasis / Quantity
	Lots      int
}

// YearSummary is the annual capital-gains picture: per-asset realized
// figures for the year, plus the income from staking rewards.
type YearSummary struct {
	Year      int
	Currency  string
	Assets    []AssetGains
	Disposals []Disposal // the year's disposals, chronological
	Proceeds  Money
	Cost      Money
	Gains     Money // sum of positive disposal results
	Losses    Money // sum of negative disposal results, as a positive magnitude
	NetGain   Money // Gains - Losses
	Income    Money // ordinary income from stake rewards received in the year
}

// Summarize filters a replay down to one calendar year and aggregates the
// realized gains per asset. Assets appear in ascending order.
func Summarize(res *Result, year int) YearSummary {
	s := YearSummary{Year: year, Currency: res.Currency}

	byAsset := make(map[string]*AssetGains)
	for _, d := range res.Disposals {
		if !InYear(d.Time, year) {
			continue
		}
		s.Disposals = append(s.Disposals, d)
		g, ok := byAsset[d.Asset]
		if !ok {
			g = &AssetGains{Asset: d.Asset}
			byAsset[d.Asset] = g
		}
		g.Disposals++
		g.Proceeds = g.Proceeds.Add(d.Proceeds)
		g.Cost = g.Cost.Add(d.Cost)
		g.Gain = g.Gain.Add(d.Gain)
		s.Proceeds = s.Proceeds.Add(d.Proceeds)
		s.Cost = s.Cost.Add(d.Cost)
		if d.Gain.IsNegative() {
			s.Losses = s.Losses.Add(d.Gain.Abs())
		} else {
			s.Gains = s.Gains.Add(d.Gain)
		}
		s.NetGain = s.NetGain.Add(d.Gain)
	}
	for _, g := range byAsset {
		s.Assets = append(s.Assets, *g)
	}
	slices.SortFunc(s.Assets, func(a, b AssetGains) int {
		if a.Asset < b.Asset {
			return -1
		}
		if a.Asset > b.Asset {
			return 1
		}
		return 0
	})

	for _, in := range res.Income {
		if InYear(in.Time, year) {
			s.Income = s.Income.Add(in.Value)
		}
	}
	return s
}

// Holdings lists the open positions of a ledger, one entry per asset with a
// non-zero remaining quantity, in ascending asset order.
func Holdings(ledger *LotLedger) []Holding {
	var out []Holding
	for _, asset := range ledger.Assets() {
		lots := ledger.Lots(asset)
		if len(lots) == 0 {
			continue
		}
		h := Holding{Asset: asset, Lots: len(lots)}
		for _, l := range lots {
			h.Quantity = h.Quantity.Add(l.Remaining)
			h.CostBasis = h.CostBasis.Add(l.CostBasis())
		}
		if h.Quantity.IsPositive() {
			h.AvgCost = h.CostBasis.Div(h.Quantity)
		}
		out = append(out, h)
	}
	return out
}

// Valuation is a holding priced at a point in time.
type Valuation struct {
	Holding
	Price Money
	Value Money
}

// ValueHoldings prices each holding at the given instant. A failed lookup
// aborts: a partial valuation would silently understate the total.
func ValueHoldings(holdings []Holding, prices PriceLookup, currency string, at time.Time) ([]Valuation, Money, error) {
	var out []Valuation
	var total Money
	for _, h := range holdings {
		price, err := prices.PriceAt(h.Asset, currency, at)
		if err != nil {
			return nil, Money{}, err
		}
		v := Valuation{Holding: h, Price: price, Value: price.Mul(h.Quantity)}
		total = total.Add(v.Value)
		out = append(out, v)
	}
	return out, total, nil
}
