package plusvalia

import "github.com/shopspring/decimal"

// Spanish savings-income brackets for capital gains. Each band taxes the
// slice of the base between its lower bound and the next band's.
type Bracket struct {
	Lower Money
	Rate  Percent
}

// SavingsBrackets returns the progressive scale applied to net capital
// gains: 19% up to 6 000, 21% to 50 000, 23% to 200 000, 26% above.
func SavingsBrackets() []Bracket {
	return []Bracket{
		{EUR(0), 0.19},
		{EUR(6_000), 0.21},
		{EUR(50_000), 0.23},
		{EUR(200_000), 0.26},
	}
}

// BandTax is the contribution of one band to the total liability.
type BandTax struct {
	Lower   Money
	Upper   Money // zero Money for the open-ended top band
	Rate    Percent
	Taxable Money
	Tax     Money
}

// TaxAssessment is the liability on a year's net capital gain.
type TaxAssessment struct {
	NetGain       Money
	TaxableBase   Money // net gain floored at zero
	Bands         []BandTax
	Tax           Money
	EffectiveRate Percent // Tax / TaxableBase, zero on an empty base
}

// AssessSavingsIncomeTax computes the progressive tax on a net capital gain.
// A zero or negative gain yields zero tax: losses reduce the base to zero
// but never below.
func AssessSavingsIncomeTax(netGain Money) TaxAssessment {
	a := TaxAssessment{NetGain: netGain, TaxableBase: netGain, Tax: EUR(0)}
	if !netGain.IsPositive() {
		a.TaxableBase = EUR(0)
		return a
	}

	brackets := SavingsBrackets()
	base := netGain.value
	total := decimal.Zero
	for i, b := range brackets {
		if base.LessThanOrEqual(b.Lower.value) {
			break
		}
		upper := base
		band := BandTax{Lower: b.Lower, Rate: b.Rate}
		if i+1 < len(brackets) {
			next := brackets[i+1].Lower.value
			band.Upper = brackets[i+1].Lower
			if next.LessThan(upper) {
				upper = next
			}
		}
		taxable := upper.Sub(b.Lower.value)
		tax := taxable.Mul(decimal.NewFromFloat(float64(b.Rate)))
		band.Taxable = Money{value: taxable, cur: netGain.cur}
		band.Tax = Money{value: tax, cur: netGain.cur}
		total = total.Add(tax)
		a.Bands = append(a.Bands, band)
	}
	a.Tax = Money{value: total, cur: netGain.cur}
	rate, _ := total.Div(base).Float64()
	a.EffectiveRate = Percent(rate)
	return a
}
