package plusvalia

// Modelo720Threshold is the holdings value above which Spanish residents
// must declare foreign-held assets on form Modelo 720.
var Modelo720Threshold = EUR(50_000)

// Modelo720Check is the filing determination for one year end.
type Modelo720Check struct {
	Year      int
	Valued    []Valuation
	Total     Money
	Threshold Money
	Required  bool // strictly above the threshold
}

// CheckModelo720 values the ledger's holdings at December 31st of the given
// year and compares the total against the filing threshold. Exactly the
// threshold does not trigger the obligation.
func CheckModelo720(ledger *LotLedger, prices PriceLookup, currency string, year int) (Modelo720Check, error) {
	c := Modelo720Check{Year: year, Threshold: Modelo720Threshold}
	valued, total, err := ValueHoldings(Holdings(ledger), prices, currency, YearEnd(year))
	if err != nil {
		return c, err
	}
	c.Valued = valued
	c.Total = total
	c.Required = total.GreaterThan(Modelo720Threshold)
	return c, nil
}
