package plusvalia

// TaxReport is the complete annual picture: realized gains, the tax on
// them, stake income, remaining holdings, cash flow and the Modelo 720
// determination.
type TaxReport struct {
	Year     int
	Currency string

	Summary  YearSummary
	Tax      TaxAssessment
	Holdings []Holding
	Fiat     FiatSummary

	// Modelo720 is nil when no price source is available or the valuation
	// failed; Modelo720Err carries the reason. The gains figures above are
	// still valid, the filing check is a separate obligation.
	Modelo720    *Modelo720Check
	Modelo720Err error

	Failed      map[string]error
	Ambiguities []AmbiguousOrderingError
}

// NewTaxReport replays the journal's history up to the end of the given
// year and assembles the annual report. FIFO matching replays from the very
// first event: the year's disposals may consume lots acquired years before.
func NewTaxReport(j *Journal, e *Engine, year int) *TaxReport {
	res := e.Replay(j.UpTo(year))

	r := &TaxReport{
		Year:        year,
		Currency:    res.Currency,
		Summary:     Summarize(res, year),
		Holdings:    Holdings(res.Ledger),
		Fiat:        SummarizeFiat(j.Fiat, res.Fees, year),
		Failed:      res.Failed,
		Ambiguities: res.Ambiguities,
	}
	r.Tax = AssessSavingsIncomeTax(r.Summary.NetGain)

	if e.Prices != nil {
		check, err := CheckModelo720(res.Ledger, e.Prices, res.Currency, year)
		if err != nil {
			r.Modelo720Err = err
		} else {
			r.Modelo720 = &check
		}
	}
	return r
}
