package renderer

import (
	"fmt"
	"strings"

	"github.com/serranom/plusvalia"
)

// TaxReportMarkdown renders the full annual report: realized gains per
// asset, the progressive tax computation, stake income, cash flow and the
// Modelo 720 determination.
func TaxReportMarkdown(r *plusvalia.TaxReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Crypto Tax Report %d\n\n", r.Year)
	fmt.Fprintf(&b, "Fiscal residence: Spain. Settlement currency: %s. Matching: FIFO per asset.\n\n", r.Currency)

	fmt.Fprint(&b, "## Realized Gains per Asset\n\n")
	fmt.Fprintln(&b, "| Asset | Disposals | Proceeds | Cost Basis | Gain/Loss |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, g := range r.Summary.Assets {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			g.Asset, g.Disposals, g.Proceeds, g.Cost, g.Gain.SignedString())
	}
	fmt.Fprintf(&b, "| **Total** | **%d** | **%s** | **%s** | **%s** |\n\n",
		len(r.Summary.Disposals), r.Summary.Proceeds, r.Summary.Cost, r.Summary.NetGain.SignedString())

	if len(r.Summary.Disposals) > 0 {
		fmt.Fprint(&b, "## Disposals\n\n")
		fmt.Fprintln(&b, "| Date | Asset | Platform | Quantity | Proceeds | Cost | Gain/Loss |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
		for _, d := range r.Summary.Disposals {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				d.Time.Format("2006-01-02"), d.Asset, d.Platform, d.Quantity,
				d.Proceeds, d.Cost, d.Gain.SignedString())
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprint(&b, "## Tax on Savings Income\n\n")
	fmt.Fprintf(&b, "Net gain: %s. Taxable base: %s.\n\n", r.Tax.NetGain.SignedString(), r.Tax.TaxableBase)
	if len(r.Tax.Bands) > 0 {
		fmt.Fprintln(&b, "| Band | Rate | Taxable | Tax |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|")
		for _, band := range r.Tax.Bands {
			upper := "∞"
			if !band.Upper.IsZero() {
				upper = band.Upper.String()
			}
			fmt.Fprintf(&b, "| %s – %s | %s | %s | %s |\n",
				band.Lower, upper, band.Rate, band.Taxable, band.Tax)
		}
		fmt.Fprintf(&b, "\n**Tax due: %s** (effective rate %s)\n\n", r.Tax.Tax, r.Tax.EffectiveRate)
	} else {
		fmt.Fprint(&b, "No tax due.\n\n")
	}

	if !r.Summary.Income.IsZero() {
		fmt.Fprint(&b, "## Staking Income\n\n")
		fmt.Fprintf(&b, "Ordinary income from staking rewards: %s. Declared separately from capital gains.\n\n", r.Summary.Income)
	}

	fmt.Fprint(&b, HoldingsSection(r.Holdings))

	fmt.Fprint(&b, "## Fiat Movements\n\n")
	fmt.Fprintf(&b, "Deposits %s, withdrawals %s, net %s, platform fees %s.\n\n",
		r.Fiat.Deposits, r.Fiat.Withdrawals, r.Fiat.Net.SignedString(), r.Fiat.Fees)

	switch {
	case r.Modelo720 != nil:
		fmt.Fprint(&b, Modelo720Markdown(r.Modelo720))
	case r.Modelo720Err != nil:
		fmt.Fprintf(&b, "## Modelo 720\n\nValuation failed: %v\n\n", r.Modelo720Err)
	}

	if len(r.Failed) > 0 {
		fmt.Fprint(&b, "## Incomplete Assets\n\n")
		fmt.Fprintln(&b, "The figures above exclude the assets below, whose history is inconsistent:")
		fmt.Fprintln(&b)
		for _, asset := range sortedKeys(r.Failed) {
			fmt.Fprintf(&b, "* %s: %v\n", asset, r.Failed[asset])
		}
		fmt.Fprintln(&b)
	}
	if len(r.Ambiguities) > 0 {
		fmt.Fprint(&b, "## Ordering Ambiguities\n\n")
		for i := range r.Ambiguities {
			fmt.Fprintf(&b, "* %v\n", &r.Ambiguities[i])
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
