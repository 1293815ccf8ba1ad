package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/serranom/plusvalia"
)

// HoldingsSection renders the open positions as a markdown section.
func HoldingsSection(holdings []plusvalia.Holding) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Holdings\n\n")
	if len(holdings) == 0 {
		fmt.Fprint(&b, "No open positions.\n\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Asset | Quantity | Lots | Cost Basis | Avg Cost |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, h := range holdings {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n",
			h.Asset, h.Quantity, h.Lots, h.CostBasis, h.AvgCost)
	}
	fmt.Fprintln(&b)
	return b.String()
}

// LotsMarkdown renders the open lots of every asset, oldest first, the raw
// material of future FIFO matches.
func LotsMarkdown(ledger *plusvalia.LotLedger) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Open Lots\n\n")
	for _, asset := range ledger.Assets() {
		lots := ledger.Lots(asset)
		if len(lots) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", asset)
		fmt.Fprintln(&b, "| Acquired | Platform | Remaining | Unit Cost | Cost Basis |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
		for _, l := range lots {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				l.AcquiredAt.Format("2006-01-02"), l.Platform, l.Remaining, l.UnitCost, l.CostBasis())
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
