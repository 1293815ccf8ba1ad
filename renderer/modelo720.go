package renderer

import (
	"fmt"
	"strings"

	"github.com/serranom/plusvalia"
)

// Modelo720Markdown renders the foreign-assets filing determination.
func Modelo720Markdown(c *plusvalia.Modelo720Check) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Modelo 720\n\n")
	fmt.Fprintf(&b, "Holdings valued at December 31st, %d:\n\n", c.Year)
	fmt.Fprintln(&b, "| Asset | Quantity | Price | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, v := range c.Valued {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", v.Asset, v.Quantity, v.Price, v.Value)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** |\n\n", c.Total)
	if c.Required {
		fmt.Fprintf(&b, "Total exceeds the %s threshold: **Modelo 720 filing required**.\n\n", c.Threshold)
	} else {
		fmt.Fprintf(&b, "Total does not exceed the %s threshold: no filing required.\n\n", c.Threshold)
	}
	return b.String()
}
