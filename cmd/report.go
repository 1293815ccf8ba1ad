package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/serranom/plusvalia"
	"github.com/serranom/plusvalia/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	year      int
	feePolicy string
	online    bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "annual capital-gains tax report" }
func (*reportCmd) Usage() string {
	return `pva report [-year <year>] [-fee-policy <proceeds|basis>] [-online]

  Replays the journal and renders the annual report: realized gains per
  asset (FIFO), the progressive tax on the net gain, staking income, open
  holdings, fiat movements and, with -online, the Modelo 720 check.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", time.Now().UTC().Year()-1, "Tax year to report on")
	f.StringVar(&c.feePolicy, "fee-policy", plusvalia.FeeFromProceeds.String(), "Fee treatment (proceeds, basis)")
	f.BoolVar(&c.online, "online", false, "Value year-end holdings with CoinGecko for the Modelo 720 check")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}

	var prices plusvalia.PriceLookup
	if c.online {
		prices = plusvalia.NewCoinGecko()
	}
	engine, err := newEngine(c.feePolicy, prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report := plusvalia.NewTaxReport(journal, engine, c.year)
	printMarkdown(renderer.TaxReportMarkdown(report))

	if len(report.Failed) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
