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

// modelo720Cmd holds the flags for the 'modelo720' subcommand.
type modelo720Cmd struct {
	year      int
	feePolicy string
}

func (*modelo720Cmd) Name() string     { return "modelo720" }
func (*modelo720Cmd) Synopsis() string { return "foreign-assets filing threshold check" }
func (*modelo720Cmd) Usage() string {
	return `pva modelo720 [-year <year>]

  Values the holdings at December 31st of the given year with CoinGecko
  prices and reports whether the Modelo 720 threshold is exceeded.
`
}

func (c *modelo720Cmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", time.Now().UTC().Year()-1, "Year whose December 31st holdings are valued")
	f.StringVar(&c.feePolicy, "fee-policy", plusvalia.FeeFromProceeds.String(), "Fee treatment (proceeds, basis)")
}

func (c *modelo720Cmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	engine, err := newEngine(c.feePolicy, plusvalia.NewCoinGecko())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	res := engine.Replay(journal.UpTo(c.year))
	for asset, ferr := range res.Failed {
		fmt.Fprintf(os.Stderr, "Warning: %s excluded: %v\n", asset, ferr)
	}

	check, err := plusvalia.CheckModelo720(res.Ledger, engine.Prices, res.Currency, c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Modelo720Markdown(&check))
	return subcommands.ExitSuccess
}
