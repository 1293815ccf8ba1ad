package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/serranom/plusvalia"
	"github.com/serranom/plusvalia/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	feePolicy string
	lots      bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "remaining positions after replaying the journal" }
func (*holdingsCmd) Usage() string {
	return `pva holdings [-fee-policy <proceeds|basis>] [-lots]

  Replays the whole journal and shows the open positions per asset with
  their cost basis. With -lots, shows every open lot oldest first.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.feePolicy, "fee-policy", plusvalia.FeeFromProceeds.String(), "Fee treatment (proceeds, basis)")
	f.BoolVar(&c.lots, "lots", false, "Show individual open lots instead of per-asset totals")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	engine, err := newEngine(c.feePolicy, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	res := engine.Replay(journal.Transactions)
	for asset, ferr := range res.Failed {
		fmt.Fprintf(os.Stderr, "Warning: %s excluded: %v\n", asset, ferr)
	}

	if c.lots {
		printMarkdown(renderer.LotsMarkdown(res.Ledger))
	} else {
		printMarkdown(renderer.HoldingsSection(plusvalia.Holdings(res.Ledger)))
	}
	return subcommands.ExitSuccess
}
