package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/serranom/plusvalia"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pva fmt

  Reads the journal, validates every event, sorts them into the canonical
  order and writes the file back in canonical JSONL form.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}

	invalid := 0
	for _, tx := range journal.Transactions {
		if err := tx.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid %s event %q: %v\n", tx.Kind, tx.ID, err)
			invalid++
		}
	}
	if invalid > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d invalid events, journal left untouched\n", invalid)
		return subcommands.ExitFailure
	}

	tmp := *journalFile + ".tmp"
	fw, err := os.Create(tmp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", tmp, err)
		return subcommands.ExitFailure
	}
	if err := plusvalia.EncodeJournal(fw, journal); err != nil {
		fw.Close()
		os.Remove(tmp)
		fmt.Fprintf(os.Stderr, "Error writing journal: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := fw.Close(); err != nil {
		os.Remove(tmp)
		fmt.Fprintf(os.Stderr, "Error closing %q: %v\n", tmp, err)
		return subcommands.ExitFailure
	}
	if err := os.Rename(tmp, *journalFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error replacing %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %d events into %q.\n",
		len(journal.Transactions)+len(journal.Fiat), *journalFile)
	return subcommands.ExitSuccess
}
