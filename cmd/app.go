// Package cmd implements the CLI application to compute Spanish crypto
// capital-gains reports.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/serranom/plusvalia"
)

// Commands lists the subcommands a main package registers, in display order.
var Commands = []subcommands.Command{
	&reportCmd{},
	&holdingsCmd{},
	&modelo720Cmd{},
	&fmtCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var journalFile = flag.String("journal-file", "journal.jsonl", "Path to the journal file containing events (JSONL format)")
var currency = flag.String("currency", "EUR", "Settlement currency")

// DecodeJournal reads the app journal file. A missing file yields an empty
// journal with a warning, so read-only commands work before the first event.
func DecodeJournal() (*plusvalia.Journal, error) {
	f, err := os.Open(*journalFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, journal %q does not exist, using an empty journal instead", *journalFile)
		return plusvalia.NewJournal(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return plusvalia.DecodeJournal(f)
}

// newEngine builds the engine from the global flags and the command's
// own fee-policy choice.
func newEngine(policy string, prices plusvalia.PriceLookup) (*plusvalia.Engine, error) {
	p, err := plusvalia.ParseFeePolicy(policy)
	if err != nil {
		return nil, err
	}
	return &plusvalia.Engine{Currency: *currency, Policy: p, Prices: prices}, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails (no tty, unsupported term).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
