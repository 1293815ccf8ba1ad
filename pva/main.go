package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/serranom/plusvalia/cmd"
)

func main() {
	// Shell completion: returns immediately unless invoked by the shell.
	completion().Complete("pva")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	feePolicy := predict.Set{"proceeds", "basis"}
	yearFlags := map[string]complete.Predictor{
		"year":       predict.Something,
		"fee-policy": feePolicy,
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"report": {Flags: map[string]complete.Predictor{
				"year":       predict.Something,
				"fee-policy": feePolicy,
				"online":     predict.Nothing,
			}},
			"holdings": {Flags: map[string]complete.Predictor{
				"fee-policy": feePolicy,
				"lots":       predict.Nothing,
			}},
			"modelo720": {Flags: yearFlags},
			"fmt":       {},
			"topic":     {Args: predict.Set{"fifo", "brackets", "fee-policy", "transfers", "modelo-720", "readme", "*"}},
			"assist":    {},
		},
		Flags: map[string]complete.Predictor{
			"journal-file": predict.Files("*.jsonl"),
			"currency":     predict.Set{"EUR"},
		},
	}
}
