package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/settlement/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Completion first: in completion mode this prints the candidates and
	// exits, the rest of main never runs.
	completion().Complete("bsr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// Subcommands not built in are delegated to bsr-<name> executables
	// found in PATH.
	if name := flag.Arg(0); name != "" && !cmd.Known(name) {
		if ran, code := cmd.RunExtension(name, flag.Args()[1:]); ran {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	csvFiles := predict.Files("*.csv")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"trades":   csvFiles,
			"rates":    csvFiles,
			"prior":    csvFiles,
			"declared": csvFiles,
			"currency": predict.Set{"USD", "EUR"},
			"v":        predict.Nothing,
			"plain":    predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"report": {Flags: map[string]complete.Predictor{
				"o":     predict.Dirs("*"),
				"jsonl": predict.Files("*.jsonl"),
			}},
			"trades": {Flags: map[string]complete.Predictor{
				"ticker": predict.Something,
			}},
			"summary": {},
			"closed":  {},
			"check": {Flags: map[string]complete.Predictor{
				"strict": predict.Nothing,
			}},
			"rate": {Flags: map[string]complete.Predictor{
				"d": predict.Something,
			}},
			"fetch":  {},
			"assist": {},
			"topic":  {Args: predict.Set{"readme", "formats", "dates", "settlement", "coverage", "*"}},
		},
	}
}
