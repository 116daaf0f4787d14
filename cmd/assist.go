package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/settlement/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

// Name returns the name of the command.
func (*assistCmd) Name() string { return "assist" }

// Synopsis returns a short one-line synopsis of the command.
func (*assistCmd) Synopsis() string { return "Start an interactive session with the AI assistant." }

// Usage returns a long-form usage string.
func (*assistCmd) Usage() string {
	return `assist:
  Start an interactive session with the AI assistant.
`
}

// SetFlags sets the flags for the command.
func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	report, err := RunReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}
	dec, err := NewDecoder()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rates, err := DecodeRates(dec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(report, rates)
	researcher := agent.NewResearcher()
	a := agent.New(os.Stdout, os.Stdin, analyst, researcher)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
