package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/settlement"
	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch the official daily rate and record it" }
func (*fetchCmd) Usage() string {
	return `bsr fetch

  Fetches the latest official daily rate for the trading currency from the
  Bank of Russia and appends it to the rates file. Responses are cached for
  the day, so repeated calls do not hit the service again.
`
}

func (*fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !settlement.KnownCurrency(*currency) {
		fmt.Fprintf(os.Stderr, "unknown currency code %q\n", *currency)
		return subcommands.ExitUsageError
	}

	entry, err := settlement.FetchDailyRate(settlement.DailyClient(), *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rate: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := appendRate(*ratesFile, entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to rates file %q: %v\n", *ratesFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s rate %s for %s to %s\n", *currency, entry.Rate, entry.Day, *ratesFile)
	return subcommands.ExitSuccess
}

// appendRate appends one rate row to the rates file, writing the header row
// first when the file is new or empty.
func appendRate(path string, e settlement.RateEntry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		cw.Write([]string{"date", "rate"})
	}
	cw.Write([]string{e.Day.String(), e.Rate.String()})
	cw.Flush()
	return cw.Error()
}
