package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/settlement"
	"github.com/etnz/settlement/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	outDir string
	jsonl  string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "full settlement report for the period" }
func (*reportCmd) Usage() string {
	return `bsr report [-o <dir>] [-jsonl <file>]

  Settles every trade of the period, covers oversold positions from the
  prior period files, and displays the full report: settled trades,
  position summary, closed positions and balance checks.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outDir, "o", "", "Directory to write the report CSV files into")
	f.StringVar(&c.jsonl, "jsonl", "", "File to export the settled trades to (JSONL format)")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := RunReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(report))

	if c.outDir != "" {
		if err := writeReportFiles(c.outDir, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report files: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Successfully wrote report files to %s\n", c.outDir)
	}

	if c.jsonl != "" {
		if err := exportTrades(c.jsonl, report.Trades); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting trades: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Successfully exported %d settled trades to %s\n", len(report.Trades), c.jsonl)
	}

	return subcommands.ExitSuccess
}

// writeReportFiles writes every section of the report as a CSV file in dir.
func writeReportFiles(dir string, report *settlement.Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	files := []struct {
		name   string
		encode func(io.Writer) error
	}{
		{"details.csv", func(w io.Writer) error { return settlement.EncodeTradesCSV(w, report.Trades) }},
		{"summary.csv", func(w io.Writer) error { return settlement.EncodeSummaryCSV(w, report.Summary) }},
		{"closed.csv", func(w io.Writer) error { return settlement.EncodeClosedCSV(w, report.Closed) }},
	}
	if report.Checks != nil {
		files = append(files, struct {
			name   string
			encode func(io.Writer) error
		}{"checks.csv", func(w io.Writer) error { return settlement.EncodeChecksCSV(w, report.Checks) }})
	}

	for _, file := range files {
		f, err := os.Create(filepath.Join(dir, file.name))
		if err != nil {
			return err
		}
		err = file.encode(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("could not write %s: %w", file.name, err)
		}
	}
	return nil
}

func exportTrades(path string, trades []settlement.SettledTrade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = settlement.ExportTrades(f, trades)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
