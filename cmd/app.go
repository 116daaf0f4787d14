// Package cmd implements the bsr command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/settlement"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&tradesCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&closedCmd{}, "reports")

	c.Register(&checkCmd{}, "reconciliation")

	c.Register(&rateCmd{}, "rates")
	c.Register(&fetchCmd{}, "rates")

	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "documentation")
}

// Known reports whether name is a built-in subcommand. Anything else is a
// candidate for the bsr-<name> extension mechanism.
func Known(name string) bool {
	switch name {
	case "report", "trades", "summary", "closed",
		"check", "rate", "fetch", "assist", "topic",
		"help", "flags", "commands":
		return true
	}
	return false
}

// As a CLI application it has a very short lived lifecycle, so it is ok to use global variables.
//
// Globals are registered in init so that values from a .env file act as flag defaults.
var (
	tradesFile   *string
	ratesFile    *string
	priorFiles   *string
	declaredFile *string
	currency     *string
	Verbose      *bool
	Plain        *bool
)

func init() {
	_ = godotenv.Load()
	tradesFile = flag.String("trades", envOr(EnvTradesFile, "trades.csv"), "Path to the broker trades file (CSV)")
	ratesFile = flag.String("rates", envOr(EnvRatesFile, "rates.csv"), "Path to the daily rates file (CSV)")
	priorFiles = flag.String("prior", envOr(EnvPriorFiles, ""), "Comma separated list of prior period trades files (CSV)")
	declaredFile = flag.String("declared", envOr(EnvDeclaredFile, ""), "Path to the declared balances file (CSV)")
	currency = flag.String("currency", envOr(EnvCurrency, settlement.DefaultCurrency), "Trading currency to settle")
	Verbose = flag.Bool("v", envOr(EnvVerbose, "") == "true", "Enable verbose diagnostics on stderr")
	Plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Logger returns the application logger. Warnings always show, -v adds the
// debug level.
func Logger() zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewDecoder returns the CSV decoder for the configured trading currency.
func NewDecoder() (*settlement.Decoder, error) {
	if !settlement.KnownCurrency(*currency) {
		return nil, fmt.Errorf("unknown currency code %q", *currency)
	}
	return settlement.NewDecoder(*currency, Logger()), nil
}

// DecodeTrades reads the current period trades from the app trades file.
func DecodeTrades(dec *settlement.Decoder) ([]settlement.Trade, error) {
	f, err := os.Open(*tradesFile)
	if err != nil {
		return nil, fmt.Errorf("could not open trades file %q: %w", *tradesFile, err)
	}
	defer f.Close()
	return dec.Trades(f)
}

// DecodeRates reads the daily rate table from the app rates file.
func DecodeRates(dec *settlement.Decoder) (*settlement.RateTable, error) {
	f, err := os.Open(*ratesFile)
	if err != nil {
		return nil, fmt.Errorf("could not open rates file %q: %w", *ratesFile, err)
	}
	defer f.Close()
	return dec.Rates(f)
}

// DecodePrior reads and merges every prior period trades file listed in the
// -prior flag. It returns nil when the flag is empty.
func DecodePrior(dec *settlement.Decoder) ([]settlement.Trade, error) {
	var batches [][]settlement.Trade
	for _, path := range splitList(*priorFiles) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open prior trades file %q: %w", path, err)
		}
		trades, err := dec.Trades(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not decode prior trades file %q: %w", path, err)
		}
		batches = append(batches, trades)
	}
	if batches == nil {
		return nil, nil
	}
	return settlement.MergeTrades(batches...), nil
}

// DecodeDeclared reads the declared balances from the app declared file.
// It returns nil when the -declared flag is empty.
func DecodeDeclared(dec *settlement.Decoder) (map[string]int64, error) {
	if *declaredFile == "" {
		return nil, nil
	}
	f, err := os.Open(*declaredFile)
	if err != nil {
		return nil, fmt.Errorf("could not open declared balances file %q: %w", *declaredFile, err)
	}
	defer f.Close()
	return dec.Balances(f)
}

// RunReport loads every configured input and runs the settlement pipeline.
func RunReport() (*settlement.Report, error) {
	dec, err := NewDecoder()
	if err != nil {
		return nil, err
	}
	trades, err := DecodeTrades(dec)
	if err != nil {
		return nil, err
	}
	rates, err := DecodeRates(dec)
	if err != nil {
		return nil, err
	}
	prior, err := DecodePrior(dec)
	if err != nil {
		return nil, err
	}
	declared, err := DecodeDeclared(dec)
	if err != nil {
		return nil, err
	}

	p := settlement.NewPipeline(rates)
	p.Currency = *currency
	p.Prior = prior
	p.Declared = declared
	p.Log = Logger()
	return p.Run(trades)
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
