package settlement

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func fixtureRates() *RateTable {
	return NewRateTable(
		RateEntry{Day: day("2024-01-01"), Rate: R(90)},
		RateEntry{Day: day("2024-01-10"), Rate: R(92.5)},
	)
}

// renderReport flattens the figures of a report into comparable lines.
func renderReport(r *Report) string {
	var b strings.Builder
	for _, t := range r.Trades {
		fmt.Fprintf(&b, "T %s %s %d %s %s %s\n", t.Ticker, t.Side, t.Quantity,
			t.RubAmount.StringFixed(), t.RubCommission.StringFixed(), t.NetResult.StringFixed())
	}
	for _, s := range r.Summary {
		fmt.Fprintf(&b, "S %s %d %s\n", s.Ticker, s.SignedBalance, s.RealizedResult.StringFixed())
	}
	for _, c := range r.Closed {
		fmt.Fprintf(&b, "C %s %s %s %s %s\n", c.Ticker, c.TotalBuys.StringFixed(),
			c.TotalSells.StringFixed(), c.TotalCommission.StringFixed(), c.NetResult.StringFixed())
	}
	for _, c := range r.Checks {
		fmt.Fprintf(&b, "B %s %d %d %v %v\n", c.Ticker, c.Computed, c.Declared, c.DeclaredKnown, c.Sufficient)
	}
	return b.String()
}

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{
		Currency: "USD",
		Rates:    fixtureRates(),
		Prior: []Trade{
			{Ticker: "ABC", Operation: "Покупка", Side: Buy, Quantity: 10, Amount: M(1000, "USD"), Commission: M(10, "USD"), TradeDate: day("2023-11-01"), SettlementDate: day("2023-11-03")},
		},
		Declared: map[string]int64{"XYZ": 0},
		Log:      zerolog.Nop(),
	}
	trades := []Trade{
		// a round trip that closes
		{Ticker: "XYZ", Operation: "Покупка", Side: Buy, Quantity: 10, Amount: M(1000, "USD"), Commission: M(5, "USD"), TradeDate: day("2024-01-03"), SettlementDate: day("2024-01-05")},
		{Ticker: "XYZ", Operation: "Продажа", Side: Sell, Quantity: 10, Amount: M(1200, "USD"), Commission: M(5, "USD"), TradeDate: day("2024-01-09"), SettlementDate: day("2024-01-11")},
		// an oversold ticker, covered from the prior period pool
		{Ticker: "ABC", Operation: "Продажа", Side: Sell, Quantity: 6, Amount: M(600, "USD"), TradeDate: day("2024-01-03"), SettlementDate: day("2024-01-05")},
		// another currency, not part of this book
		{Ticker: "EUROONLY", Operation: "Покупка", Side: Buy, Quantity: 1, Amount: M(100, "EUR"), TradeDate: day("2024-01-03"), SettlementDate: day("2024-01-05")},
	}
	report, err := p.Run(trades)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// three USD rows plus one borrowed row
	if len(report.Trades) != 4 {
		t.Fatalf("settled %d trades, want 4", len(report.Trades))
	}
	var borrowed *SettledTrade
	for i := range report.Trades {
		if report.Trades[i].Operation == BorrowedOperation {
			borrowed = &report.Trades[i]
		}
		if report.Trades[i].Ticker == "EUROONLY" {
			t.Error("a EUR row leaked into the USD book")
		}
	}
	if borrowed == nil {
		t.Fatal("no borrowed row in the settled trades")
	}
	// 6 of the 10 unit prior lot, settled at the lot's own date rate
	if borrowed.Quantity != 6 || borrowed.Side != Buy {
		t.Errorf("borrowed %d units side %v, want 6 units Buy", borrowed.Quantity, borrowed.Side)
	}
	if got := borrowed.Amount.StringFixed(); got != "600.00" {
		t.Errorf("borrowed amount = %s, want 600.00", got)
	}
	if !borrowed.Rate.IsZero() {
		t.Errorf("borrowed rate = %s, want the zero fallback, the table starts after the lot settles", borrowed.Rate)
	}

	// coverage brings ABC to zero, so it closes
	for _, s := range report.Summary {
		if s.Ticker == "ABC" && s.SignedBalance != 0 {
			t.Errorf("ABC balance = %d after coverage, want 0", s.SignedBalance)
		}
	}
	var tickers []string
	for _, c := range report.Closed {
		tickers = append(tickers, c.Ticker)
	}
	if want := []string{"ABC", "XYZ", TotalTicker}; strings.Join(tickers, ",") != strings.Join(want, ",") {
		t.Errorf("closed tickers %v, want %v", tickers, want)
	}

	// XYZ declared 0 agrees with its computed 0
	for _, c := range report.Checks {
		if c.Ticker == "XYZ" && !c.Sufficient {
			t.Errorf("XYZ check failed: %+v", c)
		}
	}
	if len(report.Residuals) != 0 {
		t.Errorf("residuals %v, want none", report.Residuals)
	}
}

func TestPipelineRunDeterministic(t *testing.T) {
	trades := []Trade{
		{Ticker: "XYZ", Operation: "Покупка", Side: Buy, Quantity: 10, Amount: M(1000, "USD"), Commission: M(5, "USD"), TradeDate: day("2024-01-03"), SettlementDate: day("2024-01-05")},
		{Ticker: "ABC", Operation: "Продажа", Side: Sell, Quantity: 6, Amount: M(600, "USD"), TradeDate: day("2024-01-03"), SettlementDate: day("2024-01-05")},
	}
	p := &Pipeline{
		Currency: "USD",
		Rates:    fixtureRates(),
		Prior: []Trade{
			{Ticker: "ABC", Operation: "Покупка", Side: Buy, Quantity: 10, Amount: M(1000, "USD"), TradeDate: day("2023-11-01"), SettlementDate: day("2023-11-03")},
		},
		Log: zerolog.Nop(),
	}
	first, err := p.Run(trades)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := p.Run(trades)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if renderReport(first) != renderReport(second) {
		t.Errorf("two runs disagree:\n%s\nversus:\n%s", renderReport(first), renderReport(second))
	}
}

func TestPipelineRunBalancedBorrowsNothing(t *testing.T) {
	trades := []Trade{
		{Ticker: "XYZ", Operation: "Покупка", Side: Buy, Quantity: 10, Amount: M(1000, "USD"), TradeDate: day("2024-01-03"), SettlementDate: day("2024-01-05")},
		{Ticker: "XYZ", Operation: "Продажа", Side: Sell, Quantity: 10, Amount: M(1100, "USD"), TradeDate: day("2024-01-06"), SettlementDate: day("2024-01-08")},
	}
	p := &Pipeline{
		Currency: "USD",
		Rates:    fixtureRates(),
		Prior: []Trade{
			{Ticker: "XYZ", Operation: "Покупка", Side: Buy, Quantity: 10, Amount: M(900, "USD"), TradeDate: day("2023-11-01"), SettlementDate: day("2023-11-03")},
		},
		Log: zerolog.Nop(),
	}
	report, err := p.Run(trades)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Trades) != len(trades) {
		t.Errorf("settled %d trades from %d inputs, a balanced book must borrow nothing", len(report.Trades), len(trades))
	}
}

func TestPipelineRunResidual(t *testing.T) {
	trades := []Trade{
		{Ticker: "ABC", Operation: "Продажа", Side: Sell, Quantity: 15, Amount: M(1500, "USD"), TradeDate: day("2024-01-03"), SettlementDate: day("2024-01-05")},
	}
	p := &Pipeline{
		Currency: "USD",
		Rates:    fixtureRates(),
		Prior: []Trade{
			{Ticker: "ABC", Operation: "Покупка", Side: Buy, Quantity: 10, Amount: M(1000, "USD"), TradeDate: day("2023-11-01"), SettlementDate: day("2023-11-03")},
		},
		Log: zerolog.Nop(),
	}
	report, err := p.Run(trades)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Residuals["ABC"] != 5 {
		t.Errorf("ABC residual = %d, want 5", report.Residuals["ABC"])
	}
	for _, s := range report.Summary {
		if s.Ticker == "ABC" && s.SignedBalance != -5 {
			t.Errorf("ABC balance = %d, want -5 after partial coverage", s.SignedBalance)
		}
	}
	// a partially covered balance is not closed
	for _, c := range report.Closed {
		if c.Ticker == "ABC" {
			t.Error("ABC closed despite a residual shortfall")
		}
	}
}

func TestPipelineRunEmptyInputs(t *testing.T) {
	p := NewPipeline(fixtureRates())
	if _, err := p.Run(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Run(nil) = %v, want ErrEmptyInput", err)
	}

	p = NewPipeline(NewRateTable())
	trades := []Trade{
		{Ticker: "XYZ", Operation: "Покупка", Side: Buy, Quantity: 1, Amount: M(1, "USD"), TradeDate: day("2024-01-03"), SettlementDate: day("2024-01-05")},
	}
	if _, err := p.Run(trades); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Run with an empty rate table = %v, want ErrEmptyInput", err)
	}

	// currency filtering can empty the book too
	p = NewPipeline(fixtureRates())
	p.Currency = "EUR"
	if _, err := p.Run(trades); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Run with no trade in the settled currency = %v, want ErrEmptyInput", err)
	}
}
