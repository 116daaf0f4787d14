package settlement

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/etnz/settlement/date"
	"github.com/rs/zerolog"
)

// column describes one logical field of a tabular input: its canonical
// header name, the Russian report headers accepted as aliases, and whether
// a table can exist without it.
type column struct {
	name     string
	aliases  []string
	required bool
}

var tradeColumns = []column{
	{name: "ticker", aliases: []string{"тикер"}, required: true},
	{name: "operation", aliases: []string{"операция"}, required: true},
	{name: "quantity", aliases: []string{"количество", "кол-во"}},
	{name: "price", aliases: []string{"цена"}},
	{name: "amount", aliases: []string{"сумма"}},
	{name: "currency", aliases: []string{"валюта"}},
	{name: "commission", aliases: []string{"комиссия брокера", "комиссия"}},
	{name: "commission_currency", aliases: []string{"валюта комиссии"}},
	{name: "trade_date", aliases: []string{"дата заключения"}},
	{name: "settlement_date", aliases: []string{"дата расчетов", "расчеты"}},
}

var rateColumns = []column{
	{name: "date", aliases: []string{"дата"}, required: true},
	{name: "rate", aliases: []string{"курс"}, required: true},
	{name: "currency", aliases: []string{"валюта"}},
}

var balanceColumns = []column{
	{name: "ticker", aliases: []string{"тикер"}, required: true},
	{name: "quantity", aliases: []string{"количество", "кол-во", "на конец"}, required: true},
}

// currencyAliases maps a trading currency to the names its rows may carry
// in a mixed rate table (central bank sheets list every currency at once).
var currencyAliases = map[string][]string{
	"USD": {"usd", "доллар сша"},
	"EUR": {"eur", "евро"},
}

// Decoder reads the three tabular input formats: trade reports, daily rate
// tables and declared balances.
//
// Header detection is tolerant: canonical names or their Russian report
// equivalents, in any column order, matched after trimming and lowering.
// A missing structural column aborts with ErrSchema; a missing optional
// column gets the documented default for every row; a malformed row is
// skipped with a warning and never fails the table.
type Decoder struct {
	Currency string // trading currency assumed for rows without one
	Log      zerolog.Logger
}

// NewDecoder returns a decoder for the given trading currency, or the
// default one when code is empty.
func NewDecoder(code string, log zerolog.Logger) *Decoder {
	if code == "" {
		code = DefaultCurrency
	}
	return &Decoder{Currency: code, Log: log}
}

// normalizeHeader prepares one header cell for matching. The first cell of
// a UTF-8 file often carries a BOM.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(s))
}

// headerIndex locates each known column in the header row and checks the
// required ones are all present.
func headerIndex(header []string, columns []column) (map[string]int, error) {
	index := map[string]int{}
	for i, cell := range header {
		name := normalizeHeader(cell)
		for _, col := range columns {
			if _, done := index[col.name]; done {
				continue
			}
			if name == col.name || slices.Contains(col.aliases, name) {
				index[col.name] = i
				break
			}
		}
	}
	var missing []string
	for _, col := range columns {
		if _, ok := index[col.name]; !ok && col.required {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(missing, ", "))
	}
	return index, nil
}

// readHeader reads and indexes the header row of a CSV table.
func readHeader(cr *csv.Reader, columns []column) (map[string]int, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("unreadable header: %w", err)
	}
	return headerIndex(header, columns)
}

// fields gives row parsers indexed access to one record's cells, treating
// absent columns and short rows as empty cells.
type fields struct {
	index map[string]int
	rec   []string
}

// has reports whether the table has the column at all.
func (f fields) has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// cell returns the trimmed cell for a column, "" when absent.
func (f fields) cell(name string) string {
	i, ok := f.index[name]
	if !ok || i >= len(f.rec) {
		return ""
	}
	return strings.TrimSpace(f.rec[i])
}

// parseReportDate reads a day in ISO 8601 or the dd.mm.yyyy form Russian
// reports use.
func parseReportDate(s string) (date.Date, error) {
	if d, err := date.Parse(s); err == nil {
		return d, nil
	}
	on, err := time.Parse("2.1.2006", s)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return date.New(on.Date()), nil
}

// Trades reads a trade report table. Rows come back in file order,
// normalized: sides classified, missing currencies defaulted to the
// decoder's, a missing settlement date column defaulted to today, an empty
// trade date cell falling back to the row's settlement date.
//
// The returned slice may be empty; emptiness is only fatal for the main
// period table and Pipeline.Run enforces that.
func (d *Decoder) Trades(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	index, err := readHeader(cr, tradeColumns)
	if err != nil {
		return nil, fmt.Errorf("trade table: %w", err)
	}
	for _, col := range tradeColumns {
		if _, ok := index[col.name]; !ok {
			d.Log.Warn().Str("column", col.name).Msg("column missing, using defaults")
		}
	}

	var trades []Trade
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.Log.Warn().Int("row", row).Err(err).Msg("skipping unreadable row")
			continue
		}
		t, err := d.parseTradeRow(fields{index: index, rec: rec})
		if err != nil {
			d.Log.Warn().Int("row", row).Err(err).Msg("skipping malformed row")
			continue
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func (d *Decoder) parseTradeRow(f fields) (Trade, error) {
	ticker := f.cell("ticker")
	if ticker == "" {
		return Trade{}, fmt.Errorf("%w: empty ticker", ErrRowParse)
	}
	operation := f.cell("operation")

	quantity, err := ParseQuantity(f.cell("quantity"))
	if err != nil {
		return Trade{}, fmt.Errorf("%w: %v", ErrRowParse, err)
	}
	price, err := ParseDecimal(f.cell("price"))
	if err != nil {
		return Trade{}, fmt.Errorf("%w: %v", ErrRowParse, err)
	}
	amount, err := ParseDecimal(f.cell("amount"))
	if err != nil {
		return Trade{}, fmt.Errorf("%w: %v", ErrRowParse, err)
	}
	commission, err := ParseDecimal(f.cell("commission"))
	if err != nil {
		return Trade{}, fmt.Errorf("%w: %v", ErrRowParse, err)
	}

	currency := f.cell("currency")
	if currency == "" {
		currency = d.Currency
	}
	commissionCurrency := f.cell("commission_currency")
	if commissionCurrency == "" {
		commissionCurrency = currency
	}

	var settlement date.Date
	if !f.has("settlement_date") {
		settlement = date.Today()
	} else if settlement, err = parseReportDate(f.cell("settlement_date")); err != nil {
		return Trade{}, fmt.Errorf("%w: settlement date: %v", ErrRowParse, err)
	}
	traded := settlement
	if cell := f.cell("trade_date"); f.has("trade_date") && cell != "" {
		if traded, err = parseReportDate(cell); err != nil {
			return Trade{}, fmt.Errorf("%w: trade date: %v", ErrRowParse, err)
		}
	}

	t := Trade{
		Ticker:         ticker,
		Operation:      operation,
		Side:           Classify(operation),
		Quantity:       quantity,
		Price:          M(price, currency),
		Amount:         M(amount, currency),
		Commission:     M(commission, commissionCurrency),
		TradeDate:      traded,
		SettlementDate: settlement,
	}
	if err := t.Validate(); err != nil {
		return Trade{}, fmt.Errorf("%w: %v", ErrRowParse, err)
	}
	return t, nil
}

// Rates reads a daily rate table into a RateTable. When the table carries
// a currency column, rows naming another currency are silently filtered
// out (central bank sheets are mixed); the decoder's currency is matched
// by code or by its Russian sheet name. Duplicate days keep the last row.
// Non positive rates are skipped with a warning.
func (d *Decoder) Rates(r io.Reader) (*RateTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	index, err := readHeader(cr, rateColumns)
	if err != nil {
		return nil, fmt.Errorf("rate table: %w", err)
	}

	accepted := map[string]bool{strings.ToLower(d.Currency): true}
	for _, alias := range currencyAliases[strings.ToUpper(d.Currency)] {
		accepted[alias] = true
	}

	table := NewRateTable()
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.Log.Warn().Int("row", row).Err(err).Msg("skipping unreadable row")
			continue
		}
		f := fields{index: index, rec: rec}
		if cell := f.cell("currency"); f.has("currency") && cell != "" && !accepted[strings.ToLower(cell)] {
			continue
		}
		day, err := parseReportDate(f.cell("date"))
		if err != nil {
			d.Log.Warn().Int("row", row).Err(err).Msg("skipping malformed rate row")
			continue
		}
		value, err := ParseDecimal(f.cell("rate"))
		if err != nil {
			d.Log.Warn().Int("row", row).Err(err).Msg("skipping malformed rate row")
			continue
		}
		if !value.IsPositive() {
			d.Log.Warn().Int("row", row).Stringer("day", day).Msg("skipping non positive rate")
			continue
		}
		table.Append(day, R(value))
	}
	return table, nil
}

// Balances reads declared end of period balances into a map. A row with an
// empty quantity cell declares nothing for its ticker and is skipped; a
// duplicated ticker keeps the last row. Declared balances are signed.
func (d *Decoder) Balances(r io.Reader) (map[string]int64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	index, err := readHeader(cr, balanceColumns)
	if err != nil {
		return nil, fmt.Errorf("balance table: %w", err)
	}

	declared := map[string]int64{}
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.Log.Warn().Int("row", row).Err(err).Msg("skipping unreadable row")
			continue
		}
		f := fields{index: index, rec: rec}
		ticker := f.cell("ticker")
		cell := f.cell("quantity")
		if ticker == "" || cell == "" {
			continue
		}
		value, err := ParseDecimal(cell)
		if err != nil || !value.IsInteger() {
			d.Log.Warn().Int("row", row).Str("ticker", ticker).Msg("skipping malformed balance row")
			continue
		}
		declared[ticker] = value.IntPart()
	}
	return declared, nil
}

// MergeTrades combines several periods' trades into one pool ordered by
// trade date ascending (stable), the order lot borrowing expects.
func MergeTrades(batches ...[]Trade) []Trade {
	var all []Trade
	for _, b := range batches {
		all = append(all, b...)
	}
	slices.SortStableFunc(all, func(a, b Trade) int {
		return a.TradeDate.Compare(b.TradeDate)
	})
	return all
}

// rateCell renders a rate column cell, empty for the zero fallback so that
// a missing publication stays visible in the file.
func rateCell(r Rate) string {
	if r.IsZero() {
		return ""
	}
	return r.String()
}

// EncodeTradesCSV writes the settled trade table. Settled monetary columns
// carry exactly two fractional digits; input columns keep their digits.
func EncodeTradesCSV(w io.Writer, trades []SettledTrade) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{
		"ticker", "operation", "side", "quantity", "price", "amount",
		"currency", "commission", "commission_currency",
		"trade_date", "settlement_date",
		"rate", "rub_amount", "rub_commission", "net_result",
	})
	for _, t := range trades {
		cw.Write([]string{
			t.Ticker, t.Operation, t.Side.String(),
			t.Quantity.String(),
			t.Price.Decimal().String(),
			t.Amount.Decimal().String(),
			t.Amount.Currency(),
			t.Commission.Decimal().String(),
			t.Commission.Currency(),
			t.TradeDate.String(), t.SettlementDate.String(),
			rateCell(t.Rate),
			t.RubAmount.StringFixed(), t.RubCommission.StringFixed(), t.NetResult.StringFixed(),
		})
	}
	cw.Flush()
	return cw.Error()
}

// EncodeSummaryCSV writes the per instrument summary table.
func EncodeSummaryCSV(w io.Writer, summary []PositionSummary) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"ticker", "balance", "realized_result"})
	for _, s := range summary {
		cw.Write([]string{s.Ticker, fmt.Sprint(s.SignedBalance), s.RealizedResult.StringFixed()})
	}
	cw.Flush()
	return cw.Error()
}

// EncodeClosedCSV writes the closed position table, grand total row
// included.
func EncodeClosedCSV(w io.Writer, closed []ClosedPosition) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"ticker", "total_buys", "total_sells", "total_commission", "net_result"})
	for _, c := range closed {
		cw.Write([]string{
			c.Ticker,
			c.TotalBuys.StringFixed(), c.TotalSells.StringFixed(),
			c.TotalCommission.StringFixed(), c.NetResult.StringFixed(),
		})
	}
	cw.Flush()
	return cw.Error()
}

// EncodeChecksCSV writes the reconciliation table. The declared column is
// empty for tickers the report declared nothing about.
func EncodeChecksCSV(w io.Writer, checks []BalanceCheck) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"ticker", "computed", "declared", "sufficient"})
	for _, c := range checks {
		declared := ""
		if c.DeclaredKnown {
			declared = fmt.Sprint(c.Declared)
		}
		cw.Write([]string{c.Ticker, fmt.Sprint(c.Computed), declared, fmt.Sprint(c.Sufficient)})
	}
	cw.Flush()
	return cw.Error()
}
