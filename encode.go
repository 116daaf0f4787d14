package settlement

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/settlement/date"
	"github.com/shopspring/decimal"
)

// Settled trades travel between runs as JSON Lines: one object per trade,
// keys in a stable order. The format is the archive counterpart of the CSV
// report files, lossless enough to rebuild a SettledTrade exactly.

// ExportTrades writes settled trades to w, one JSON object per line.
// The rate key is omitted on rows that settled with the zero fallback.
func ExportTrades(w io.Writer, trades []SettledTrade) error {
	for _, t := range trades {
		var jw jsonObjectWriter
		jw.Append("ticker", t.Ticker)
		jw.Append("operation", t.Operation)
		jw.Append("side", t.Side)
		jw.Append("quantity", t.Quantity)
		jw.Append("price", t.Price.Decimal())
		jw.Append("amount", t.Amount.Decimal())
		jw.Append("currency", t.Amount.Currency())
		jw.Append("commission", t.Commission.Decimal())
		jw.Append("commission_currency", t.Commission.Currency())
		jw.Append("trade_date", t.TradeDate)
		jw.Append("settlement_date", t.SettlementDate)
		jw.Optional("rate", t.Rate.Decimal())
		jw.Append("rub_amount", t.RubAmount.StringFixed())
		jw.Append("rub_commission", t.RubCommission.StringFixed())
		jw.Append("net_result", t.NetResult.StringFixed())
		data, err := json.Marshal(&jw)
		if err != nil {
			return fmt.Errorf("cannot marshal trade %q: %w", t.Ticker, err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("cannot write settled trade: %w", err)
		}
	}
	return nil
}

// jsonTrade mirrors one exported line for decoding.
type jsonTrade struct {
	Ticker             string          `json:"ticker"`
	Operation          string          `json:"operation"`
	Side               Side            `json:"side"`
	Quantity           int64           `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Commission         decimal.Decimal `json:"commission"`
	CommissionCurrency string          `json:"commission_currency"`
	TradeDate          date.Date       `json:"trade_date"`
	SettlementDate     date.Date       `json:"settlement_date"`
	Rate               decimal.Decimal `json:"rate"`
	RubAmount          decimal.Decimal `json:"rub_amount"`
	RubCommission      decimal.Decimal `json:"rub_commission"`
	NetResult          decimal.Decimal `json:"net_result"`
}

// ImportTrades reads settled trades back from the line format written by
// ExportTrades. Blank lines are ignored; a malformed line is an error, the
// archive is machine written.
func ImportTrades(r io.Reader) ([]SettledTrade, error) {
	var trades []SettledTrade
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var jt jsonTrade
		if err := json.Unmarshal(line, &jt); err != nil {
			return nil, fmt.Errorf("cannot parse settled trade line %q: %w", string(line), err)
		}
		currency := jt.Currency
		if currency == "" {
			currency = DefaultCurrency
		}
		commissionCurrency := jt.CommissionCurrency
		if commissionCurrency == "" {
			commissionCurrency = currency
		}
		trades = append(trades, SettledTrade{
			Trade: Trade{
				Ticker:         jt.Ticker,
				Operation:      jt.Operation,
				Side:           jt.Side,
				Quantity:       Quantity(jt.Quantity),
				Price:          M(jt.Price, currency),
				Amount:         M(jt.Amount, currency),
				Commission:     M(jt.Commission, commissionCurrency),
				TradeDate:      jt.TradeDate,
				SettlementDate: jt.SettlementDate,
			},
			Rate:          R(jt.Rate),
			RubAmount:     rub(jt.RubAmount),
			RubCommission: rub(jt.RubCommission),
			NetResult:     rub(jt.NetResult),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read settled trades: %w", err)
	}
	return trades, nil
}
