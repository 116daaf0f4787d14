package settlement

import "github.com/shopspring/decimal"

// ClosedPosition is the realized outcome of an instrument whose end of
// period balance nets to zero: every unit bought was sold or covered.
type ClosedPosition struct {
	Ticker          string
	TotalBuys       Money // magnitude of purchase settlements
	TotalSells      Money // magnitude of sale settlements
	TotalCommission Money // every row of the ticker, whatever its side
	NetResult       Money // TotalSells − TotalBuys − TotalCommission
}

// TotalTicker labels the synthetic grand total row appended to a non empty
// closed position table.
const TotalTicker = "Total"

// ClosePositions computes the closed position table: one row per ticker
// whose summary balance is zero, in summary order, plus the grand total.
//
// Sides rely on the canonical tag set at normalization, so borrowed prior
// period rows count as purchases here like everywhere else. Rows with an
// Unresolved label contribute their commission only.
func ClosePositions(trades []SettledTrade, summary []PositionSummary) []ClosedPosition {
	byTicker := make(map[string][]SettledTrade)
	for _, t := range trades {
		byTicker[t.Ticker] = append(byTicker[t.Ticker], t)
	}

	var closed []ClosedPosition
	var buysTotal, sellsTotal, commTotal, netTotal decimal.Decimal
	for _, s := range summary {
		if s.SignedBalance != 0 {
			continue
		}
		var buys, sells, comm decimal.Decimal
		for _, t := range byTicker[s.Ticker] {
			switch t.Side {
			case Buy:
				buys = buys.Add(t.RubAmount.Decimal())
			case Sell:
				sells = sells.Add(t.RubAmount.Decimal())
			}
			comm = comm.Add(t.RubCommission.Decimal())
		}
		// purchase settlements are negative, the table reports magnitudes
		buys = round2(buys.Neg())
		sells = round2(sells)
		comm = round2(comm)
		net := round2(sells.Sub(buys).Sub(comm))

		closed = append(closed, ClosedPosition{
			Ticker:          s.Ticker,
			TotalBuys:       rub(buys),
			TotalSells:      rub(sells),
			TotalCommission: rub(comm),
			NetResult:       rub(net),
		})
		buysTotal = buysTotal.Add(buys)
		sellsTotal = sellsTotal.Add(sells)
		commTotal = commTotal.Add(comm)
		netTotal = netTotal.Add(net)
	}
	if len(closed) == 0 {
		return nil
	}
	return append(closed, ClosedPosition{
		Ticker:          TotalTicker,
		TotalBuys:       rub(round2(buysTotal)),
		TotalSells:      rub(round2(sellsTotal)),
		TotalCommission: rub(round2(commTotal)),
		NetResult:       rub(round2(netTotal)),
	})
}
