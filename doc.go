// Package settlement turns a broker's trade report and a table of daily
// exchange rates into the figures a period end review needs: per trade
// domestic settlement amounts, per instrument realized results, closed
// position outcomes, and a reconciliation of computed balances against the
// balances the report declares.
//
// The core model is small. A Trade is one normalized report row, carrying
// unsigned amounts and a canonical Side derived once from its free text
// operation label. A RateTable answers "which rate applies on this day"
// with as-of semantics over sparse publications. Settle joins the two,
// rounding each monetary step to two decimals, halves away from zero,
// because the reference figures are produced that way and audits compare
// bit for bit.
//
// On top of settlement, Summarize nets signed quantities and results per
// ticker, CoverShortfall borrows purchase lots from prior periods when a
// ticker sold more than the period bought, ClosePositions reports the
// realized outcome of every balance that nets to zero, and CheckBalances
// reconciles against declared end of period counts. Pipeline.Run chains
// all of it in the documented order.
//
// Decoders for the tabular input formats live in this package too (see
// Decoder); the command line application around it lives in the cmd and
// bsr packages.
package settlement
