// Package marketdata holds the MarketSnapshot the exchange is fed on every
// tick: the current bid/ask plus the high/low of the period they came from.
// Generalized from a per-asset bid/ask mirror down to the single top of
// book this single-account simulator needs.
package marketdata

import "github.com/shopspring/decimal"

// MarketSnapshot is one tick of external price data.
type MarketSnapshot struct {
	Bid  decimal.Decimal
	Ask  decimal.Decimal
	High decimal.Decimal
	Low  decimal.Decimal
	Step uint64
	Ts   uint64
}

// New builds a MarketSnapshot, panicking if it violates the invariants
// every tick must hold: bid <= ask, low <= bid, ask <= high, high >= low.
// Violating these is a caller bug, not a recoverable runtime condition, so
// it fails fast rather than returning an error.
func New(bid, ask, high, low decimal.Decimal, step, ts uint64) MarketSnapshot {
	Validate(bid, ask, high, low)
	return MarketSnapshot{Bid: bid, Ask: ask, High: high, Low: low, Step: step, Ts: ts}
}

// Validate panics if bid/ask/high/low don't form a consistent tick.
func Validate(bid, ask, high, low decimal.Decimal) {
	if bid.GreaterThan(ask) {
		panic("lfest: invalid market snapshot: bid must be <= ask")
	}
	if low.GreaterThan(bid) {
		panic("lfest: invalid market snapshot: low must be <= bid")
	}
	if ask.GreaterThan(high) {
		panic("lfest: invalid market snapshot: ask must be <= high")
	}
	if high.LessThan(low) {
		panic("lfest: invalid market snapshot: high must be >= low")
	}
}

var two = decimal.NewFromInt(2)

// MidPrice is the midpoint of bid and ask.
func (s MarketSnapshot) MidPrice() decimal.Decimal {
	return s.Bid.Add(s.Ask).Div(two)
}

// BestBidAsk returns the current top of book.
func (s MarketSnapshot) BestBidAsk() (bid, ask decimal.Decimal) {
	return s.Bid, s.Ask
}
