// Package currency holds the futures-contract currency math: which side of
// a trade is denominated in which currency, and the handful of pure
// conversions (notional value, realized PnL) that depend on it.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FuturesType distinguishes a linear contract (size in Base, margin in
// Quote) from an inverse contract (size in Quote, margin in Base).
type FuturesType uint8

const (
	Linear FuturesType = iota
	Inverse
)

func (f FuturesType) String() string {
	switch f {
	case Linear:
		return "linear"
	case Inverse:
		return "inverse"
	default:
		return "unknown"
	}
}

// ParseFuturesType parses the config-file spelling of a futures type.
func ParseFuturesType(s string) (FuturesType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "inverse":
		return Inverse, nil
	default:
		return 0, fmt.Errorf("lfest: unknown futures_type %q", s)
	}
}

// Quote wraps a price. Prices are always quote-denominated, regardless of
// whether the contract itself is linear or inverse.
type Quote struct {
	decimal.Decimal
}

func NewQuote(d decimal.Decimal) Quote { return Quote{d} }

// Base wraps a base-currency amount. Kept as a distinct type from Quote so
// the two are never silently interchanged; order/position size currency
// depends on FuturesType and is left as plain decimal.Decimal (see
// SPEC_FULL.md's Open Question on generic currency types).
type Base struct {
	decimal.Decimal
}

func NewBase(d decimal.Decimal) Base { return Base{d} }

var two = decimal.NewFromInt(2)

// Mid returns the midpoint of a bid/ask pair.
func Mid(bid, ask Quote) Quote {
	return Quote{bid.Add(ask.Decimal).Div(two)}
}

// Notional converts a size-currency quantity into margin currency at the
// given price: qty*price for Linear contracts, qty/price for Inverse ones.
func Notional(ft FuturesType, price, qty decimal.Decimal) decimal.Decimal {
	switch ft {
	case Inverse:
		return qty.Div(price)
	default:
		return qty.Mul(price)
	}
}

// PnL is the realized/unrealized profit, in margin currency, of closing qty
// (always positive) of a position opened at entry and closed at exit.
// isLong reports which side the closing leg is unwinding.
func PnL(ft FuturesType, entry, exit, qty decimal.Decimal, isLong bool) decimal.Decimal {
	var pnl decimal.Decimal
	switch ft {
	case Inverse:
		pnl = qty.Mul(decimal.NewFromInt(1).Div(entry).Sub(decimal.NewFromInt(1).Div(exit)))
	default:
		pnl = qty.Mul(exit.Sub(entry))
	}
	if !isLong {
		pnl = pnl.Neg()
	}
	return pnl
}
