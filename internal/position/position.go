// Package position holds the Position entity: a single signed futures
// position with its entry price and configured leverage.
package position

import (
	"github.com/shopspring/decimal"

	"github.com/Toskosz/lfest/pkg/currency"
)

// Position is the account's single open position. Size is signed: positive
// is long, negative is short, zero is flat.
type Position struct {
	size       decimal.Decimal
	entryPrice currency.Quote
	leverage   decimal.Decimal
}

// New returns a flat position at the given leverage.
func New(leverage decimal.Decimal) Position {
	return Position{size: decimal.Zero, entryPrice: currency.NewQuote(decimal.Zero), leverage: leverage}
}

func (p Position) Size() decimal.Decimal       { return p.size }
func (p Position) EntryPrice() decimal.Decimal { return p.entryPrice.Decimal }
func (p Position) Leverage() decimal.Decimal   { return p.leverage }

func (p Position) IsLong() bool  { return p.size.IsPositive() }
func (p Position) IsShort() bool { return p.size.IsNegative() }
func (p Position) IsFlat() bool  { return p.size.IsZero() }

// WithSize returns a copy of the position with a new signed size and entry
// price. Used by account.ChangePosition, never mutated in place so callers
// always hold a consistent snapshot.
func (p Position) WithSize(size, entryPrice decimal.Decimal) Position {
	p.size = size
	p.entryPrice = currency.NewQuote(entryPrice)
	return p
}
