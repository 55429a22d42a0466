// Package order holds the Order entity submitted to and returned by the
// exchange.
package order

import (
	"github.com/shopspring/decimal"

	"github.com/Toskosz/lfest/internal/errs"
	"github.com/Toskosz/lfest/pkg/currency"
)

// Side is which direction an order trades.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "sell"
	}
	return "buy"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Type is whether an order executes immediately or rests until triggered.
type Type uint8

const (
	Market Type = iota
	Limit
)

func (t Type) String() string {
	if t == Limit {
		return "limit"
	}
	return "market"
}

// Order is a single order, either pending submission or already accepted by
// the exchange. Quantity is denominated in size currency (Base for linear
// contracts, Quote for inverse ones); LimitPrice is always quote-denominated.
type Order struct {
	id         uint64
	side       Side
	orderType  Type
	quantity   decimal.Decimal
	limitPrice currency.Quote
	hasLimit   bool
	filled     bool
	submitStep uint64
}

// NewMarket builds an unsubmitted market order.
func NewMarket(side Side, quantity decimal.Decimal) (Order, error) {
	if !quantity.IsPositive() {
		return Order{}, errs.ErrOrderSizeMustBePositive
	}
	return Order{side: side, orderType: Market, quantity: quantity}, nil
}

// NewLimit builds an unsubmitted limit order.
func NewLimit(side Side, limitPrice, quantity decimal.Decimal) (Order, error) {
	if !quantity.IsPositive() {
		return Order{}, errs.ErrOrderSizeMustBePositive
	}
	if !limitPrice.IsPositive() {
		return Order{}, errs.ErrLimitPriceTooLow
	}
	return Order{
		side:       side,
		orderType:  Limit,
		quantity:   quantity,
		limitPrice: currency.NewQuote(limitPrice),
		hasLimit:   true,
	}, nil
}

func (o Order) ID() uint64         { return o.id }
func (o Order) Side() Side         { return o.side }
func (o Order) Type() Type         { return o.orderType }
func (o Order) Quantity() decimal.Decimal { return o.quantity }
func (o Order) Filled() bool       { return o.filled }
func (o Order) SubmitStep() uint64 { return o.submitStep }

// LimitPrice returns the order's limit price and whether it has one (always
// true for Limit orders, always false for Market orders).
func (o Order) LimitPrice() (decimal.Decimal, bool) {
	if !o.hasLimit {
		return decimal.Zero, false
	}
	return o.limitPrice.Decimal, true
}

// SetID assigns the exchange-issued order id. Exchange-internal.
func (o Order) SetID(id uint64) Order {
	o.id = id
	return o
}

// SetSubmitStep records the exchange step at submission time.
func (o Order) SetSubmitStep(step uint64) Order {
	o.submitStep = step
	return o
}

// MarkFilled returns a copy of the order marked as filled.
func (o Order) MarkFilled() Order {
	o.filled = true
	return o
}
