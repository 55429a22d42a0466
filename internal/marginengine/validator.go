// Package marginengine validates orders before the exchange accepts them:
// limit orders against the net order-margin algorithm, market orders
// against the debit/credit cost of immediately changing the position.
// Ported from this simulator's Rust validator.rs.
package marginengine

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Toskosz/lfest/internal/account"
	"github.com/Toskosz/lfest/internal/errs"
	"github.com/Toskosz/lfest/internal/ordermargin"
	"github.com/Toskosz/lfest/pkg/currency"
	"github.com/Toskosz/lfest/pkg/order"
)

// Validator checks submitted orders against the current top of book and
// the account's available balance.
type Validator struct {
	feeMaker         decimal.Decimal
	feeTaker         decimal.Decimal
	bid, ask         decimal.Decimal
	maxNumOpenOrders int
	futuresType      currency.FuturesType
	logger           *slog.Logger
}

func NewValidator(feeMaker, feeTaker decimal.Decimal, maxNumOpenOrders int, ft currency.FuturesType, logger *slog.Logger) *Validator {
	return &Validator{
		feeMaker:         feeMaker,
		feeTaker:         feeTaker,
		maxNumOpenOrders: maxNumOpenOrders,
		futuresType:      ft,
		logger:           logger.With("component", "validator"),
	}
}

// Update refreshes the top-of-book prices used for limit order validation.
func (v *Validator) Update(bid, ask decimal.Decimal) {
	v.bid = bid
	v.ask = ask
}

// ValidateLimitOrder checks a limit order against the max open order count,
// the current top of book, and available balance. On success it returns the
// incremental order margin the account must reserve to accept it.
func (v *Validator) ValidateLimitOrder(o order.Order, acc *account.Account) (decimal.Decimal, error) {
	if acc.NumActiveLimitOrders() >= v.maxNumOpenOrders {
		return decimal.Zero, errs.ErrMaxActiveOrders
	}

	limitPrice, _ := o.LimitPrice()
	switch o.Side() {
	case order.Buy:
		if limitPrice.GreaterThan(v.ask) {
			return decimal.Zero, errs.ErrLimitPriceLargerThanAsk
		}
	case order.Sell:
		if limitPrice.LessThan(v.bid) {
			return decimal.Zero, errs.ErrLimitPriceLowerThanBid
		}
	}

	incremental := v.incrementalOrderMargin(o, acc)
	if incremental.GreaterThan(acc.Margin().AvailableBalance()) {
		return decimal.Zero, errs.ErrNotEnoughAvailableBalance
	}
	return incremental, nil
}

// incrementalOrderMargin is the additional order margin needed to add o to
// the resting book, i.e. net-order-margin(existing + o) minus the order
// margin already reserved.
func (v *Validator) incrementalOrderMargin(o order.Order, acc *account.Account) decimal.Decimal {
	orders := append(append([]order.Order{}, acc.ActiveLimitOrders()...), o)
	needed := ordermargin.Compute(orders, acc.Position().Size(), acc.Position().Leverage(), v.futuresType, v.feeMaker, v.logger)
	return needed.Sub(acc.Margin().OrderMargin())
}

// ValidateMarketOrder checks a market order's debit/credit cost against
// available balance and returns both legs for the exchange to use.
func (v *Validator) ValidateMarketOrder(o order.Order, acc *account.Account) (debit, credit decimal.Decimal, err error) {
	debit, credit = v.orderCostMarket(o, acc)
	if credit.GreaterThan(acc.Margin().AvailableBalance().Add(debit)) {
		return decimal.Zero, decimal.Zero, errs.ErrNotEnoughAvailableBalance
	}
	return debit, credit, nil
}

// orderCostMarket computes the margin debited (freed from an existing
// position or resting orders) and credited (newly reserved) by immediately
// executing a market order, dispatched on the current position's sign.
func (v *Validator) orderCostMarket(o order.Order, acc *account.Account) (debit, credit decimal.Decimal) {
	posSize := acc.Position().Size()
	qty := o.Quantity()
	zero := decimal.Zero

	switch {
	case posSize.IsZero():
		switch o.Side() {
		case order.Buy:
			debit = decimal.Min(qty, acc.OpenLimitSellSize())
			credit = qty
		case order.Sell:
			debit = decimal.Min(qty, acc.OpenLimitBuySize())
			credit = qty
		}
	case posSize.IsPositive():
		switch o.Side() {
		case order.Buy:
			debit = zero
			credit = qty
		case order.Sell:
			debit = decimal.Min(qty, posSize)
			credit = decimal.Max(zero, qty.Sub(posSize))
		}
	default:
		absPos := posSize.Abs()
		switch o.Side() {
		case order.Buy:
			debit = decimal.Min(qty, absPos)
			credit = decimal.Max(zero, qty.Sub(absPos))
		case order.Sell:
			debit = zero
			credit = qty
		}
	}

	debit = debit.Div(acc.Position().Leverage())
	credit = credit.Div(acc.Position().Leverage())

	price := v.ask
	if o.Side() == order.Sell {
		price = v.bid
	}
	feeOfSize := qty.Mul(v.feeTaker)

	debit = currency.Notional(v.futuresType, price, debit)
	credit = currency.Notional(v.futuresType, price, credit).Add(currency.Notional(v.futuresType, price, feeOfSize))
	return debit, credit
}
