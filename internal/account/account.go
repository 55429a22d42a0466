// Package account holds the Account entity: the margin ledger, open
// position, and resting limit orders for the single account this exchange
// simulates. Position-mutation rules (increase / decrease / turnaround) are
// modeled on the weighted-average-entry / realize-on-decrease pattern used
// for inventory tracking in market-making bots, generalized here from two
// independent legs to one signed position.
package account

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Toskosz/lfest/internal/margin"
	"github.com/Toskosz/lfest/internal/ordermargin"
	"github.com/Toskosz/lfest/internal/position"
	"github.com/Toskosz/lfest/internal/orderedmap"
	"github.com/Toskosz/lfest/pkg/currency"
	"github.com/Toskosz/lfest/pkg/order"
)

// Account is the single account's margin ledger, position and resting
// limit orders.
type Account struct {
	position position.Position
	margin   margin.Margin
	resting  *orderedmap.Map[uint64, order.Order]

	openBuySize  decimal.Decimal
	openSellSize decimal.Decimal

	futuresType currency.FuturesType
	feeMaker    decimal.Decimal
	logger      *slog.Logger
}

// New returns a flat account seeded with startingBalance. feeMaker is the
// maker fee rate, needed to keep the net order margin of the remaining
// resting orders correct after one of them is cancelled or filled.
func New(leverage, startingBalance, feeMaker decimal.Decimal, ft currency.FuturesType, logger *slog.Logger) *Account {
	return &Account{
		position:    position.New(leverage),
		margin:      margin.New(startingBalance),
		resting:     orderedmap.New[uint64, order.Order](),
		futuresType: ft,
		feeMaker:    feeMaker,
		logger:      logger.With("component", "account"),
	}
}

func (a *Account) Position() position.Position { return a.position }
func (a *Account) Margin() margin.Margin        { return a.margin }

// ActiveLimitOrders returns the resting limit orders in submission order.
func (a *Account) ActiveLimitOrders() []order.Order { return a.resting.Values() }

func (a *Account) NumActiveLimitOrders() int { return a.resting.Len() }

func (a *Account) OpenLimitBuySize() decimal.Decimal  { return a.openBuySize }
func (a *Account) OpenLimitSellSize() decimal.Decimal { return a.openSellSize }

// AppendLimitOrder adds a validated limit order to the book. incrementalOM
// is the additional order margin the caller (the validator) computed is
// needed to accept it, and is added directly to the reserved order margin.
func (a *Account) AppendLimitOrder(o order.Order, incrementalOM decimal.Decimal) {
	a.resting.Set(o.ID(), o)
	a.margin = a.margin.WithOrderMargin(a.margin.OrderMargin().Add(incrementalOM))
	switch o.Side() {
	case order.Buy:
		a.openBuySize = a.openBuySize.Add(o.Quantity())
	case order.Sell:
		a.openSellSize = a.openSellSize.Add(o.Quantity())
	}
}

// CancelLimitOrder removes a resting order and releases its share of order
// margin back to available balance, recomputing the net order margin of
// whatever remains.
func (a *Account) CancelLimitOrder(id uint64) (order.Order, bool) {
	o, ok := a.resting.Delete(id)
	if !ok {
		return order.Order{}, false
	}
	switch o.Side() {
	case order.Buy:
		a.openBuySize = a.openBuySize.Sub(o.Quantity())
	case order.Sell:
		a.openSellSize = a.openSellSize.Sub(o.Quantity())
	}
	a.recomputeOrderMargin()
	return o, true
}

// CancelAllLimitOrders clears the resting book entirely, e.g. ahead of a
// liquidation.
func (a *Account) CancelAllLimitOrders() {
	a.resting = orderedmap.New[uint64, order.Order]()
	a.openBuySize = decimal.Zero
	a.openSellSize = decimal.Zero
	a.margin = a.margin.WithOrderMargin(decimal.Zero)
}

func (a *Account) recomputeOrderMargin() {
	om := ordermargin.Compute(a.resting.Values(), a.position.Size(), a.position.Leverage(), a.futuresType, a.feeMaker, a.logger)
	a.margin = a.margin.WithOrderMargin(om)
}

// ChangePosition applies a fill of qty (always positive) at price on side to
// the position: increasing it, decreasing it, or turning it around, and
// realizes any PnL from the closed portion into wallet balance.
func (a *Account) ChangePosition(side order.Side, qty, price decimal.Decimal) {
	pos := a.position
	sameDirection := pos.IsFlat() ||
		(pos.IsLong() && side == order.Buy) ||
		(pos.IsShort() && side == order.Sell)

	switch {
	case sameDirection:
		a.increase(side, qty, price)
	case pos.Size().Abs().GreaterThanOrEqual(qty):
		a.decrease(qty, price)
	default:
		a.turnaround(side, qty, price)
	}

	a.recomputePositionMargin()
}

func (a *Account) increase(side order.Side, qty, price decimal.Decimal) {
	pos := a.position
	oldAbs := pos.Size().Abs()
	newAbs := oldAbs.Add(qty)

	var entryPrice decimal.Decimal
	if newAbs.IsZero() {
		entryPrice = decimal.Zero
	} else {
		entryPrice = oldAbs.Mul(pos.EntryPrice()).Add(qty.Mul(price)).Div(newAbs)
	}

	signedQty := qty
	if side == order.Sell {
		signedQty = qty.Neg()
	}
	a.position = pos.WithSize(pos.Size().Add(signedQty), entryPrice)
}

func (a *Account) decrease(qty, price decimal.Decimal) {
	pos := a.position
	pnl := currency.PnL(a.futuresType, pos.EntryPrice(), price, qty, pos.IsLong())
	a.margin = a.margin.WithWalletDelta(pnl)

	remaining := pos.Size().Abs().Sub(qty)
	entryPrice := pos.EntryPrice()
	var newSize decimal.Decimal
	if remaining.IsZero() {
		newSize = decimal.Zero
		entryPrice = decimal.Zero
	} else if pos.IsLong() {
		newSize = remaining
	} else {
		newSize = remaining.Neg()
	}
	a.position = pos.WithSize(newSize, entryPrice)
}

func (a *Account) turnaround(side order.Side, qty, price decimal.Decimal) {
	pos := a.position
	closing := pos.Size().Abs()
	pnl := currency.PnL(a.futuresType, pos.EntryPrice(), price, closing, pos.IsLong())
	a.margin = a.margin.WithWalletDelta(pnl)

	remainder := qty.Sub(closing)
	signedRemainder := remainder
	if side == order.Sell {
		signedRemainder = remainder.Neg()
	}
	a.position = pos.WithSize(signedRemainder, price)
}

func (a *Account) recomputePositionMargin() {
	pos := a.position
	if pos.IsFlat() {
		a.margin = a.margin.WithPositionMargin(decimal.Zero)
		return
	}
	notional := currency.Notional(a.futuresType, pos.EntryPrice(), pos.Size().Abs())
	a.margin = a.margin.WithPositionMargin(notional.Div(pos.Leverage()))
}

// DeduceFees subtracts a fee amount (in margin currency) from the wallet.
func (a *Account) DeduceFees(fee decimal.Decimal) {
	a.margin = a.margin.WithWalletDelta(fee.Neg())
}

// UnrealizedPnL returns the position's unrealized PnL at markPrice, for
// callers that want to observe it; it is not part of AvailableBalance.
func (a *Account) UnrealizedPnL(markPrice decimal.Decimal) decimal.Decimal {
	pos := a.position
	if pos.IsFlat() {
		return decimal.Zero
	}
	return currency.PnL(a.futuresType, pos.EntryPrice(), markPrice, pos.Size().Abs(), pos.IsLong())
}
