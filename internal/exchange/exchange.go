// Package exchange is the top-level simulated exchange: it owns the
// account, validates and executes submitted orders, and scans resting
// limit orders against each new market tick for triggers and liquidation.
// Orchestration shape (one owning struct, New(cfg, logger) constructor,
// slog component tagging) follows a trading engine's wiring; unlike a live
// engine there are no goroutines or network feeds here — every method is a
// single synchronous call, per the single-threaded backtest model.
package exchange

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Toskosz/lfest/internal/account"
	"github.com/Toskosz/lfest/internal/config"
	"github.com/Toskosz/lfest/internal/marginengine"
	"github.com/Toskosz/lfest/internal/marketdata"
	"github.com/Toskosz/lfest/internal/risk"
	"github.com/Toskosz/lfest/pkg/currency"
	"github.com/Toskosz/lfest/pkg/order"
)

// Exchange is the single simulated exchange this process runs.
type Exchange struct {
	cfg       config.Config
	account   *account.Account
	validator *marginengine.Validator

	snapshot marketdata.MarketSnapshot

	nextOrderID uint64
	step        uint64

	logger *slog.Logger
}

// New builds an Exchange from cfg, starting flat with cfg.StartingBalance.
func New(cfg config.Config, logger *slog.Logger) (*Exchange, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	acc := account.New(cfg.Leverage, cfg.StartingBalance, cfg.FeeMaker, cfg.FuturesType, logger)
	v := marginengine.NewValidator(cfg.FeeMaker, cfg.FeeTaker, cfg.MaxNumOpenOrders, cfg.FuturesType, logger)
	return &Exchange{
		cfg:       cfg,
		account:   acc,
		validator: v,
		logger:    logger.With("component", "exchange"),
	}, nil
}

func (x *Exchange) Config() config.Config       { return x.cfg }
func (x *Exchange) Account() *account.Account   { return x.account }
func (x *Exchange) Bid() decimal.Decimal        { return x.snapshot.Bid }
func (x *Exchange) Ask() decimal.Decimal        { return x.snapshot.Ask }
func (x *Exchange) Step() uint64                { return x.step }

// UpdateState feeds the exchange a new market tick: stores the snapshot,
// checks for liquidation, then scans resting limit orders for triggers.
// Returns the orders executed this tick, and whether the account was
// liquidated (in which case no other orders are scanned this tick).
func (x *Exchange) UpdateState(bid, ask, high, low decimal.Decimal, ts uint64) ([]order.Order, bool) {
	snap := marketdata.New(bid, ask, high, low, x.step, ts)
	x.snapshot = snap
	x.validator.Update(bid, ask)

	if x.checkLiquidation() {
		x.logger.Warn("account liquidated", "step", x.step, "mid", snap.MidPrice())
		x.liquidate()
		return nil, true
	}

	executed := x.checkOrders()
	x.step++
	return executed, false
}

// SubmitOrder validates and, if accepted, executes or books order. It
// returns the order with its exchange-assigned id and submit step filled in.
func (x *Exchange) SubmitOrder(o order.Order) (order.Order, error) {
	switch o.Type() {
	case order.Market:
		_, _, err := x.validator.ValidateMarketOrder(o, x.account)
		if err != nil {
			return order.Order{}, err
		}
		o = x.assignID(o)
		x.executeMarket(o.Side(), o.Quantity())
		return o.MarkFilled(), nil
	default:
		incremental, err := x.validator.ValidateLimitOrder(o, x.account)
		if err != nil {
			return order.Order{}, err
		}
		o = x.assignID(o)
		x.account.AppendLimitOrder(o, incremental)
		return o, nil
	}
}

// CancelOrder removes a resting limit order by id, releasing its reserved
// order margin. Reports ok=false if no such order is resting.
func (x *Exchange) CancelOrder(id uint64) (order.Order, bool) {
	return x.account.CancelLimitOrder(id)
}

func (x *Exchange) assignID(o order.Order) order.Order {
	o = o.SetID(x.nextOrderID)
	x.nextOrderID++
	return o.SetSubmitStep(x.step)
}

func (x *Exchange) checkLiquidation() bool {
	mid := x.snapshot.MidPrice()
	pos := x.account.Position()
	var unrealized decimal.Decimal
	if !pos.IsFlat() {
		unrealized = currency.PnL(x.cfg.FuturesType, pos.EntryPrice(), mid, pos.Size().Abs(), pos.IsLong())
	}
	report := risk.Report{
		PositionMargin: x.account.Margin().PositionMargin(),
		OrderMargin:    x.account.Margin().OrderMargin(),
		WalletBalance:  x.account.Margin().WalletBalance(),
		UnrealizedPnL:  unrealized,
	}
	return risk.Evaluate(report)
}

func (x *Exchange) liquidate() {
	x.account.CancelAllLimitOrders()
	pos := x.account.Position()
	switch {
	case pos.IsLong():
		x.executeMarket(order.Sell, pos.Size())
	case pos.IsShort():
		x.executeMarket(order.Buy, pos.Size().Abs())
	}
}

func (x *Exchange) executeMarket(side order.Side, qty decimal.Decimal) {
	price := x.snapshot.Ask
	if side == order.Sell {
		price = x.snapshot.Bid
	}
	x.logger.Debug("execute market order", "side", side, "qty", qty, "price", price)
	fee := currency.Notional(x.cfg.FuturesType, price, qty.Mul(x.cfg.FeeTaker))
	x.account.ChangePosition(side, qty, price)
	x.account.DeduceFees(fee)
}

// checkOrders scans resting limit orders against the latest high/low and
// executes any that triggered, in submission order.
func (x *Exchange) checkOrders() []order.Order {
	var executed []order.Order
	for _, o := range x.account.ActiveLimitOrders() {
		limitPrice, _ := o.LimitPrice()
		triggered := false
		switch o.Side() {
		case order.Buy:
			triggered = x.snapshot.Low.LessThanOrEqual(limitPrice)
		case order.Sell:
			triggered = x.snapshot.High.GreaterThanOrEqual(limitPrice)
		}
		if !triggered {
			continue
		}
		executed = append(executed, x.executeLimit(o))
	}
	return executed
}

func (x *Exchange) executeLimit(o order.Order) order.Order {
	x.logger.Debug("execute limit order", "id", o.ID(), "side", o.Side(), "qty", o.Quantity())
	x.account.CancelLimitOrder(o.ID())

	limitPrice, _ := o.LimitPrice()
	fee := currency.Notional(x.cfg.FuturesType, limitPrice, o.Quantity().Mul(x.cfg.FeeMaker))
	x.account.ChangePosition(o.Side(), o.Quantity(), limitPrice)
	x.account.DeduceFees(fee)

	return o.MarkFilled()
}
