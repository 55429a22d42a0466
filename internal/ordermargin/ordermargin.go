// Package ordermargin implements the net order-margin algorithm: the
// collateral required to cover a set of resting limit orders against an
// existing position, netting offsetting buy/sell exposure instead of
// summing every order independently. Ported from the netting routine this
// simulator's Rust ancestor used (limit_order_margin.rs).
package ordermargin

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Toskosz/lfest/pkg/currency"
	"github.com/Toskosz/lfest/pkg/order"
)

// Compute returns the total order margin (in margin currency) required to
// collateralize orders, given the account's current signed position size,
// leverage and maker fee rate. Only Limit orders are considered; Market
// orders in the slice are ignored. logger may be nil.
func Compute(orders []order.Order, posSize, leverage decimal.Decimal, ft currency.FuturesType, feeMaker decimal.Decimal, logger *slog.Logger) decimal.Decimal {
	var (
		buySize, sellSize             decimal.Decimal
		buyPriceWeight, sellPriceWeight decimal.Decimal
		buyFees, sellFees             decimal.Decimal
	)

	for _, o := range orders {
		if o.Type() != order.Limit {
			continue
		}
		price, ok := o.LimitPrice()
		if !ok {
			continue
		}
		qty := o.Quantity()
		priceMult := priceMultiplier(ft, price)
		fee := qty.Mul(priceMult).Mul(feeMaker)

		switch o.Side() {
		case order.Buy:
			buySize = buySize.Add(qty)
			buyPriceWeight = buyPriceWeight.Add(qty.Mul(price))
			buyFees = buyFees.Add(fee)
		case order.Sell:
			sellSize = sellSize.Add(qty)
			sellPriceWeight = sellPriceWeight.Add(qty.Mul(price))
			sellFees = sellFees.Add(fee)
		}
	}

	if buySize.IsZero() && sellSize.IsZero() {
		return decimal.Zero
	}

	shortOffset := decimal.Min(decimal.Zero, posSize).Abs()
	longOffset := decimal.Max(decimal.Zero, posSize)

	bsd := decimal.Max(decimal.Zero, buySize.Sub(shortOffset))
	ssd := decimal.Max(decimal.Zero, sellSize.Sub(longOffset))

	if logger != nil {
		logger.Debug("order margin netting", "bsd", bsd, "ssd", ssd,
			"buy_size", buySize, "sell_size", sellSize, "pos_size", posSize)
	}

	if bsd.IsZero() && ssd.IsZero() {
		return decimal.Zero
	}

	var notional, fees decimal.Decimal
	if ssd.GreaterThan(bsd) {
		avgPrice := sellPriceWeight.Div(sellSize)
		notional = currency.Notional(ft, avgPrice, ssd)
		fees = sellFees
	} else {
		avgPrice := buyPriceWeight.Div(buySize)
		notional = currency.Notional(ft, avgPrice, bsd)
		fees = buyFees
	}

	return notional.Div(leverage).Add(fees)
}

func priceMultiplier(ft currency.FuturesType, price decimal.Decimal) decimal.Decimal {
	if ft == currency.Inverse {
		return decimal.NewFromInt(1).Div(price)
	}
	return price
}
