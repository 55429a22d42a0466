// Package margin holds the Margin entity: wallet balance plus the two
// reserved-margin buckets (position margin, order margin) an account keeps
// to collateralize its open exposure.
package margin

import "github.com/shopspring/decimal"

// Margin tracks an account's balances. WalletBalance includes all realized
// PnL and fees booked so far; PositionMargin and OrderMargin are reserved
// against the open position and resting limit orders respectively.
type Margin struct {
	walletBalance  decimal.Decimal
	positionMargin decimal.Decimal
	orderMargin    decimal.Decimal
}

// New returns a Margin seeded with the given starting wallet balance.
func New(startingBalance decimal.Decimal) Margin {
	return Margin{walletBalance: startingBalance}
}

func (m Margin) WalletBalance() decimal.Decimal  { return m.walletBalance }
func (m Margin) PositionMargin() decimal.Decimal { return m.positionMargin }
func (m Margin) OrderMargin() decimal.Decimal    { return m.orderMargin }

// AvailableBalance is what's left over to collateralize new orders.
func (m Margin) AvailableBalance() decimal.Decimal {
	return m.walletBalance.Sub(m.positionMargin).Sub(m.orderMargin)
}

func (m Margin) WithWalletDelta(delta decimal.Decimal) Margin {
	m.walletBalance = m.walletBalance.Add(delta)
	return m
}

func (m Margin) WithPositionMargin(v decimal.Decimal) Margin {
	m.positionMargin = v
	return m
}

func (m Margin) WithOrderMargin(v decimal.Decimal) Margin {
	m.orderMargin = v
	return m
}
