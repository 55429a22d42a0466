// Package risk evaluates the single account's margin health and decides
// whether it must be liquidated. Unlike a multi-market kill switch watching
// a stream of position reports on its own goroutine, this simulator's
// account is liquidated synchronously inside UpdateState: a Report is
// assembled from the current account state and checked once.
package risk

import "github.com/shopspring/decimal"

// Report snapshots what's needed to evaluate margin health at a point in
// time: the reserved margin buckets, wallet balance, and unrealized PnL
// marked to the current bid/ask midpoint.
type Report struct {
	PositionMargin decimal.Decimal
	OrderMargin    decimal.Decimal
	WalletBalance  decimal.Decimal
	UnrealizedPnL  decimal.Decimal
}

// Evaluate reports whether the account's reserved margin exceeds its
// mark-to-market equity, i.e. available balance has gone negative once
// unrealized PnL is taken into account.
func Evaluate(r Report) bool {
	reserved := r.PositionMargin.Add(r.OrderMargin)
	equity := r.WalletBalance.Add(r.UnrealizedPnL)
	return reserved.GreaterThan(equity)
}
