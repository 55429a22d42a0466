package order

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Toskosz/lfest/internal/errs"
)

func TestNewMarketRejectsNonPositiveQuantity(t *testing.T) {
	_, err := NewMarket(Buy, decimal.Zero)
	if err != errs.ErrOrderSizeMustBePositive {
		t.Fatalf("err = %v, want ErrOrderSizeMustBePositive", err)
	}
}

func TestNewLimitRejectsNonPositivePrice(t *testing.T) {
	_, err := NewLimit(Buy, decimal.Zero, decimal.NewFromInt(1))
	if err != errs.ErrLimitPriceTooLow {
		t.Fatalf("err = %v, want ErrLimitPriceTooLow", err)
	}
}

func TestNewLimitHasLimitPrice(t *testing.T) {
	o, err := NewLimit(Sell, decimal.NewFromInt(100), decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("NewLimit: %v", err)
	}
	price, ok := o.LimitPrice()
	if !ok {
		t.Fatal("expected limit order to report a limit price")
	}
	if !price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("LimitPrice = %s, want 100", price)
	}
}

func TestNewMarketHasNoLimitPrice(t *testing.T) {
	o, err := NewMarket(Buy, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("NewMarket: %v", err)
	}
	if _, ok := o.LimitPrice(); ok {
		t.Fatal("expected market order to report no limit price")
	}
}

func TestSetIDAndMarkFilledAreImmutable(t *testing.T) {
	o, _ := NewMarket(Buy, decimal.NewFromInt(1))
	withID := o.SetID(7)

	if o.ID() != 0 {
		t.Fatalf("original order mutated, ID() = %d", o.ID())
	}
	if withID.ID() != 7 {
		t.Fatalf("ID() = %d, want 7", withID.ID())
	}

	filled := withID.MarkFilled()
	if withID.Filled() {
		t.Fatal("original order mutated by MarkFilled")
	}
	if !filled.Filled() {
		t.Fatal("expected filled copy to report Filled() == true")
	}
}

func TestSideOpposite(t *testing.T) {
	if Buy.Opposite() != Sell {
		t.Fatal("Buy.Opposite() != Sell")
	}
	if Sell.Opposite() != Buy {
		t.Fatal("Sell.Opposite() != Buy")
	}
}
