package marketdata

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewValidSnapshot(t *testing.T) {
	s := New(decimal.NewFromInt(99), decimal.NewFromInt(100), decimal.NewFromInt(101), decimal.NewFromInt(98), 1, 1000)
	want := decimal.NewFromFloat(99.5)
	if got := s.MidPrice(); !got.Equal(want) {
		t.Fatalf("MidPrice = %s, want %s", got, want)
	}
}

func TestValidatePanicsOnBidGreaterThanAsk(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for bid > ask")
		}
	}()
	Validate(decimal.NewFromInt(101), decimal.NewFromInt(100), decimal.NewFromInt(101), decimal.NewFromInt(99))
}

func TestValidatePanicsOnLowGreaterThanBid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for low > bid")
		}
	}()
	Validate(decimal.NewFromInt(100), decimal.NewFromInt(101), decimal.NewFromInt(102), decimal.NewFromInt(100).Add(decimal.NewFromInt(1)))
}

func TestValidatePanicsOnAskGreaterThanHigh(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for ask > high")
		}
	}()
	Validate(decimal.NewFromInt(100), decimal.NewFromInt(101), decimal.NewFromInt(100), decimal.NewFromInt(99))
}
