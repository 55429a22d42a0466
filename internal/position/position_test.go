package position

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewIsFlat(t *testing.T) {
	p := New(decimal.NewFromInt(5))
	if !p.IsFlat() {
		t.Fatal("expected new position to be flat")
	}
	if p.IsLong() || p.IsShort() {
		t.Fatal("flat position reported as long or short")
	}
}

func TestWithSizeLong(t *testing.T) {
	p := New(decimal.NewFromInt(1))
	p = p.WithSize(decimal.NewFromInt(2), decimal.NewFromInt(100))

	if !p.IsLong() {
		t.Fatal("expected long position")
	}
	if got, want := p.EntryPrice(), decimal.NewFromInt(100); !got.Equal(want) {
		t.Fatalf("EntryPrice = %s, want %s", got, want)
	}
}

func TestWithSizeShort(t *testing.T) {
	p := New(decimal.NewFromInt(1))
	p = p.WithSize(decimal.NewFromInt(-3), decimal.NewFromInt(50))

	if !p.IsShort() {
		t.Fatal("expected short position")
	}
}
