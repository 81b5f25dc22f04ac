package normalize

import (
	"strconv"
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		raw  any
		want int64
	}{
		{"₺1.500.000", 1500000},
		{"1,500,000 TL", 1500000},
		{"4.250.000", 4250000},
		{1500000, 1500000},
		{"", 0},
		{nil, 0},
		{"pazarlık olur", 0},
		{"  12 500  ", 12500},
		{3500.0, 3500},
	}

	for _, tt := range tests {
		if got := Currency(tt.raw); got != tt.want {
			t.Errorf("Currency(%v) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCurrencyDigitsOnlyInputs(t *testing.T) {
	// For inputs of digits and separators the result is the digit
	// concatenation, in order.
	tests := []struct {
		raw  string
		want int64
	}{
		{"1.2.3", 123},
		{"9,99", 999},
		{"000", 0},
	}
	for _, tt := range tests {
		if got := Currency(tt.raw); got != tt.want {
			t.Errorf("Currency(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCurrencyOverflow(t *testing.T) {
	if got := Currency("99999999999999999999999999"); got != 0 {
		t.Errorf("Currency(overflow) = %d; want 0", got)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{"0 (532) 123-45-67", "05321234567"},
		{"+90 532 123 45 67", "905321234567"},
		{"532.123.45.67", "5321234567"},
		{"", ""},
		{nil, ""},
		{"yok", ""},
	}

	for _, tt := range tests {
		if got := Phone(tt.raw); got != tt.want {
			t.Errorf("Phone(%v) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCoordinate(t *testing.T) {
	tests := []struct {
		raw    any
		want   float64
		wantOK bool
	}{
		{"41,28", 41.28, true},
		{"41.28", 41.28, true},
		{" 29,02 ", 29.02, true},
		{"-0,5", -0.5, true},
		{41.28, 41.28, true},
		{"abc", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{"41,28,5", 0, false},
	}

	for _, tt := range tests {
		got, ok := Coordinate(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Coordinate(%v) = (%v, %v); want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCoordinateIdempotent(t *testing.T) {
	v, ok := Coordinate("41,28")
	if !ok {
		t.Fatal("first parse failed")
	}
	again, ok := Coordinate(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok || again != v {
		t.Errorf("reparse = (%v, %v); want (%v, true)", again, ok, v)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{"  Deniz   Manzaralı 3+1 ", "Deniz Manzaralı 3+1"},
		{"tek", "tek"},
		{"", ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := Text(tt.raw); got != tt.want {
			t.Errorf("Text(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}
