package odds

import (
	"errors"
	"math"
	"testing"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		odds     int
		expected float64
		delta    float64
	}{
		{"Even money +100", 100, 2.0, 0.0001},
		{"Even money -100", -100, 2.0, 0.0001},
		{"Underdog +150", 150, 2.5, 0.0001},
		{"Favorite -150", -150, 1.6667, 0.0001},
		{"Standard -110", -110, 1.9091, 0.0001},
		{"Big underdog +300", 300, 4.0, 0.0001},
		{"Heavy favorite -300", -300, 1.3333, 0.0001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AmericanToDecimal(tt.odds)
			if err != nil {
				t.Fatalf("AmericanToDecimal(%d) unexpected error: %v", tt.odds, err)
			}
			if math.Abs(result-tt.expected) > tt.delta {
				t.Errorf("AmericanToDecimal(%d) = %v, want %v", tt.odds, result, tt.expected)
			}
		})
	}
}

func TestAmericanToDecimalZero(t *testing.T) {
	_, err := AmericanToDecimal(0)
	if !errors.Is(err, ErrInvalidOdds) {
		t.Errorf("AmericanToDecimal(0) error = %v, want ErrInvalidOdds", err)
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		name     string
		decimal  float64
		expected int
	}{
		{"Even 2.0", 2.0, 100},
		{"Underdog 2.5", 2.5, 150},
		{"Favorite 1.909", 1.909, -110},
		{"Favorite 1.5", 1.5, -200},
		{"Longshot 11.0", 11.0, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecimalToAmerican(tt.decimal)
			if err != nil {
				t.Fatalf("DecimalToAmerican(%v) unexpected error: %v", tt.decimal, err)
			}
			if result != tt.expected {
				t.Errorf("DecimalToAmerican(%v) = %d, want %d", tt.decimal, result, tt.expected)
			}
		})
	}
}

func TestDecimalToAmericanInvalid(t *testing.T) {
	for _, d := range []float64{1.0, 0.5, 0, -2, math.NaN(), math.Inf(1)} {
		if _, err := DecimalToAmerican(d); !errors.Is(err, ErrInvalidDecimal) {
			t.Errorf("DecimalToAmerican(%v) error = %v, want ErrInvalidDecimal", d, err)
		}
	}
}

func TestAmericanDecimalRoundTrip(t *testing.T) {
	prices := []int{-1000, -500, -300, -250, -150, -115, -110, -105, -100,
		100, 105, 110, 120, 150, 200, 350, 500, 1000}

	for _, o := range prices {
		d, err := AmericanToDecimal(o)
		if err != nil {
			t.Fatalf("AmericanToDecimal(%d): %v", o, err)
		}
		back, err := DecimalToAmerican(d)
		if err != nil {
			t.Fatalf("DecimalToAmerican(%v): %v", d, err)
		}
		// -100 and +100 are the same price; the converter prints it as +100
		if o == -100 {
			o = 100
		}
		if back != o {
			t.Errorf("round trip %d -> %v -> %d", o, d, back)
		}
	}
}

func TestAmericanToImplied(t *testing.T) {
	tests := []struct {
		name     string
		odds     int
		expected float64
	}{
		{"Even money +100", 100, 0.5},
		{"Favorite -150", -150, 0.6},
		{"Underdog +150", 150, 0.4},
		{"Standard -110", -110, 0.5238},
		{"Zero odds", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AmericanToImplied(tt.odds)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("AmericanToImplied(%d) = %v, want %v", tt.odds, result, tt.expected)
			}
		})
	}
}

func TestFormatAmerican(t *testing.T) {
	if got := FormatAmerican(150); got != "+150" {
		t.Errorf("FormatAmerican(150) = %q", got)
	}
	if got := FormatAmerican(-110); got != "-110" {
		t.Errorf("FormatAmerican(-110) = %q", got)
	}
}

func TestParseMarket(t *testing.T) {
	tests := []struct {
		in      string
		want    MarketType
		wantErr bool
	}{
		{"spread", MarketSpread, false},
		{"Spreads", MarketSpread, false},
		{" totals ", MarketTotal, false},
		{"ou", MarketTotal, false},
		{"ml", MarketMoneyline, false},
		{"parlay", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMarket(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMarket(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMarket(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
