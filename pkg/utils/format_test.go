package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{4.95, "$4.95"},
		{98495.05, "$98495.05"},
		{-12.34, "-$12.34"},
		{-0.005, "-$0.01"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPnL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "+$100.00"},
		{0, "$0.00"},
		{-50.5, "-$50.50"},
	}
	for _, tt := range tests {
		if got := FormatPnL(tt.in); got != tt.want {
			t.Errorf("FormatPnL(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.55, "+1.55%"},
		{0, "0.00%"},
		{-3.333, "-3.33%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{10.5, "10.50"},
		{0.25, "0.25"},
		{-10, "-10"},
	}
	for _, tt := range tests {
		if got := FormatQuantity(tt.in); got != tt.want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{999, "999"},
		{65000, "65.0K"},
		{65000000, "65.00M"},
		{2100000000, "2.10B"},
	}
	for _, tt := range tests {
		if got := FormatVolume(tt.in); got != tt.want {
			t.Errorf("FormatVolume(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
