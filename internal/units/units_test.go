package units

import (
	"math"
	"testing"
)

func TestConvertLength(t *testing.T) {
	tests := []struct {
		name     string
		meters   float64
		units    string
		expected float64
	}{
		{"1 m to in", 1.0, Inches, 39.3701},
		{"1.8 m to in", 1.8, Inches, 70.8661},
		{"1.8 m to ft", 1.8, Feet, 5.9055},
		{"1.8 m to cm", 1.8, Centimeters, 180.0},
		{"1.8 m to m", 1.8, Meters, 1.8},
		{"unknown units default to m", 1.8, "yards", 1.8},
		{"0 m to in", 0.0, Inches, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertLength(tt.meters, tt.units)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ConvertLength(%f, %s) = %f, want %f", tt.meters, tt.units, result, tt.expected)
			}
		})
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		name     string
		meters   float64
		units    string
		expected string
	}{
		{"camera 1.8m above floor in inches", 1.8, Inches, `71"`},
		{"1.5m in inches", 1.5, Inches, `59"`},
		{"zero in inches", 0, Inches, `0"`},
		{"rounds to nearest inch", 0.013, Inches, `1"`},
		{"1.8m in feet", 1.8, Feet, `5' 11"`},
		{"exact foot", 0.3048, Feet, `1' 0"`},
		{"1.8m in cm", 1.8, Centimeters, "180 cm"},
		{"1.8m in m", 1.8, Meters, "1.80 m"},
		{"unknown falls back to m", 1.234, "", "1.23 m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLength(tt.meters, tt.units); got != tt.expected {
				t.Errorf("FormatLength(%f, %q) = %q, want %q", tt.meters, tt.units, got, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid m", Meters, true},
		{"valid cm", Centimeters, true},
		{"valid in", Inches, true},
		{"valid ft", Feet, true},
		{"invalid unit", "yd", false},
		{"empty string", "", false},
		{"case sensitive", "IN", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	if got := GetValidUnitsString(); got != "m, cm, in, ft" {
		t.Errorf("GetValidUnitsString() = %q", got)
	}
}
