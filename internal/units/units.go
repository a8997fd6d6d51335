// Package units provides shared constants, conversion and display formatting
// for length units. The session core measures in meters; conversion happens
// only when text is rendered for the user.
package units

import (
	"fmt"
	"math"
)

// Unit constants
const (
	Meters      = "m"
	Centimeters = "cm"
	Inches      = "in"
	Feet        = "ft" // feet and inches, e.g. 5' 11"
)

// Conversion factors from meters.
const (
	InchesPerMeter      = 39.3700787
	CentimetersPerMeter = 100.0
	InchesPerFoot       = 12
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Meters, Centimeters, Inches, Feet}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "m, cm, in, ft"
}

// ConvertLength converts a length in meters to the target units.
// Feet converts to fractional feet.
func ConvertLength(meters float64, targetUnits string) float64 {
	switch targetUnits {
	case Inches:
		return meters * InchesPerMeter
	case Feet:
		return meters * InchesPerMeter / InchesPerFoot
	case Centimeters:
		return meters * CentimetersPerMeter
	case Meters:
		return meters
	default:
		return meters // default to meters if unknown unit
	}
}

// FormatLength renders a length in meters for display, rounded to whole
// display units: 1.8m is `71"` in inches, `5' 11"` in feet, `180 cm` in
// centimeters and `1.80 m` in meters.
func FormatLength(meters float64, targetUnits string) string {
	switch targetUnits {
	case Inches:
		return fmt.Sprintf("%d\"", roundInt(ConvertLength(meters, Inches)))
	case Feet:
		total := roundInt(ConvertLength(meters, Inches))
		return fmt.Sprintf("%d' %d\"", total/InchesPerFoot, total%InchesPerFoot)
	case Centimeters:
		return fmt.Sprintf("%d cm", roundInt(ConvertLength(meters, Centimeters)))
	default:
		return fmt.Sprintf("%.2f m", meters)
	}
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
