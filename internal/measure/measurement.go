// Package measure turns a selected plane and the current camera pose into a
// vertical distance measurement.
package measure

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/stature/internal/units"
)

// ErrInvalidDistance is returned when a distance is negative or not finite.
var ErrInvalidDistance = errors.New("distance must be finite and non-negative")

// Measurement is a non-negative length in meters.
type Measurement struct {
	meters float64
}

// NewMeasurement validates meters and wraps it in a Measurement.
func NewMeasurement(meters float64) (Measurement, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return Measurement{}, fmt.Errorf("%w: got %v", ErrInvalidDistance, meters)
	}
	return Measurement{meters: meters}, nil
}

// Meters returns the measured length in meters.
func (m Measurement) Meters() float64 {
	return m.meters
}

// In converts the measurement to the given display units.
func (m Measurement) In(targetUnits string) float64 {
	return units.ConvertLength(m.meters, targetUnits)
}

// Format renders the measurement for display, e.g. `71"`.
func (m Measurement) Format(targetUnits string) string {
	return units.FormatLength(m.meters, targetUnits)
}

// String renders the measurement in inches, the app's default display unit.
func (m Measurement) String() string {
	return m.Format(units.Inches)
}
