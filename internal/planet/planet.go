// Package planet models a planet by its radius and rotation period.
package planet

import "strconv"

// Pi is the two-digit approximation the reference figures were produced with.
// Swapping in math.Pi changes SurfaceArea(17) from 3629 to 3631.
const Pi = 3.14

// Planet is immutable after New. Derived values are computed on demand.
type Planet struct {
	Radius         int64 // meters
	RotationPeriod int64 // seconds
}

// New stores radius and rotation period verbatim. No validation is done here.
func New(radius, rotationPeriod int64) Planet {
	return Planet{Radius: radius, RotationPeriod: rotationPeriod}
}

// SurfaceArea returns 4·π·r² truncated toward zero, in square meters.
func (p Planet) SurfaceArea() int64 {
	r := float64(p.Radius)
	return int64(4 * Pi * r * r)
}

// RotationFrequency returns 2·π/period in radians per second.
// A zero period yields +Inf.
func (p Planet) RotationFrequency() float64 {
	return 2 * Pi / float64(p.RotationPeriod)
}

// FormatFrequency prints f with the shortest representation that round-trips.
func FormatFrequency(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
