package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is the 2D vector type used throughout the simulation.
type Vec2 = mgl64.Vec2

// normalizeOrZero returns the unit vector of v, or the zero vector when v is
// zero (or near enough that normalizing would blow up).
func normalizeOrZero(v Vec2) Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return v.Mul(1.0 / l)
}

// dist returns the Euclidean distance between two points.
func dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// finite reports whether both components are finite numbers.
func finite(v Vec2) bool {
	return !math.IsNaN(v.X()) && !math.IsInf(v.X(), 0) &&
		!math.IsNaN(v.Y()) && !math.IsInf(v.Y(), 0)
}
