package colour

import "math"

// MaxDistanceSquared is the largest squared distance between two colours.
const MaxDistanceSquared = 3 * 255 * 255

// DistanceSquared returns the sum of squared channel differences of a and b.
// Squares are taken in int64 so callers can compare distances exactly.
func DistanceSquared(a, b RGB) int64 {
	dr := int64(a.R) - int64(b.R)
	dg := int64(a.G) - int64(b.G)
	db := int64(a.B) - int64(b.B)
	return dr*dr + dg*dg + db*db
}

// Distance calculates the Euclidean distance between two colours in RGB space.
func Distance(a, b RGB) float64 {
	return math.Sqrt(float64(DistanceSquared(a, b)))
}
