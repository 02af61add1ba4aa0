package backfill

import "math"

// NormalizeVector scales a vector to unit length and returns the result as a
// new slice. A zero vector has no direction and comes back as a zero vector
// of the same width; an empty input comes back as is.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	result := make([]float32, len(v))
	if sumSquares == 0 {
		return result
	}

	magnitude := float32(math.Sqrt(sumSquares))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}
