package vecindex

import "math"

// Normalize scales v to unit L2 norm in place and returns it. Normalizing
// an already-normalized vector is a no-op within floating-point tolerance.
// A zero vector returns ErrDegenerateVector untouched.
func Normalize(v []float32) ([]float32, error) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil, ErrDegenerateVector
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v, nil
}
