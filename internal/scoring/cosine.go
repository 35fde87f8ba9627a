package scoring

import "math"

// Cosine returns the cosine similarity of a and b. If either vector has a
// zero norm the result is 0. For non-negative inputs the result lies in [0,1];
// it is clamped so rounding never escapes that range.
func Cosine(a, b []float64) float64 {
	n := min(len(a), len(b))

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}

	// sqrt(na*nb) rather than sqrt(na)*sqrt(nb): identical vectors give exactly 1.
	sim := dot / math.Sqrt(na*nb)
	switch {
	case sim > 1:
		return 1
	case sim < 0:
		return 0
	}
	return sim
}
