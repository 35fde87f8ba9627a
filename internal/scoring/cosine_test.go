package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{0.3, 0.1, 0.7}, b: []float64{0.3, 0.1, 0.7}, want: 1},
		{name: "scaled", a: []float64{1, 2}, b: []float64{2, 4}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "zero norm left", a: []float64{0, 0}, b: []float64{1, 1}, want: 0},
		{name: "zero norm right", a: []float64{1, 1}, b: []float64{0, 0}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
		{name: "partial", a: []float64{1, 1}, b: []float64{1, 0}, want: 0.7071067811865475},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCosine_IdenticalIsExactlyOne(t *testing.T) {
	v := []float64{0.1, 0.2, 0.30000000000000004, 1e-3, 7}
	assert.Equal(t, 1.0, Cosine(v, v))
}
