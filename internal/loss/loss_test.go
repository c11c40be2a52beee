// Package loss provides unit tests for cost functions.
package loss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

// TestCrossEntropyCost tests the binary cross entropy value.
func TestCrossEntropyCost(t *testing.T) {
	ce := CrossEntropy{}

	tests := []struct {
		name     string
		yTrue    float64
		yPred    float64
		expected float64
	}{
		{"Positive half", 1, 0.5, math.Ln2},
		{"Negative half", 0, 0.5, math.Ln2},
		{"Confident right", 1, 0.9, -math.Log(0.9)},
		{"Confident wrong", 0, 0.9, -math.Log(0.1)},
		{"Soft label", 0.25, 0.5, math.Ln2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ce.Cost(tt.yTrue, tt.yPred), 1e-12)
		})
	}
}

// TestCrossEntropyClipping tests that saturated predictions stay finite.
func TestCrossEntropyClipping(t *testing.T) {
	ce := CrossEntropy{}

	for _, p := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			c := ce.Cost(y, p)
			d := ce.Derivative(y, p)
			assert.False(t, math.IsInf(c, 0) || math.IsNaN(c), "Cost(%v, %v) = %v", y, p, c)
			assert.False(t, math.IsInf(d, 0) || math.IsNaN(d), "Derivative(%v, %v) = %v", y, p, d)
		}
	}
	assert.InDelta(t, 0, ce.Cost(1, 1), 1e-9)
}

// TestDerivativesMatchFiniteDifference checks Derivative against a central
// finite difference of Cost in the prediction argument.
func TestDerivativesMatchFiniteDifference(t *testing.T) {
	costs := []Cost{CrossEntropy{}, SquaredError{}}
	cases := []struct{ y, p float64 }{
		{0, 0.2}, {1, 0.2}, {1, 0.7}, {0, 0.95}, {0.5, 0.4},
	}

	for _, c := range costs {
		t.Run(Name(c), func(t *testing.T) {
			for _, tc := range cases {
				f := func(p float64) float64 { return c.Cost(tc.y, p) }
				want := fd.Derivative(f, tc.p, &fd.Settings{Formula: fd.Central})
				assert.InDelta(t, want, c.Derivative(tc.y, tc.p), 1e-5, "y=%v p=%v", tc.y, tc.p)
			}
		})
	}
}

// TestCrossEntropyTimesSigmoidSlope tests the classic simplification to p - y.
func TestCrossEntropyTimesSigmoidSlope(t *testing.T) {
	ce := CrossEntropy{}
	for _, p := range []float64{0.1, 0.5, 0.8} {
		for _, y := range []float64{0, 1} {
			assert.InDelta(t, p-y, ce.Derivative(y, p)*p*(1-p), 1e-12)
		}
	}
}

// TestSquaredError tests squared error value and derivative.
func TestSquaredError(t *testing.T) {
	se := SquaredError{}

	assert.Equal(t, 0.0, se.Cost(1, 1))
	assert.InDelta(t, 0.125, se.Cost(1, 0.5), 1e-12)
	assert.InDelta(t, -0.5, se.Derivative(1, 0.5), 1e-12)
}
