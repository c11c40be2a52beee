// Package loss provides per-sample cost functions for a scalar output.
package loss

import "math"

// Cost is a scalar loss with derivative.
type Cost interface {
	// Cost computes the loss of a prediction yPred for target yTrue.
	Cost(yTrue, yPred float64) float64

	// Derivative computes the partial derivative of Cost w.r.t. yPred.
	Derivative(yTrue, yPred float64) float64
}

// eps keeps predictions away from 0 and 1 so logs and quotients stay finite.
const eps = 1e-10

func clip(p float64) float64 {
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}

// CrossEntropy is the binary cross entropy. It is the default cost.
// Predictions must lie in (0, 1); they are clipped to [eps, 1-eps].
type CrossEntropy struct{}

// Cost computes -(y*log(p) + (1-y)*log(1-p))
func (c CrossEntropy) Cost(yTrue, yPred float64) float64 {
	p := clip(yPred)
	return -(yTrue*math.Log(p) + (1-yTrue)*math.Log(1-p))
}

// Derivative computes (p - y) / (p * (1-p))
// Multiplied by the sigmoid derivative p(1-p) this reduces to p - y.
func (c CrossEntropy) Derivative(yTrue, yPred float64) float64 {
	p := clip(yPred)
	return (p - yTrue) / (p * (1 - p))
}

// SquaredError is 0.5 * (p - y)^2.
type SquaredError struct{}

// Cost computes 0.5 * (p - y)^2
func (s SquaredError) Cost(yTrue, yPred float64) float64 {
	diff := yPred - yTrue
	return 0.5 * diff * diff
}

// Derivative computes p - y
func (s SquaredError) Derivative(yTrue, yPred float64) float64 {
	return yPred - yTrue
}

// Name returns a short human readable name for c.
func Name(c Cost) string {
	switch c.(type) {
	case CrossEntropy:
		return "CrossEntropy"
	case SquaredError:
		return "SquaredError"
	default:
		return "Custom"
	}
}
