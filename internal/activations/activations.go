// Package activations provides element-wise activation functions.
package activations

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x)
	Derivative(x float64) float64
}

// Sigmoid activation function. It is the default for every layer.
type Sigmoid struct{}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x))
func (s Sigmoid) Derivative(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(x)
func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - tanh(x)^2
func (t Tanh) Derivative(x float64) float64 {
	tanhX := math.Tanh(x)
	return 1 - tanhX*tanhX
}

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, x)
func (r ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Derivative returns 1 if x > 0, else 0
func (r ReLU) Derivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Linear is the identity activation.
type Linear struct{}

func (l Linear) Activate(x float64) float64   { return x }
func (l Linear) Derivative(x float64) float64 { return 1 }

// Apply stores f(m) element-wise into dst. dst is resized by gonum when empty.
func Apply(dst *mat.Dense, f func(float64) float64, m mat.Matrix) {
	dst.Apply(func(_, _ int, v float64) float64 { return f(v) }, m)
}

// ApplyVec returns a new vector holding f applied to every element of v.
func ApplyVec(f func(float64) float64, v mat.Vector) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		out.SetVec(i, f(v.AtVec(i)))
	}
	return out
}

// Name returns a short human readable name for act.
func Name(act Activation) string {
	switch act.(type) {
	case Sigmoid:
		return "Sigmoid"
	case Tanh:
		return "Tanh"
	case ReLU:
		return "ReLU"
	case Linear:
		return "Linear"
	default:
		return "Custom"
	}
}
