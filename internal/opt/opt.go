// Package opt provides the gradient descent update rule.
package opt

import "gonum.org/v1/gonum/mat"

// SGD (Stochastic Gradient Descent) update: params = params - lr * gradients.
// Averaging over a batch is done by the caller choosing lr/batchCount.
type SGD struct {
	LearningRate float64
}

// StepInPlace updates params in-place: params = params - lr * gradients
func (s SGD) StepInPlace(params *mat.Dense, gradients mat.Matrix) {
	var delta mat.Dense
	delta.Scale(s.LearningRate, gradients)
	params.Sub(params, &delta)
}

// StepVecInPlace is StepInPlace for vectors.
func (s SGD) StepVecInPlace(params *mat.VecDense, gradients mat.Vector) {
	params.AddScaledVec(params, -s.LearningRate, gradients)
}
