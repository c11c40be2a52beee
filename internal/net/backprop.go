package net

import (
	"github.com/FlavioCFOliveira/fcclass/internal/activations"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// BackPropagate computes the cost of a single sample and the gradient of
// that cost w.r.t. every layer's weights and biases, ordered as the layers.
func (n *Network) BackPropagate(x mat.Vector, y float64) (float64, []WeightsBiases, error) {
	if x.Len() != n.InputUnits() {
		return 0, nil, errors.Wrapf(ErrShapeMismatch, "sample has %d features, want %d", x.Len(), n.InputUnits())
	}
	cost, gradients := n.backPropagate(x, y)
	return cost, gradients, nil
}

// backPropagate assumes x has already been validated. It only reads the
// network, so it may run concurrently with other backPropagate calls.
func (n *Network) backPropagate(x mat.Vector, y float64) (float64, []WeightsBiases) {
	nLayers := len(n.layers)

	// Forward pass, keeping pre-activations for the backward pass
	linear := make([]*mat.VecDense, nLayers)
	activation := make([]*mat.VecDense, nLayers)
	var in mat.Vector = x
	for i, l := range n.layers {
		linear[i], activation[i] = l.ForwardVec(in)
		in = activation[i]
	}

	yPred := activation[nLayers-1].AtVec(0)
	delta := mat.NewVecDense(1, []float64{n.cost.Derivative(y, yPred)})

	gradients := make([]WeightsBiases, nLayers)
	for i := nLayers - 1; i >= 0; i-- {
		l := n.layers[i]
		delta.MulElemVec(delta, activations.ApplyVec(l.Activation().Derivative, linear[i]))

		var prev mat.Vector = x
		if i > 0 {
			prev = activation[i-1]
		}
		gradW := mat.NewDense(l.OutSize(), l.InSize(), nil)
		gradW.Outer(1, delta, prev)
		gradients[i] = WeightsBiases{Weights: gradW, Biases: mat.VecDenseCopyOf(delta)}

		if i > 0 {
			next := mat.NewVecDense(l.InSize(), nil)
			next.MulVec(l.Weights().T(), delta)
			delta = next
		}
	}

	return n.cost.Cost(y, yPred), gradients
}
