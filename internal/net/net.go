// Package net provides the fully connected binary classifier network.
package net

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/FlavioCFOliveira/fcclass/internal/activations"
	"github.com/FlavioCFOliveira/fcclass/internal/layer"
	"github.com/FlavioCFOliveira/fcclass/internal/loss"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// WeightsBiases pairs a weight matrix with a bias vector. It carries either
// a layer's parameters or a layer's gradients.
type WeightsBiases struct {
	Weights *mat.Dense
	Biases  *mat.VecDense
}

// Network is an ordered sequence of dense layers ending in a single output
// unit. It is not safe for concurrent use.
type Network struct {
	layers []*layer.Dense
	cost   loss.Cost
}

// New creates a network with inputUnits inputs, one hidden layer per entry
// of hiddenUnits and a final layer of width 1. All weights and biases are
// zero, every activation is sigmoid and the cost is cross entropy.
func New(inputUnits int, hiddenUnits []int) (*Network, error) {
	nLayers := len(hiddenUnits) + 1
	if nLayers < 1 {
		return nil, errors.Wrap(ErrInvalidArgument, "number of layers is too small")
	}
	if inputUnits < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "input units must be >= 1 (%d)", inputUnits)
	}

	// shapes[0] is the input width, shapes[nLayers] the output width
	shapes := make([]int, nLayers+1)
	shapes[0] = inputUnits
	copy(shapes[1:], hiddenUnits)
	shapes[nLayers] = 1

	for i, units := range hiddenUnits {
		if units < 1 {
			return nil, errors.Wrapf(ErrInvalidArgument, "hidden layer %d must have >= 1 units (%d)", i, units)
		}
	}

	layers := make([]*layer.Dense, nLayers)
	for n := range layers {
		layers[n] = layer.NewDense(shapes[n], shapes[n+1], activations.Sigmoid{})
	}

	return &Network{
		layers: layers,
		cost:   loss.CrossEntropy{},
	}, nil
}

// InputUnits returns the width of the network input.
func (n *Network) InputUnits() int {
	return n.layers[0].InSize()
}

// HiddenLayers returns the number of hidden layers.
func (n *Network) HiddenLayers() int {
	return len(n.layers) - 1
}

// HiddenUnits returns the width of every hidden layer, read from the current
// bias lengths.
func (n *Network) HiddenUnits() []int {
	result := make([]int, len(n.layers)-1)
	for i := range result {
		result[i] = n.layers[i].Biases().Len()
	}
	return result
}

// Cost returns the cost function used by Evaluate, BackPropagate and Train.
func (n *Network) Cost() loss.Cost {
	return n.cost
}

// SetCost replaces the cost function.
func (n *Network) SetCost(c loss.Cost) {
	n.cost = c
}

// SetActivation replaces the activation function of one layer.
func (n *Network) SetActivation(layerIndex int, act activations.Activation) error {
	if err := n.checkLayerIndex(layerIndex); err != nil {
		return err
	}
	n.layers[layerIndex].SetActivation(act)
	return nil
}

// NumParams returns the total number of trainable parameters.
func (n *Network) NumParams() int {
	total := 0
	for _, l := range n.layers {
		total += l.NumParams()
	}
	return total
}

// InitRandom overwrites every weight and bias with an independent draw from
// the uniform distribution on [-1, 1). The values are not scaled by fan-in.
// The generator is private to this call, so the result depends only on seed.
func (n *Network) InitRandom(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	uniform := func(_, _ int, _ float64) float64 { return 2*rng.Float64() - 1 }

	for _, l := range n.layers {
		w := l.Weights()
		w.Apply(uniform, w)
		b := l.Biases()
		for i := 0; i < b.Len(); i++ {
			b.SetVec(i, 2*rng.Float64()-1)
		}
	}
}

// Weights returns a copy of every layer's parameters, in layer order.
func (n *Network) Weights() []WeightsBiases {
	result := make([]WeightsBiases, len(n.layers))
	for i, l := range n.layers {
		w, b := l.Params()
		result[i] = WeightsBiases{Weights: w, Biases: b}
	}
	return result
}

// SetWeights copies weights and biases into layer layerIndex. The shapes
// must match the layer exactly; on error the layer is left untouched.
func (n *Network) SetWeights(layerIndex int, weights mat.Matrix, biases mat.Vector) error {
	if err := n.checkLayerIndex(layerIndex); err != nil {
		return err
	}
	l := n.layers[layerIndex]

	r, c := weights.Dims()
	if r != l.OutSize() || c != l.InSize() {
		return errors.Wrapf(ErrShapeMismatch, "weights of layer %d are %dx%d, want %dx%d",
			layerIndex, r, c, l.OutSize(), l.InSize())
	}
	if biases.Len() != l.OutSize() {
		return errors.Wrapf(ErrShapeMismatch, "biases of layer %d have length %d, want %d",
			layerIndex, biases.Len(), l.OutSize())
	}

	l.SetParams(weights, biases)
	return nil
}

// Predict runs every layer on x, whose columns are samples, and returns
// one prediction per sample.
func (n *Network) Predict(x mat.Matrix) (*mat.VecDense, error) {
	rows, _ := x.Dims()
	if rows != n.InputUnits() {
		return nil, errors.Wrapf(ErrShapeMismatch, "input has %d rows, want %d", rows, n.InputUnits())
	}

	activation := x
	for _, l := range n.layers {
		activation = l.Forward(activation)
	}

	out := activation.(*mat.Dense)
	return mat.VecDenseCopyOf(out.RowView(0)), nil
}

// Evaluate returns the summed, not averaged, cost of the predictions for x
// against the targets y.
func (n *Network) Evaluate(x mat.Matrix, y mat.Vector) (float64, error) {
	_, samples := x.Dims()
	if samples != y.Len() {
		return 0, errors.Wrapf(ErrShapeMismatch, "number of samples does not match %d != %d", samples, y.Len())
	}

	yHat, err := n.Predict(x)
	if err != nil {
		return 0, err
	}

	costs := make([]float64, yHat.Len())
	for i := range costs {
		costs[i] = n.cost.Cost(y.AtVec(i), yHat.AtVec(i))
	}
	return floats.Sum(costs), nil
}

// Summary writes a summary of the network architecture to w.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Model: FcClassifier")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (activation)", "Output Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")
	for i, l := range n.layers {
		name := fmt.Sprintf("dense_%d (%s)", i, activations.Name(l.Activation()))
		fmt.Fprintf(w, "%-25s %-20s %-10d\n", name, fmt.Sprintf("(%d)", l.OutSize()), l.NumParams())
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", n.NumParams())
	fmt.Fprintf(w, "Cost: %s\n", loss.Name(n.cost))
	fmt.Fprintln(w, "_________________________________________________________________")
}

func (n *Network) checkLayerIndex(layerIndex int) error {
	if layerIndex < 0 || layerIndex >= len(n.layers) {
		return errors.Wrapf(ErrInvalidArgument, "layer index %d out of range [0, %d)", layerIndex, len(n.layers))
	}
	return nil
}
