package net

import (
	"testing"

	"github.com/FlavioCFOliveira/fcclass/internal/activations"
	"github.com/FlavioCFOliveira/fcclass/internal/loss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// flatten returns the weights (row-major) followed by the biases of wb.
func flatten(wb WeightsBiases) []float64 {
	r, c := wb.Weights.Dims()
	out := make([]float64, 0, r*c+wb.Biases.Len())
	for i := 0; i < r; i++ {
		out = append(out, mat.Row(nil, i, wb.Weights)...)
	}
	return append(out, wb.Biases.RawVector().Data...)
}

// numericalGradient computes the central finite difference gradient of the
// single-sample cost w.r.t. the parameters of one layer.
func numericalGradient(t *testing.T, n *Network, layerIndex int, x mat.Vector, y float64) []float64 {
	t.Helper()
	l := n.layers[layerIndex]
	rows, cols := l.OutSize(), l.InSize()
	params := flatten(n.Weights()[layerIndex])

	cost := func(p []float64) float64 {
		w := mat.NewDense(rows, cols, append([]float64(nil), p[:rows*cols]...))
		b := mat.NewVecDense(rows, append([]float64(nil), p[rows*cols:]...))
		require.NoError(t, n.SetWeights(layerIndex, w, b))
		c, _, err := n.BackPropagate(x, y)
		require.NoError(t, err)
		return c
	}

	grad := fd.Gradient(nil, cost, params, &fd.Settings{Formula: fd.Central})

	// restore the original parameters
	cost(params)
	return grad
}

// TestBackPropagateSingleLayer tests the closed form gradient of a network
// without hidden layers: bias gradient is the output error and the weight
// gradient its outer product with the input.
func TestBackPropagateSingleLayer(t *testing.T) {
	n := mustNew(t, 3, nil)
	n.InitRandom(5)

	x := mat.NewVecDense(3, []float64{0.5, -1, 2})
	y := 1.0

	cost, grads, err := n.BackPropagate(x, y)
	require.NoError(t, err)
	require.Len(t, grads, 1)

	p := n.layers[0].Forward(x).At(0, 0)
	assert.InDelta(t, loss.CrossEntropy{}.Cost(y, p), cost, 1e-12)

	// cross entropy after sigmoid reduces to p - y
	delta := p - y
	assert.InDelta(t, delta, grads[0].Biases.AtVec(0), 1e-9)
	for j := 0; j < 3; j++ {
		assert.InDelta(t, delta*x.AtVec(j), grads[0].Weights.At(0, j), 1e-9)
	}

	numeric := numericalGradient(t, n, 0, x, y)
	assert.InDeltaSlice(t, numeric, flatten(grads[0]), 1e-6)
}

// TestBackPropagateGradientCheck compares every layer's analytic gradient
// with a finite difference estimate on deeper networks.
func TestBackPropagateGradientCheck(t *testing.T) {
	tests := []struct {
		name   string
		input  int
		hidden []int
		act    activations.Activation
		cost   loss.Cost
		y      float64
	}{
		{"One hidden sigmoid", 3, []int{4}, activations.Sigmoid{}, loss.CrossEntropy{}, 1},
		{"Two hidden sigmoid", 2, []int{3, 2}, activations.Sigmoid{}, loss.CrossEntropy{}, 0},
		{"Tanh hidden squared error", 4, []int{5}, activations.Tanh{}, loss.SquaredError{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustNew(t, tt.input, tt.hidden)
			n.InitRandom(11)
			n.SetCost(tt.cost)
			for i := 0; i < n.HiddenLayers(); i++ {
				require.NoError(t, n.SetActivation(i, tt.act))
			}

			data := make([]float64, tt.input)
			for i := range data {
				data[i] = 0.3*float64(i) - 0.4
			}
			x := mat.NewVecDense(tt.input, data)

			_, grads, err := n.BackPropagate(x, tt.y)
			require.NoError(t, err)
			require.Len(t, grads, len(tt.hidden)+1)

			for i := range grads {
				r, c := grads[i].Weights.Dims()
				l := n.layers[i]
				assert.Equal(t, l.OutSize(), r)
				assert.Equal(t, l.InSize(), c)

				numeric := numericalGradient(t, n, i, x, tt.y)
				assert.InDeltaSlice(t, numeric, flatten(grads[i]), 1e-6, "layer %d", i)
			}
		})
	}
}

// TestBackPropagateDoesNotMutate tests that gradient computation leaves the
// parameters untouched.
func TestBackPropagateDoesNotMutate(t *testing.T) {
	n := mustNew(t, 2, []int{3})
	n.InitRandom(2)
	before := n.Weights()

	_, _, err := n.BackPropagate(mat.NewVecDense(2, []float64{1, 1}), 1)
	require.NoError(t, err)

	after := n.Weights()
	for i := range before {
		assert.True(t, mat.Equal(before[i].Weights, after[i].Weights))
		assert.True(t, mat.Equal(before[i].Biases, after[i].Biases))
	}
}

func TestBackPropagateWrongWidth(t *testing.T) {
	n := mustNew(t, 2, nil)
	_, _, err := n.BackPropagate(mat.NewVecDense(3, nil), 0)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
