// Package layer provides the fully connected layer used by the classifier.
package layer

import (
	"github.com/FlavioCFOliveira/fcclass/internal/activations"
	"gonum.org/v1/gonum/mat"
)

// Dense is a fully connected layer: an affine transform followed by an
// element-wise activation.
type Dense struct {
	// Shape: [out, in]; weight for output i, input j is at weights.At(i, j)
	weights *mat.Dense
	biases  *mat.VecDense
	act     activations.Activation
	outSize int
	inSize  int
}

// NewDense creates a dense layer with all weights and biases set to zero.
func NewDense(in, out int, act activations.Activation) *Dense {
	return &Dense{
		weights: mat.NewDense(out, in, nil),
		biases:  mat.NewVecDense(out, nil),
		act:     act,
		outSize: out,
		inSize:  in,
	}
}

// Linear computes W*x + b where the columns of x are samples and b is
// broadcast over every column.
func (d *Dense) Linear(x mat.Matrix) *mat.Dense {
	_, cols := x.Dims()
	lin := mat.NewDense(d.outSize, cols, nil)
	lin.Mul(d.weights, x)
	for j := 0; j < cols; j++ {
		col := lin.ColView(j).(*mat.VecDense)
		col.AddVec(col, d.biases)
	}
	return lin
}

// Forward performs a forward pass for a batch whose columns are samples.
func (d *Dense) Forward(x mat.Matrix) *mat.Dense {
	lin := d.Linear(x)
	activations.Apply(lin, d.act.Activate, lin)
	return lin
}

// ForwardVec performs a forward pass for a single sample and returns both the
// pre-activation and the activation, as needed by backpropagation.
func (d *Dense) ForwardVec(x mat.Vector) (linear, activation *mat.VecDense) {
	linear = mat.NewVecDense(d.outSize, nil)
	linear.MulVec(d.weights, x)
	linear.AddVec(linear, d.biases)
	activation = activations.ApplyVec(d.act.Activate, linear)
	return linear, activation
}

// Weights returns the weight matrix directly. Mutations affect the layer.
func (d *Dense) Weights() *mat.Dense {
	return d.weights
}

// Biases returns the bias vector directly. Mutations affect the layer.
func (d *Dense) Biases() *mat.VecDense {
	return d.biases
}

// Params returns copies of the weights and biases.
func (d *Dense) Params() (*mat.Dense, *mat.VecDense) {
	return mat.DenseCopyOf(d.weights), mat.VecDenseCopyOf(d.biases)
}

// SetParams copies w and b into the layer. Shapes must match.
func (d *Dense) SetParams(w mat.Matrix, b mat.Vector) {
	d.weights.Copy(w)
	d.biases.CopyVec(b)
}

// NumParams returns the number of trainable parameters.
func (d *Dense) NumParams() int {
	return d.outSize*d.inSize + d.outSize
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}

// SetActivation replaces the activation function.
func (d *Dense) SetActivation(act activations.Activation) {
	d.act = act
}
