// Package fcclass is a fully connected feedforward binary classifier trained
// with mini-batch gradient descent.
//
// A Classifier is built with a fixed topology, an input width and the widths
// of its hidden layers, and always ends in a single sigmoid output unit.
// Samples are the columns of the matrices given to Predict and Evaluate.
package fcclass

import (
	"github.com/FlavioCFOliveira/fcclass/internal/activations"
	"github.com/FlavioCFOliveira/fcclass/internal/loss"
	"github.com/FlavioCFOliveira/fcclass/internal/net"
	"gonum.org/v1/gonum/mat"
)

// Re-export common types for easier access
type (
	WeightsBiases = net.WeightsBiases
	Activation    = activations.Activation
	Cost          = loss.Cost
	Callback      = net.Callback
	History       = net.History
	Dataset       = net.Dataset
)

// Errors returned by Classifier operations. ErrShapeMismatch is also an
// ErrInvalidArgument.
var (
	ErrInvalidArgument = net.ErrInvalidArgument
	ErrShapeMismatch   = net.ErrShapeMismatch
)

// Activations
var (
	Sigmoid = activations.Sigmoid{}
	Tanh    = activations.Tanh{}
	ReLU    = activations.ReLU{}
	Linear  = activations.Linear{}
)

// Costs
var (
	CrossEntropy = loss.CrossEntropy{}
	SquaredError = loss.SquaredError{}
)

// Classifier is a fully connected feedforward network with a single output.
// It must not be used concurrently while Train runs.
type Classifier struct {
	*net.Network
}

// New creates a classifier with zero weights and biases.
func New(inputUnits int, hiddenUnits []int) (*Classifier, error) {
	n, err := net.New(inputUnits, hiddenUnits)
	if err != nil {
		return nil, err
	}
	return &Classifier{Network: n}, nil
}

// GetWeights returns copies of the weights and biases of every layer.
func (c *Classifier) GetWeights() []WeightsBiases {
	return c.Weights()
}

// TrainOption configures a Train call.
type TrainOption func(*net.TrainConfig)

// WithLearningRate sets the learning rate. Default 0.05.
func WithLearningRate(lr float64) TrainOption {
	return func(cfg *net.TrainConfig) { cfg.LearningRate = lr }
}

// WithEpochs sets the number of epochs. Default 1.
func WithEpochs(epochs int) TrainOption {
	return func(cfg *net.TrainConfig) { cfg.Epochs = epochs }
}

// WithBatchSize sets the mini-batch size. Default 32.
func WithBatchSize(size int) TrainOption {
	return func(cfg *net.TrainConfig) { cfg.BatchSize = size }
}

// WithSeed sets the seed of the shuffling generator. Default 0.
func WithSeed(seed int64) TrainOption {
	return func(cfg *net.TrainConfig) { cfg.Seed = seed }
}

// WithWorkers sets the number of goroutines computing per-sample gradients
// within a batch. Results do not depend on it. Default 1.
func WithWorkers(workers int) TrainOption {
	return func(cfg *net.TrainConfig) { cfg.Workers = workers }
}

// WithCallbacks adds training callbacks.
func WithCallbacks(callbacks ...Callback) TrainOption {
	return func(cfg *net.TrainConfig) { cfg.Callbacks = append(cfg.Callbacks, callbacks...) }
}

// Train trains the classifier on the samples x with labels y and returns the
// summed cost of the last epoch.
func (c *Classifier) Train(x []mat.Vector, y []float64, opts ...TrainOption) (float64, error) {
	cfg := net.DefaultTrainConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return c.Network.Train(x, y, cfg)
}

// Callbacks

// Logger returns a callback printing the epoch cost to stdout every
// interval epochs.
func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

// NewCSVLogger returns a callback writing one row per epoch to filename.
// Failures are not fatal to training; check Err on the result afterwards.
func NewCSVLogger(filename string, append bool) *net.CSVLogger {
	return net.NewCSVLogger(filename, append)
}

// LoadCSV loads a data set whose column labelCol holds the labels. A
// negative labelCol selects the last column.
func LoadCSV(filename string, labelCol int, hasHeader bool) (*Dataset, error) {
	return net.LoadCSV(filename, labelCol, hasHeader)
}
