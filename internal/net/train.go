package net

import (
	"math/rand"
	"sync"

	"github.com/FlavioCFOliveira/fcclass/internal/opt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TrainConfig holds the hyperparameters of a Train call.
type TrainConfig struct {
	LearningRate float64
	Epochs       int
	BatchSize    int
	// Seed of the generator that shuffles the sample order before every epoch.
	Seed int64
	// Workers > 1 computes the per-sample gradients of a batch concurrently.
	// The batch sum is still reduced in sample order.
	Workers   int
	Callbacks []Callback
}

// DefaultTrainConfig returns the default hyperparameters.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		LearningRate: 0.05,
		Epochs:       1,
		BatchSize:    32,
		Seed:         0,
		Workers:      1,
	}
}

// Train runs cfg.Epochs epochs of mini-batch gradient descent over the
// samples x with labels y. The sample order is reshuffled before every
// epoch by a generator seeded once with cfg.Seed.
//
// The returned value is the summed cost of the last epoch only, not an
// average and not a history; use a History callback for per-epoch costs.
//
// All arguments are validated before any weight is modified.
func (n *Network) Train(x []mat.Vector, y []float64, cfg TrainConfig) (float64, error) {
	nSamples := len(x)
	if nSamples != len(y) {
		return 0, errors.Wrapf(ErrShapeMismatch, "number of samples does not match %d != %d", nSamples, len(y))
	}
	if cfg.Epochs < 1 {
		return 0, errors.Wrapf(ErrInvalidArgument, "nr_epochs should be larger than 0 (%d)", cfg.Epochs)
	}
	if cfg.BatchSize < 1 {
		return 0, errors.Wrapf(ErrInvalidArgument, "batch size must be >= 1 (%d)", cfg.BatchSize)
	}
	if err := n.checkSamples(x); err != nil {
		return 0, err
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	for _, c := range cfg.Callbacks {
		c.OnTrainBegin(n)
	}

	costTrain := 0.0
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for _, c := range cfg.Callbacks {
			c.OnEpochBegin(epoch, n)
		}

		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		costTrain = n.trainEpoch(x, y, indices, cfg.LearningRate, cfg.BatchSize, cfg.Workers, cfg.Callbacks)

		for _, c := range cfg.Callbacks {
			c.OnEpochEnd(epoch, costTrain, n)
		}
	}

	for _, c := range cfg.Callbacks {
		c.OnTrainEnd(n)
	}

	return costTrain, nil
}

// TrainEpoch runs one epoch over the samples in the order given by indices
// and returns the summed cost. Gradients are accumulated over batchSize
// samples and applied averaged by the number of samples actually in the
// batch, so a short final batch is averaged correctly.
func (n *Network) TrainEpoch(x []mat.Vector, y []float64, indices []int, learningRate float64, batchSize int) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.Wrapf(ErrShapeMismatch, "number of samples does not match %d != %d", len(x), len(y))
	}
	if batchSize < 1 {
		return 0, errors.Wrapf(ErrInvalidArgument, "batch size must be >= 1 (%d)", batchSize)
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(x) {
			return 0, errors.Wrapf(ErrInvalidArgument, "sample index %d out of range [0, %d)", idx, len(x))
		}
	}
	if err := n.checkSamples(x); err != nil {
		return 0, err
	}

	return n.trainEpoch(x, y, indices, learningRate, batchSize, 1, nil), nil
}

// sampleResult is the output of one backpropagation.
type sampleResult struct {
	cost      float64
	gradients []WeightsBiases
}

func (n *Network) trainEpoch(x []mat.Vector, y []float64, indices []int, learningRate float64, batchSize, workers int, callbacks []Callback) float64 {
	cost := 0.0
	nLayers := len(n.layers)

	// Initialize the gradient accumulators
	gradients := make([]WeightsBiases, nLayers)
	for i, l := range n.layers {
		gradients[i] = WeightsBiases{
			Weights: mat.NewDense(l.OutSize(), l.InSize(), nil),
			Biases:  mat.NewVecDense(l.OutSize(), nil),
		}
	}

	results := make([]sampleResult, min(batchSize, len(indices)))
	batch := 0
	for start := 0; start < len(indices); start += batchSize {
		end := min(start+batchSize, len(indices))
		batchIdx := indices[start:end]

		for _, c := range callbacks {
			c.OnBatchBegin(batch, n)
		}

		n.computeBatch(x, y, batchIdx, results[:len(batchIdx)], workers)

		batchCost := 0.0
		for _, r := range results[:len(batchIdx)] {
			cost += r.cost
			batchCost += r.cost
			for i := range gradients {
				gradients[i].Weights.Add(gradients[i].Weights, r.gradients[i].Weights)
				gradients[i].Biases.AddVec(gradients[i].Biases, r.gradients[i].Biases)
			}
		}

		// Update weights with the batch average, then reset the accumulators
		sgd := opt.SGD{LearningRate: learningRate / float64(len(batchIdx))}
		for i, l := range n.layers {
			sgd.StepInPlace(l.Weights(), gradients[i].Weights)
			sgd.StepVecInPlace(l.Biases(), gradients[i].Biases)

			gradients[i].Weights.Zero()
			gradients[i].Biases.Zero()
		}

		for _, c := range callbacks {
			c.OnBatchEnd(batch, batchCost, n)
		}
		batch++
	}

	return cost
}

// computeBatch fills results[k] with the backpropagation of sample
// batchIdx[k]. With more than one worker the samples are split into
// contiguous chunks, each handled by its own goroutine.
func (n *Network) computeBatch(x []mat.Vector, y []float64, batchIdx []int, results []sampleResult, workers int) {
	size := len(batchIdx)
	if workers <= 1 || size < 2 {
		for k, idx := range batchIdx {
			results[k].cost, results[k].gradients = n.backPropagate(x[idx], y[idx])
		}
		return
	}

	numWorkers := min(size, workers)
	chunkSize := (size + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < size; start += chunkSize {
		end := min(start+chunkSize, size)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for k := start; k < end; k++ {
				idx := batchIdx[k]
				results[k].cost, results[k].gradients = n.backPropagate(x[idx], y[idx])
			}
		}(start, end)
	}
	wg.Wait()
}

func (n *Network) checkSamples(x []mat.Vector) error {
	for i, sample := range x {
		if sample.Len() != n.InputUnits() {
			return errors.Wrapf(ErrShapeMismatch, "sample %d has %d features, want %d", i, sample.Len(), n.InputUnits())
		}
	}
	return nil
}
