package net

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dataset represents a collection of samples and their scalar labels.
type Dataset struct {
	Samples [][]float64
	Labels  []float64
}

// LoadCSV loads data from a CSV file.
// labelCol is the index of the label column; every other column is a feature.
// A negative labelCol selects the last column.
// hasHeader skips the first line if true.
func LoadCSV(filename string, labelCol int, hasHeader bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	if len(records) == 0 {
		return nil, errors.New("csv file is empty")
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}

	if len(records) <= startRow {
		return nil, errors.New("csv file has no data rows")
	}

	numCols := len(records[0])
	if numCols < 2 {
		return nil, errors.New("csv file needs at least one feature column")
	}
	if labelCol < 0 {
		labelCol = numCols - 1
	}
	if labelCol >= numCols {
		return nil, errors.Wrapf(ErrInvalidArgument, "label column %d out of range [0, %d)", labelCol, numCols)
	}

	numSamples := len(records) - startRow
	samples := make([][]float64, numSamples)
	labels := make([]float64, numSamples)

	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, errors.Errorf("inconsistent number of columns at row %d", i)
		}

		sampleRow := make([]float64, 0, numCols-1)
		for j, valStr := range record {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse value at row %d, col %d", i, j)
			}

			if j == labelCol {
				labels[i-startRow] = val
			} else {
				sampleRow = append(sampleRow, val)
			}
		}
		samples[i-startRow] = sampleRow
	}

	return &Dataset{
		Samples: samples,
		Labels:  labels,
	}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// Vectors returns one vector per sample, sharing the sample storage.
func (d *Dataset) Vectors() []mat.Vector {
	result := make([]mat.Vector, len(d.Samples))
	for i, s := range d.Samples {
		result[i] = mat.NewVecDense(len(s), s)
	}
	return result
}

// Matrix returns the samples as the columns of a new matrix, the layout
// expected by Predict and Evaluate.
func (d *Dataset) Matrix() *mat.Dense {
	if len(d.Samples) == 0 {
		return nil
	}
	m := mat.NewDense(len(d.Samples[0]), len(d.Samples), nil)
	for j, s := range d.Samples {
		m.SetCol(j, s)
	}
	return m
}

// LabelVector returns the labels as a vector sharing the label storage.
func (d *Dataset) LabelVector() *mat.VecDense {
	if len(d.Labels) == 0 {
		return nil
	}
	return mat.NewVecDense(len(d.Labels), d.Labels)
}

// Normalize performs min-max normalization on every feature.
// Constant features are set to 0.
func (d *Dataset) Normalize() {
	if len(d.Samples) == 0 {
		return
	}

	numFeatures := len(d.Samples[0])
	column := make([]float64, len(d.Samples))
	for f := 0; f < numFeatures; f++ {
		for i, sample := range d.Samples {
			column[i] = sample[f]
		}
		lo, hi := floats.Min(column), floats.Max(column)
		diff := hi - lo
		for _, sample := range d.Samples {
			if diff != 0 {
				sample[f] = (sample[f] - lo) / diff
			} else {
				sample[f] = 0
			}
		}
	}
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0).
// Returns two new Datasets (train, test).
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Samples)) * ratio)

	train := &Dataset{
		Samples: d.Samples[:splitIdx],
		Labels:  d.Labels[:splitIdx],
	}

	test := &Dataset{
		Samples: d.Samples[splitIdx:],
		Labels:  d.Labels[splitIdx:],
	}

	return train, test
}
