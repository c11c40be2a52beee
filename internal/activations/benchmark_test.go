// Package activations provides benchmarks for activation functions.
package activations

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// fillRandom fills a slice with random values.
func fillRandom(slice []float64) {
	for i := range slice {
		slice[i] = rand.Float64()
	}
}

// BenchmarkSigmoidActivate benchmarks the Sigmoid activation function.
func BenchmarkSigmoidActivate(b *testing.B) {
	sigmoid := Sigmoid{}
	inputs := make([]float64, 1000)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, x := range inputs {
			sigmoid.Activate(x)
		}
	}
}

// BenchmarkSigmoidDerivative benchmarks the Sigmoid derivative function.
func BenchmarkSigmoidDerivative(b *testing.B) {
	sigmoid := Sigmoid{}
	inputs := make([]float64, 1000)
	fillRandom(inputs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, x := range inputs {
			sigmoid.Derivative(x)
		}
	}
}

// BenchmarkApply benchmarks element-wise application over a 32x32 matrix.
func BenchmarkApply(b *testing.B) {
	data := make([]float64, 32*32)
	fillRandom(data)
	m := mat.NewDense(32, 32, data)
	var dst mat.Dense

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst.Reset()
		Apply(&dst, Sigmoid{}.Activate, m)
	}
}
