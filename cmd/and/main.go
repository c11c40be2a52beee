package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/FlavioCFOliveira/fcclass/fcclass"
	"gonum.org/v1/gonum/mat"
)

func main() {
	epochs := flag.Int("epochs", 2000, "number of training epochs")
	lr := flag.Float64("lr", 0.5, "learning rate")
	seed := flag.Int64("seed", 0, "seed for weight initialization and shuffling")
	hidden := flag.Int("hidden", 0, "width of a single hidden layer (0 for none)")
	flag.Parse()

	fmt.Println("=== AND Training Example ===")

	var hiddenUnits []int
	if *hidden > 0 {
		hiddenUnits = []int{*hidden}
	}
	model, err := fcclass.New(2, hiddenUnits)
	if err != nil {
		log.Fatalf("Failed to create classifier: %v", err)
	}
	model.InitRandom(*seed)
	model.Summary(os.Stdout)

	// AND training data
	trainX := []mat.Vector{
		mat.NewVecDense(2, []float64{0, 0}),
		mat.NewVecDense(2, []float64{1, 0}),
		mat.NewVecDense(2, []float64{0, 1}),
		mat.NewVecDense(2, []float64{1, 1}),
	}
	trainY := []float64{0, 0, 0, 1}
	evalX := mat.NewDense(2, 4, []float64{
		0, 1, 0, 1,
		0, 0, 1, 1,
	})
	evalY := mat.NewVecDense(4, trainY)

	before, err := model.Evaluate(evalX, evalY)
	if err != nil {
		log.Fatalf("Failed to evaluate: %v", err)
	}
	fmt.Printf("Cost before training: %.6f\n", before)

	cost, err := model.Train(trainX, trainY,
		fcclass.WithLearningRate(*lr),
		fcclass.WithEpochs(*epochs),
		fcclass.WithBatchSize(4),
		fcclass.WithSeed(*seed),
		fcclass.WithCallbacks(fcclass.Logger(*epochs/10+1)),
	)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	fmt.Printf("Cost of the last epoch: %.6f\n", cost)

	// Test the network
	fmt.Println("\nTesting trained network:")
	pred, err := model.Predict(evalX)
	if err != nil {
		log.Fatalf("Failed to predict: %v", err)
	}
	for i := range trainX {
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n",
			mat.Col(nil, i, evalX), pred.AtVec(i), trainY[i])
	}
}
