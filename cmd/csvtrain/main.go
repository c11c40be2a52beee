package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/FlavioCFOliveira/fcclass/fcclass"
)

func main() {
	dataFile := flag.String("data", "", "CSV file with features and a 0/1 label column")
	labelCol := flag.Int("label", -1, "index of the label column, negative for the last column")
	header := flag.Bool("header", true, "skip the first CSV row")
	hidden := flag.String("hidden", "8", "comma separated hidden layer widths")
	lr := flag.Float64("lr", 0.05, "learning rate")
	epochs := flag.Int("epochs", 100, "number of training epochs")
	batch := flag.Int("batch", 32, "mini-batch size")
	seed := flag.Int64("seed", 0, "seed for weight initialization and shuffling")
	workers := flag.Int("workers", 1, "goroutines computing per-sample gradients")
	split := flag.Float64("split", 0.8, "fraction of samples used for training")
	normalize := flag.Bool("normalize", true, "min-max normalize features")
	logFile := flag.String("log", "", "optional CSV file receiving per-epoch costs")
	flag.Parse()

	if *dataFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	hiddenUnits, err := parseWidths(*hidden)
	if err != nil {
		log.Fatalf("Invalid -hidden: %v", err)
	}

	dataset, err := fcclass.LoadCSV(*dataFile, *labelCol, *header)
	if err != nil {
		log.Fatalf("Failed to load CSV: %v", err)
	}
	if *normalize {
		dataset.Normalize()
	}
	train, test := dataset.Split(*split)
	if train.Len() == 0 {
		log.Fatalf("No training samples with split %.2f", *split)
	}
	fmt.Printf("Loaded %d samples with %d features each (%d train, %d test).\n",
		dataset.Len(), len(dataset.Samples[0]), train.Len(), test.Len())

	model, err := fcclass.New(len(dataset.Samples[0]), hiddenUnits)
	if err != nil {
		log.Fatalf("Failed to create classifier: %v", err)
	}
	model.InitRandom(*seed)
	model.Summary(os.Stdout)

	callbacks := []fcclass.Callback{fcclass.Logger(max(*epochs/10, 1))}
	var csvLogger interface{ Err() error }
	if *logFile != "" {
		l := fcclass.NewCSVLogger(*logFile, false)
		callbacks = append(callbacks, l)
		csvLogger = l
	}

	cost, err := model.Train(train.Vectors(), train.Labels,
		fcclass.WithLearningRate(*lr),
		fcclass.WithEpochs(*epochs),
		fcclass.WithBatchSize(*batch),
		fcclass.WithSeed(*seed),
		fcclass.WithWorkers(*workers),
		fcclass.WithCallbacks(callbacks...),
	)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	if csvLogger != nil && csvLogger.Err() != nil {
		log.Printf("Cost log incomplete: %v", csvLogger.Err())
	}
	fmt.Printf("Training cost of the last epoch: %.6f (mean %.6f)\n", cost, cost/float64(train.Len()))

	if test.Len() == 0 {
		return
	}
	testCost, err := model.Evaluate(test.Matrix(), test.LabelVector())
	if err != nil {
		log.Fatalf("Failed to evaluate: %v", err)
	}
	pred, err := model.Predict(test.Matrix())
	if err != nil {
		log.Fatalf("Failed to predict: %v", err)
	}
	correct := 0
	for i, label := range test.Labels {
		if (pred.AtVec(i) >= 0.5) == (label >= 0.5) {
			correct++
		}
	}
	fmt.Printf("Test cost: %.6f, accuracy: %.2f%%\n", testCost, 100*float64(correct)/float64(test.Len()))
}

func parseWidths(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var widths []int
	for _, part := range strings.Split(s, ",") {
		w, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		widths = append(widths, w)
	}
	return widths, nil
}
