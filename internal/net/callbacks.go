package net

import (
	"fmt"
	"io"
	"os"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(epoch int, cost float64, n *Network)
	OnBatchBegin(batch int, n *Network)
	OnBatchEnd(batch int, cost float64, n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                        {}
func (c BaseCallback) OnTrainEnd(n *Network)                          {}
func (c BaseCallback) OnEpochBegin(epoch int, n *Network)             {}
func (c BaseCallback) OnEpochEnd(epoch int, cost float64, n *Network) {}
func (c BaseCallback) OnBatchBegin(batch int, n *Network)             {}
func (c BaseCallback) OnBatchEnd(batch int, cost float64, n *Network) {}

// Logger logs training progress. Out defaults to os.Stdout.
type Logger struct {
	BaseCallback
	Interval int
	Out      io.Writer
}

func (c Logger) OnEpochEnd(epoch int, cost float64, n *Network) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		out := c.Out
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintf(out, "Epoch %d: cost = %.6f\n", epoch, cost)
	}
}

// History records the summed cost of every epoch.
type History struct {
	BaseCallback
	Costs []float64
}

func (h *History) OnTrainBegin(n *Network) {
	h.Costs = h.Costs[:0]
}

func (h *History) OnEpochEnd(epoch int, cost float64, n *Network) {
	h.Costs = append(h.Costs, cost)
}
