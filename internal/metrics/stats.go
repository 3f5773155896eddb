package metrics

import "time"

// Window accumulates throughput stats across training epochs.
type Window struct {
	examples int
	compute  time.Duration
	epochs   int
	lastLoss float64
}

// Record adds one finished epoch to the window.
func (w *Window) Record(examples int, computeTime time.Duration, loss float64) {
	w.examples += examples
	w.compute += computeTime
	w.epochs++
	w.lastLoss = loss
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{}
	if w.compute > 0 {
		snap.ExamplesPerSec = float64(w.examples) / w.compute.Seconds()
	}
	if w.epochs > 0 {
		snap.AvgEpochMS = (w.compute.Seconds() * 1000) / float64(w.epochs)
	}
	snap.LastLoss = w.lastLoss

	w.examples = 0
	w.compute = 0
	w.epochs = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	ExamplesPerSec float64
	AvgEpochMS     float64
	LastLoss       float64
}
