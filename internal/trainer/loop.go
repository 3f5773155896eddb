package trainer

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"antbee-trainer/internal/dataset"
	"antbee-trainer/internal/metrics"
	"antbee-trainer/internal/model"
)

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Epochs   int
	LogEvery int
}

// Run drives a fixed number of epochs of stochastic gradient descent over
// the training set, reporting average loss and held-out accuracy on the
// LogEvery cadence (epoch 0 included). Examples are visited strictly in the
// dataset's stored order; each step sees the parameters left by the one
// before it.
func Run(ctx context.Context, mdl model.Classifier, train, val *dataset.Dataset, cfg RunConfig) error {
	if cfg.Epochs <= 0 {
		return errors.New("trainer: epochs must be > 0")
	}
	if train.Len() == 0 {
		return errors.New("trainer: training dataset is empty")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 10
	}

	var window metrics.Window
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		avgLoss := runEpoch(mdl, train)
		window.Record(train.Len(), time.Since(start), avgLoss)

		if epoch%cfg.LogEvery == 0 {
			acc, err := mdl.Evaluate(val)
			if err != nil {
				return errors.Wrap(err, "trainer: evaluate")
			}
			snap := window.Snapshot()
			log.Printf("epoch=%d loss=%.4f acc=%.2f%% examples_per_sec=%.1f epoch_ms=%.2f",
				epoch,
				avgLoss,
				acc*100,
				snap.ExamplesPerSec,
				snap.AvgEpochMS,
			)
		}
	}

	return nil
}

// runEpoch performs one sequential pass over every example and returns the
// average pre-update loss.
func runEpoch(mdl model.Classifier, ds *dataset.Dataset) float64 {
	total := 0.0
	for _, ex := range ds.Examples() {
		total += mdl.TrainStep(ex)
	}
	return total / float64(ds.Len())
}
