package dataset

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"antbee-trainer/internal/features"
)

// extractAll runs feature extraction for every path on a bounded worker
// pool. Results keep the input order; the label is applied to all of them.
// The first extraction error cancels the pool and fails the batch.
func extractAll(paths []string, label Label, workers int, processed *atomic.Int64) ([]Example, error) {
	if workers <= 0 {
		workers = 1
	}
	if len(paths) == 0 {
		return nil, nil
	}

	examples := make([]Example, len(paths))
	jobs := make(chan int)
	errCh := make(chan error, workers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				vec, err := features.FromFile(paths[i])
				if err != nil {
					select {
					case errCh <- err:
					default:
					}
					cancel()
					return
				}
				examples[i] = Example{Features: vec, Label: label}
				processed.Inc()
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}
	return examples, nil
}
