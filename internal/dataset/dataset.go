package dataset

import (
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"go.uber.org/atomic"

	"antbee-trainer/internal/features"
)

// Example pairs one feature vector with its class label. Examples are
// immutable after construction and owned by the Dataset holding them.
type Example struct {
	Features []float64
	Label    Label
}

// Dataset is a fixed, pre-shuffled sequence of labeled examples. The order
// is decided once at build time and reused by every epoch.
type Dataset struct {
	examples []Example
}

// New wraps examples as-is, without shuffling. Intended for tests and for
// callers that already own an ordered sample set.
func New(examples []Example) *Dataset {
	return &Dataset{examples: examples}
}

func (d *Dataset) Len() int {
	return len(d.examples)
}

// Examples exposes the stored order. Callers must not mutate the slice.
func (d *Dataset) Examples() []Example {
	return d.examples
}

// Count returns how many examples carry the given label.
func (d *Dataset) Count(label Label) int {
	n := 0
	for _, ex := range d.examples {
		if ex.Label == label {
			n++
		}
	}
	return n
}

// BuildOptions configures dataset construction.
type BuildOptions struct {
	// RNG drives the one-time shuffle. Nil means a time-seeded source,
	// so distinct runs see distinct orders.
	RNG *rand.Rand
	// NumWorkers bounds the feature-extraction pool. Values below 1 mean
	// a single worker.
	NumWorkers int
}

// Build loads every image under root's two class subdirectories (AntDir and
// BeeDir), extracts features in parallel, and returns the combined examples
// in one uniformly shuffled order. Both subdirectories are validated before
// any decoding starts, and the first undecodable file fails the whole build.
func Build(root string, opts BuildOptions) (*Dataset, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}
	antDir := filepath.Join(root, AntDir)
	beeDir := filepath.Join(root, BeeDir)
	if err := checkDir(antDir); err != nil {
		return nil, err
	}
	if err := checkDir(beeDir); err != nil {
		return nil, err
	}

	antPaths, err := ListImages(antDir)
	if err != nil {
		return nil, err
	}
	beePaths, err := ListImages(beeDir)
	if err != nil {
		return nil, err
	}

	processed := atomic.NewInt64(0)
	ants, err := extractAll(antPaths, Ant, opts.NumWorkers, processed)
	if err != nil {
		return nil, err
	}
	bees, err := extractAll(beePaths, Bee, opts.NumWorkers, processed)
	if err != nil {
		return nil, err
	}

	examples := make([]Example, 0, len(ants)+len(bees))
	examples = append(examples, ants...)
	examples = append(examples, bees...)

	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})

	log.Printf("dataset root=%s images=%d ants=%d bees=%d dim=%d",
		root, processed.Load(), len(ants), len(bees), features.InputDim)

	return &Dataset{examples: examples}, nil
}
