package model

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"antbee-trainer/internal/dataset"
	"antbee-trainer/internal/features"
)

const (
	// learningRate scales every gradient-descent update.
	learningRate = 0.001
	// eps clamps probabilities away from 0 and 1 before the logarithm.
	eps = 1e-7
)

// ErrEmptyDataset is returned when accuracy is requested over zero examples.
var ErrEmptyDataset = errors.New("model: evaluate on empty dataset")

// Logistic is a single-layer binary classifier: a weight per input feature,
// a bias, and a sigmoid squashing the score into a probability. The output
// is read as P(label = Bee | x).
type Logistic struct {
	w []float64
	b float64
}

// NewLogistic initializes weights uniformly in [-s, s] with
// s = sqrt(2 / InputDim) and the bias at zero. The rand source drives
// initialization only; pass a seeded one for reproducible runs.
func NewLogistic(rng *rand.Rand) *Logistic {
	scale := math.Sqrt(2.0 / float64(features.InputDim))
	w := make([]float64, features.InputDim)
	for i := range w {
		w[i] = (rng.Float64()*2 - 1) * scale
	}
	return &Logistic{w: w}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Forward computes P(Bee | x) for one feature vector.
func (m *Logistic) Forward(x []float64) float64 {
	return sigmoid(floats.Dot(m.w, x) + m.b)
}

// Predict maps the forward probability onto a label. The boundary
// probability 0.5 resolves to Ant.
func (m *Logistic) Predict(x []float64) dataset.Label {
	if m.Forward(x) > 0.5 {
		return dataset.Bee
	}
	return dataset.Ant
}

// Loss is the binary cross-entropy between a predicted probability and the
// true label, with the probability clamped into [eps, 1-eps] so the
// logarithm stays finite.
func Loss(p float64, label dataset.Label) float64 {
	p = math.Min(math.Max(p, eps), 1-eps)
	y := label.Target()
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

// TrainStep runs one stochastic gradient-descent update on a single example
// and returns the loss measured before the update. The gradient of
// cross-entropy through sigmoid collapses to dz = p - y, so
// dw = x*dz and db = dz.
func (m *Logistic) TrainStep(ex dataset.Example) float64 {
	p := m.Forward(ex.Features)
	loss := Loss(p, ex.Label)

	dz := p - ex.Label.Target()
	floats.AddScaled(m.w, -learningRate*dz, ex.Features)
	m.b -= learningRate * dz

	return loss
}

// Evaluate returns the fraction of examples whose prediction matches the
// stored label. An empty dataset is a configuration error, never a NaN.
func (m *Logistic) Evaluate(ds *dataset.Dataset) (float64, error) {
	if ds.Len() == 0 {
		return 0, ErrEmptyDataset
	}
	correct := 0
	for _, ex := range ds.Examples() {
		if m.Predict(ex.Features) == ex.Label {
			correct++
		}
	}
	return float64(correct) / float64(ds.Len()), nil
}
