package model

import "antbee-trainer/internal/dataset"

// Classifier defines the minimal training functionality the loop requires.
type Classifier interface {
	TrainStep(ex dataset.Example) float64
	Evaluate(ds *dataset.Dataset) (float64, error)
}
