package dataset

// Label identifies which of the two classes an example belongs to.
type Label uint8

const (
	Ant Label = iota
	Bee
)

// Subdirectory names expected under a dataset root, one per class.
const (
	AntDir = "ants"
	BeeDir = "bees"
)

// Target returns the numeric training target for the label: 0 for Ant,
// 1 for Bee. Loss and gradient formulas are parameterized on this value.
func (l Label) Target() float64 {
	if l == Bee {
		return 1
	}
	return 0
}

func (l Label) String() string {
	if l == Bee {
		return "bee"
	}
	return "ant"
}
