package stage

// Class grades how a stage removes or groups elements.
type Class string

const (
	// ClassNone means the stage neither removes nor groups.
	ClassNone Class = "none"
	// ClassTrivial means the surviving-index or group-boundary set is
	// computable from the input length and static parameters alone.
	ClassTrivial Class = "trivial"
	// ClassNonTrivial means survival or boundaries depend on evaluating a
	// per-element or per-pair predicate at runtime.
	ClassNonTrivial Class = "non_trivial"
)

// Metadata is the hazard classification for one stage kind.
type Metadata struct {
	// Removal grades how the stage removes elements.
	Removal Class `validate:"required,oneof=none trivial non_trivial"`
	// Grouping grades how the stage groups elements.
	Grouping Class `validate:"required,oneof=none trivial non_trivial"`
	// PositionAware is true if the stage's output depends on the absolute
	// or relative index of elements in its input. Such a stage cannot
	// operate on an input still containing placeholder markers.
	PositionAware bool
	// Factory is true for stages with no base.
	Factory bool
}

// Hazardous returns true when the stage forces a materialization pass on
// its own: its survival or boundaries need per-element evaluation.
func (m Metadata) Hazardous() bool {
	return m.Removal == ClassNonTrivial || m.Grouping == ClassNonTrivial
}

// Trivial returns true when the stage folds into pure index arithmetic.
func (m Metadata) Trivial() bool {
	return m.Removal == ClassTrivial || m.Grouping == ClassTrivial
}
