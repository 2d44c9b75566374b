package plan

import (
	"github.com/google/uuid"

	"github.com/kbukum/seqplan/stage"
)

// Mode selects the materializer variant for a pass.
type Mode string

const (
	// ModeCompact removes elements failing the keep predicate,
	// order-preserving.
	ModeCompact Mode = "compact"
	// ModeCompactAndGroup computes group spans from a boundary predicate
	// and keeps one representative span per group. Grouping and
	// removal-of-superseded-elements fuse into one scan.
	ModeCompactAndGroup Mode = "compact_and_group"
)

// Op identifies the terminal bulk operation.
type Op string

const (
	// OpCollect gathers the final sequence into a slice.
	OpCollect Op = "collect"
	// OpReduce folds the final sequence into a single value.
	OpReduce Op = "reduce"
	// OpVisit calls a visitor for every element of the final sequence.
	OpVisit Op = "visit"
)

// Entry is one step of an execution plan. The variants are closed:
// BoundsAdjust and MaterializePass.
type Entry interface {
	isEntry()
}

// BoundsAdjust is a pure index-arithmetic transform folded into how work
// is distributed to execution agents. No data movement.
type BoundsAdjust struct {
	// Offset skips the first Offset visible elements.
	Offset int
	// Stride keeps every Stride-th visible element (1 = all).
	Stride int
	// Limit caps the visible element count (-1 = unbounded).
	Limit int
	// Window, when positive, regroups the visible elements into
	// fixed-width windows; group boundaries are a pure function of
	// position.
	Window int
}

func (BoundsAdjust) isEntry() {}

// MaterializePass invokes the scan-based materializer, producing a new
// concrete sequence with no placeholder markers.
type MaterializePass struct {
	// Mode selects compaction or fused compaction-and-grouping.
	Mode Mode
	// Keep is the survival predicate for ModeCompact, evaluated on the
	// prep-applied element.
	Keep func(any) bool
	// Boundary reports whether cur starts a new group relative to prev,
	// for ModeCompactAndGroup.
	Boundary func(prev, cur any) bool
	// Prep is the residual lazy program accumulated since the previous
	// materialization: element-wise transforms and position-aware
	// pass-throughs the pass input must reflect.
	Prep []stage.Descriptor
}

func (MaterializePass) isEntry() {}

// TerminalSpec is the caller's requested bulk operation.
type TerminalSpec struct {
	Op     Op
	Reduce func(acc, v any) any
	Init   any
	Visit  func(i int, v any) error
}

// Terminal is the single closing plan entry: the bulk operation wired to
// whatever representation the final hazard state implies.
type Terminal struct {
	Spec TerminalSpec
	// Prep is the residual lazy program between the last materialization
	// and consumption; it costs nothing extra at consumption time.
	Prep []stage.Descriptor
	// PlaceholderAware is true when the final sequence may still contain
	// placeholder markers and element access must skip them.
	PlaceholderAware bool
}

// Plan is an ordered execution plan: zero or more entries followed by
// exactly one terminal operation. Immutable once synthesized.
type Plan struct {
	ID    uuid.UUID
	Shape string
	// Source is the factory stage the plan's input comes from, so an
	// execution substrate can run the plan without the original pipeline.
	Source   stage.Descriptor
	Entries  []Entry
	Terminal Terminal
}

// Passes returns the number of materialization passes in the plan.
func (p *Plan) Passes() int {
	n := 0
	for _, e := range p.Entries {
		if _, ok := e.(MaterializePass); ok {
			n++
		}
	}
	return n
}

// BoundsAdjusts returns the number of bounds-adjust entries in the plan.
func (p *Plan) BoundsAdjusts() int {
	n := 0
	for _, e := range p.Entries {
		if _, ok := e.(BoundsAdjust); ok {
			n++
		}
	}
	return n
}
