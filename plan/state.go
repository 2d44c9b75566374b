package plan

import (
	"github.com/kbukum/seqplan/errors"
	"github.com/kbukum/seqplan/scan"
	"github.com/kbukum/seqplan/stage"
)

// State is the two-valued hazard flag threaded through synthesis.
type State int

const (
	// Clean means the sequence at this point contains no placeholder
	// markers.
	Clean State = iota
	// Hazarded means removals have been marked with placeholders but not
	// yet compacted away.
	Hazarded
)

func (s State) String() string {
	if s == Hazarded {
		return "hazarded"
	}
	return "clean"
}

// threaded is the full fold state: the hazard flag plus the residual
// lazy program accumulated since the last materialization point.
type threaded struct {
	state State
	prep  []stage.Descriptor
}

func notTombstone(v any) bool { return !scan.IsTombstone(v) }

// step applies the transition table to one stage, returning the next
// state and the plan entries the stage contributes. Pure: no I/O, no
// shared mutation, so every transition is testable in isolation.
//
// The table is total over the classification space. Factories contribute
// nothing; hazardous stages emit an eager materialization pass and leave
// the state Clean; trivial stages fold to index arithmetic, compacting
// first if placeholders are pending; position-aware stages pass through
// after any needed compaction; everything else is element-wise and joins
// the residual program, placeholder-aware while hazarded.
func step(t threaded, d stage.Descriptor) (threaded, []Entry, error) {
	meta := d.Meta
	switch {
	case meta.Factory:
		return t, nil, nil

	case meta.Hazardous():
		pass, err := hazardPass(d, t.prep)
		if err != nil {
			return t, nil, err
		}
		// Eager policy: the pass physically removes placeholders, so the
		// hazard it introduces is discharged in the same step.
		return threaded{state: Clean}, []Entry{pass}, nil

	case meta.Trivial():
		adjust, err := foldTrivial(d)
		if err != nil {
			return t, nil, err
		}
		if t.state == Hazarded {
			// Index arithmetic over a sequence still holding placeholders
			// would count them as real elements. Compact first.
			compact := MaterializePass{Mode: ModeCompact, Keep: notTombstone, Prep: t.prep}
			return threaded{state: Clean}, []Entry{compact, adjust}, nil
		}
		if hasReshape(t.prep) || (adjust.Window > 0 && len(t.prep) > 0) {
			// Bounds arithmetic must not commute past a pending reshape,
			// and a window fold is itself a reshape: regrouping ahead of a
			// pending transform would hand the transform groups instead of
			// elements. Realize this stage in order at the next consumption
			// point instead.
			return threaded{state: t.state, prep: appendDesc(t.prep, d)}, nil, nil
		}
		return t, []Entry{adjust}, nil

	case meta.PositionAware:
		var entries []Entry
		if t.state == Hazarded {
			// A position-aware stage must never observe a placeholder.
			entries = append(entries, MaterializePass{
				Mode: ModeCompact, Keep: notTombstone, Prep: t.prep,
			})
			t = threaded{state: Clean}
		}
		return threaded{state: t.state, prep: appendDesc(t.prep, d)}, entries, nil

	default:
		// Pure element-wise. No entry; the transform rides along to the
		// next materialization point or the terminal.
		if d.Params.Apply == nil {
			return t, nil, nil
		}
		if t.state == Hazarded {
			d = placeholderAware(d)
		}
		return threaded{state: t.state, prep: appendDesc(t.prep, d)}, nil, nil
	}
}

// hazardPass builds the materialization pass for a non-trivial stage.
// Non-trivial grouping fuses removal and grouping into one pass.
func hazardPass(d stage.Descriptor, prep []stage.Descriptor) (MaterializePass, error) {
	if d.Meta.Grouping == stage.ClassNonTrivial {
		if d.Params.Boundary == nil {
			return MaterializePass{}, errors.UnsupportedComposition(string(d.Kind),
				"non-trivial grouping without a boundary predicate")
		}
		return MaterializePass{
			Mode:     ModeCompactAndGroup,
			Keep:     d.Params.Keep,
			Boundary: d.Params.Boundary,
			Prep:     prep,
		}, nil
	}
	if d.Params.Keep == nil {
		return MaterializePass{}, errors.UnsupportedComposition(string(d.Kind),
			"non-trivial removal without a survival predicate")
	}
	return MaterializePass{Mode: ModeCompact, Keep: d.Params.Keep, Prep: prep}, nil
}

// foldTrivial maps a trivially-classified stage to its bounds transform.
func foldTrivial(d stage.Descriptor) (BoundsAdjust, error) {
	switch d.Kind {
	case stage.KindDrop:
		return BoundsAdjust{Offset: d.Params.Count, Stride: 1, Limit: -1}, nil
	case stage.KindTake:
		return BoundsAdjust{Stride: 1, Limit: d.Params.Count}, nil
	case stage.KindStepBy:
		return BoundsAdjust{Stride: d.Params.Count, Limit: -1}, nil
	case stage.KindChunks:
		return BoundsAdjust{Stride: 1, Limit: -1, Window: d.Params.Width}, nil
	default:
		return BoundsAdjust{}, errors.UnsupportedComposition(string(d.Kind),
			"classified trivial but has no closed-form bounds fold")
	}
}

// placeholderAware wraps an element-wise transform so it propagates
// placeholder markers untouched.
func placeholderAware(d stage.Descriptor) stage.Descriptor {
	apply := d.Params.Apply
	d.Params.Apply = func(v any) any {
		if scan.IsTombstone(v) {
			return v
		}
		return apply(v)
	}
	return d
}

// hasReshape reports whether the residual program changes element
// positions or shape: position-aware pass-throughs and trivial grouping
// (fixed-width windows) both pin every later stage to program order.
func hasReshape(prep []stage.Descriptor) bool {
	for _, d := range prep {
		if d.Meta.PositionAware || d.Meta.Grouping == stage.ClassTrivial {
			return true
		}
	}
	return false
}

// appendDesc appends without aliasing the input slice's backing array,
// keeping earlier fold states valid.
func appendDesc(prep []stage.Descriptor, d stage.Descriptor) []stage.Descriptor {
	out := make([]stage.Descriptor, len(prep), len(prep)+1)
	copy(out, prep)
	return append(out, d)
}
