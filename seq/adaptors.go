package seq

import (
	"github.com/kbukum/seqplan/stage"
)

// Map transforms each element using fn.
func Map[T, U any](s Seq, fn func(T) U) Seq {
	return &node{
		kind: stage.KindMap,
		base: s,
		params: stage.Params{
			Apply: func(v any) any { return fn(v.(T)) },
		},
	}
}

// Filter keeps only elements that satisfy the predicate.
func Filter[T any](s Seq, pred func(T) bool) Seq {
	return &node{
		kind: stage.KindFilter,
		base: s,
		params: stage.Params{
			Keep: func(v any) bool { return pred(v.(T)) },
		},
	}
}

// Drop removes the first n elements.
func Drop(s Seq, n int) Seq {
	if n < 0 {
		panic("seq.Drop: n must be non-negative")
	}
	return &node{kind: stage.KindDrop, base: s, params: stage.Params{Count: n}}
}

// Take keeps only the first n elements.
func Take(s Seq, n int) Seq {
	if n < 0 {
		panic("seq.Take: n must be non-negative")
	}
	return &node{kind: stage.KindTake, base: s, params: stage.Params{Count: n}}
}

// StepBy keeps every n-th element, starting with the first.
func StepBy(s Seq, n int) Seq {
	if n <= 0 {
		panic("seq.StepBy: n must be positive")
	}
	return &node{kind: stage.KindStepBy, base: s, params: stage.Params{Count: n}}
}

// Chunks groups elements into non-overlapping fixed-width windows.
// The final window may be smaller than width.
func Chunks(s Seq, width int) Seq {
	if width <= 0 {
		panic("seq.Chunks: width must be positive")
	}
	return &node{kind: stage.KindChunks, base: s, params: stage.Params{Width: width}}
}

// ChunkBy groups consecutive elements, starting a new group whenever
// boundary(prev, cur) reports true.
func ChunkBy[T any](s Seq, boundary func(prev, cur T) bool) Seq {
	return &node{
		kind: stage.KindChunkBy,
		base: s,
		params: stage.Params{
			Boundary: func(prev, cur any) bool { return boundary(prev.(T), cur.(T)) },
		},
	}
}

// Enumerate pairs each element with its absolute index as an Indexed value.
func Enumerate(s Seq) Seq {
	return &node{kind: stage.KindEnumerate, base: s}
}

// Pairwise yields each adjacent element pair as a Pair value. A sequence
// of n elements yields n-1 pairs.
func Pairwise(s Seq) Seq {
	return &node{kind: stage.KindPairwise, base: s}
}

// Zip pairs elements positionally with a second sequence, stopping at the
// shorter of the two. The right-hand sequence is captured opaquely: the
// planner classifies the whole stage as position-aware and never
// decomposes or hazard-analyzes the right side.
func Zip(left, right Seq) Seq {
	return &node{kind: stage.KindZip, base: left, params: stage.Params{Right: right}}
}
