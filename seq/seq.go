package seq

import (
	"github.com/kbukum/seqplan/stage"
)

// Seq is a lazily-evaluated sequence value: a factory or an adaptor
// applied to a base sequence.
type Seq interface {
	// Kind returns the stage kind tag.
	Kind() stage.Kind
	// Base returns the immediate upstream sequence, or nil for a factory.
	Base() Seq
	// Params returns the captured parameters. Immutable after capture.
	Params() stage.Params
}

// node is the single concrete Seq implementation. Adaptor constructors
// differ only in the kind tag and which parameters they capture.
type node struct {
	kind   stage.Kind
	base   Seq
	params stage.Params
}

func (n *node) Kind() stage.Kind     { return n.kind }
func (n *node) Base() Seq            { return n.base }
func (n *node) Params() stage.Params { return n.params }

// Indexed pairs an element with its absolute position, produced by Enumerate.
type Indexed struct {
	Index int
	Value any
}

// Pair is an adjacent or positional element pair, produced by Pairwise and Zip.
type Pair struct {
	First  any
	Second any
}

// --- Factories ---

// FromSlice creates a sequence over the given values.
func FromSlice[T any](items []T) Seq {
	values := make([]any, len(items))
	for i, v := range items {
		values[i] = v
	}
	return &node{kind: stage.KindSlice, params: stage.Params{Values: values}}
}

// Range creates a sequence over the half-open interval [start, start+count).
func Range(start, count int) Seq {
	if count < 0 {
		panic("seq.Range: count must be non-negative")
	}
	return &node{kind: stage.KindRange, params: stage.Params{Start: start, Count: count}}
}
