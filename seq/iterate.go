package seq

import (
	"context"
	"fmt"

	"github.com/kbukum/seqplan/stage"
)

// Iterator provides pull-based sequential access to a sequence's values.
type Iterator interface {
	// Next returns the next value. Returns (nil, false, nil) when exhausted.
	Next(ctx context.Context) (any, bool, error)
}

// Iterable lets a sequence outside the built-in vocabulary supply its
// own sequential iterator. The planner cannot classify such a stage, but
// the fallback path can still evaluate it.
type Iterable interface {
	Iterator() Iterator
}

// Iterate returns a sequential one-element-at-a-time Iterator over s.
// This path never needs classification: it works for any well-formed
// pipeline and is the fallback when bulk planning fails.
func Iterate(s Seq) Iterator {
	if it, ok := s.(Iterable); ok {
		return it.Iterator()
	}
	switch s.Kind() {
	case stage.KindSlice:
		return &sliceIter{items: s.Params().Values}
	case stage.KindRange:
		return &rangeIter{next: s.Params().Start, remaining: s.Params().Count}
	case stage.KindMap:
		return &mapIter{source: Iterate(s.Base()), fn: s.Params().Apply}
	case stage.KindFilter:
		return &filterIter{source: Iterate(s.Base()), keep: s.Params().Keep}
	case stage.KindDrop:
		return &dropIter{source: Iterate(s.Base()), n: s.Params().Count}
	case stage.KindTake:
		return &takeIter{source: Iterate(s.Base()), remaining: s.Params().Count}
	case stage.KindStepBy:
		return &stepIter{source: Iterate(s.Base()), stride: s.Params().Count}
	case stage.KindChunks:
		return &chunksIter{source: Iterate(s.Base()), width: s.Params().Width}
	case stage.KindChunkBy:
		return &chunkByIter{source: Iterate(s.Base()), boundary: s.Params().Boundary}
	case stage.KindEnumerate:
		return &enumerateIter{source: Iterate(s.Base())}
	case stage.KindPairwise:
		return &pairwiseIter{source: Iterate(s.Base())}
	case stage.KindZip:
		return &zipIter{
			left:  Iterate(s.Base()),
			right: Iterate(s.Params().Right.(Seq)),
		}
	default:
		panic(fmt.Sprintf("seq: no sequential iterator for kind %q", s.Kind()))
	}
}

// Collect evaluates s sequentially and returns all values.
func Collect(ctx context.Context, s Seq) ([]any, error) {
	iter := Iterate(s)
	var result []any
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// --- Iterator implementations ---

type sliceIter struct {
	items []any
	index int
}

func (it *sliceIter) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if it.index >= len(it.items) {
		return nil, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

type rangeIter struct {
	next      int
	remaining int
}

func (it *rangeIter) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if it.remaining <= 0 {
		return nil, false, nil
	}
	val := it.next
	it.next++
	it.remaining--
	return val, true, nil
}

type mapIter struct {
	source Iterator
	fn     func(any) any
}

func (it *mapIter) Next(ctx context.Context) (any, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	return it.fn(val), true, nil
}

type filterIter struct {
	source Iterator
	keep   func(any) bool
}

func (it *filterIter) Next(ctx context.Context) (any, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		if it.keep(val) {
			return val, true, nil
		}
	}
}

type dropIter struct {
	source  Iterator
	n       int
	dropped bool
}

func (it *dropIter) Next(ctx context.Context) (any, bool, error) {
	if !it.dropped {
		for i := 0; i < it.n; i++ {
			if _, ok, err := it.source.Next(ctx); err != nil || !ok {
				return nil, false, err
			}
		}
		it.dropped = true
	}
	return it.source.Next(ctx)
}

type takeIter struct {
	source    Iterator
	remaining int
}

func (it *takeIter) Next(ctx context.Context) (any, bool, error) {
	if it.remaining <= 0 {
		return nil, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	it.remaining--
	return val, true, nil
}

type stepIter struct {
	source  Iterator
	stride  int
	started bool
}

func (it *stepIter) Next(ctx context.Context) (any, bool, error) {
	if it.started {
		for i := 0; i < it.stride-1; i++ {
			if _, ok, err := it.source.Next(ctx); err != nil || !ok {
				return nil, false, err
			}
		}
	}
	it.started = true
	return it.source.Next(ctx)
}

type chunksIter struct {
	source Iterator
	width  int
	done   bool
}

func (it *chunksIter) Next(ctx context.Context) (any, bool, error) {
	if it.done {
		return nil, false, nil
	}
	chunk := make([]any, 0, it.width)
	for len(chunk) < it.width {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			break
		}
		chunk = append(chunk, val)
	}
	if len(chunk) == 0 {
		return nil, false, nil
	}
	return chunk, true, nil
}

type chunkByIter struct {
	source   Iterator
	boundary func(prev, cur any) bool
	pending  any
	started  bool
	done     bool
}

func (it *chunkByIter) Next(ctx context.Context) (any, bool, error) {
	if it.done {
		return nil, false, nil
	}
	if !it.started {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			return nil, false, nil
		}
		it.pending = val
		it.started = true
	}

	group := []any{it.pending}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			return group, true, nil
		}
		if it.boundary(it.pending, val) {
			it.pending = val
			return group, true, nil
		}
		it.pending = val
		group = append(group, val)
	}
}

type enumerateIter struct {
	source Iterator
	index  int
}

func (it *enumerateIter) Next(ctx context.Context) (any, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	out := Indexed{Index: it.index, Value: val}
	it.index++
	return out, true, nil
}

type pairwiseIter struct {
	source  Iterator
	prev    any
	started bool
}

func (it *pairwiseIter) Next(ctx context.Context) (any, bool, error) {
	if !it.started {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		it.prev = val
		it.started = true
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	out := Pair{First: it.prev, Second: val}
	it.prev = val
	return out, true, nil
}

type zipIter struct {
	left  Iterator
	right Iterator
}

func (it *zipIter) Next(ctx context.Context) (any, bool, error) {
	l, ok, err := it.left.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	r, ok, err := it.right.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	return Pair{First: l, Second: r}, true, nil
}
