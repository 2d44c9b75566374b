package scan

import (
	"context"
	"sync"
)

// forEachChunk partitions [0, n) into contiguous chunks and runs fn once
// per chunk, at most MaxParallel at a time. Returning from forEachChunk
// is the global barrier: every chunk has finished.
//
// fn must only write to indexes inside its own [lo, hi) range; shared
// reads are safe because no phase mutates what another phase reads.
func forEachChunk(ctx context.Context, n int, o Options, fn func(chunk, lo, hi int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	size := o.chunkSize(n)
	nchunks := (n + size - 1) / size
	if nchunks == 1 {
		fn(0, 0, n)
		return ctx.Err()
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, o.MaxParallel)
	for c := 0; c < nchunks; c++ {
		lo := c * size
		hi := lo + size
		if hi > n {
			hi = n
		}

		wg.Add(1)
		go func(c, lo, hi int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			fn(c, lo, hi)
		}(c, lo, hi)
	}
	wg.Wait()
	return ctx.Err()
}

// chunkCount mirrors the partitioning of forEachChunk so the scan phase
// can allocate one partial sum per chunk.
func (o Options) chunkCount(n int) int {
	if n == 0 {
		return 0
	}
	size := o.chunkSize(n)
	return (n + size - 1) / size
}

// exclusiveScan converts per-element flags into exclusive prefix counts:
// pos[i] = number of set flags in flags[0:i]. Returns the total count.
//
// The scan itself is split the same way as the other phases: chunk-local
// counts in parallel, a short sequential combine over the chunk sums,
// then a parallel rescan that offsets each chunk.
func exclusiveScan(ctx context.Context, flags []bool, pos []int, o Options) (int, error) {
	n := len(flags)
	sums := make([]int, o.chunkCount(n))

	err := forEachChunk(ctx, n, o, func(c, lo, hi int) {
		count := 0
		for i := lo; i < hi; i++ {
			if flags[i] {
				count++
			}
		}
		sums[c] = count
	})
	if err != nil {
		return 0, err
	}

	total := 0
	for c, s := range sums {
		sums[c] = total
		total += s
	}

	err = forEachChunk(ctx, n, o, func(c, lo, hi int) {
		running := sums[c]
		for i := lo; i < hi; i++ {
			pos[i] = running
			if flags[i] {
				running++
			}
		}
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Compact removes every element of in for which keep is false and
// returns the survivors in their original relative order.
//
// Three phases, globally barriered: evaluate keep over all elements,
// exclusive-scan the flags into destination indexes, scatter survivors.
func Compact(ctx context.Context, in []any, keep func(any) bool, o Options) ([]any, error) {
	o = o.normalized()
	n := len(in)

	flags := make([]bool, n)
	err := forEachChunk(ctx, n, o, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			flags[i] = keep(in[i])
		}
	})
	if err != nil {
		return nil, err
	}

	pos := make([]int, n)
	total, err := exclusiveScan(ctx, flags, pos, o)
	if err != nil {
		return nil, err
	}

	out := make([]any, total)
	err = forEachChunk(ctx, n, o, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			if flags[i] {
				out[pos[i]] = in[i]
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transform applies fn to every element in parallel, preserving order.
// Single phase, no barrier needed beyond completion: each element owns
// exactly one output slot.
func Transform(ctx context.Context, in []any, fn func(any) any, o Options) ([]any, error) {
	o = o.normalized()
	out := make([]any, len(in))
	err := forEachChunk(ctx, len(in), o, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = fn(in[i])
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Span is a half-open [Start, End) index range over the scanned input.
// A grouping pass keeps exactly one span per group.
type Span struct {
	Start int
	End   int
}

// Group partitions in into contiguous groups. boundary(prev, cur)
// reports whether cur starts a new group; the first element always does.
// Spans cover [0, len(in)) without gaps or overlaps, in input order.
//
// Same three phases as Compact: the boundary predicate evaluates in
// parallel (each agent may read its left neighbor, which no phase
// writes), the flags scan into group indexes, and the scatter writes one
// representative span start per group.
func Group(ctx context.Context, in []any, boundary func(prev, cur any) bool, o Options) ([]Span, error) {
	o = o.normalized()
	n := len(in)
	if n == 0 {
		return nil, ctx.Err()
	}

	flags := make([]bool, n)
	err := forEachChunk(ctx, n, o, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			if i == 0 {
				flags[0] = true
				continue
			}
			flags[i] = boundary(in[i-1], in[i])
		}
	})
	if err != nil {
		return nil, err
	}

	pos := make([]int, n)
	total, err := exclusiveScan(ctx, flags, pos, o)
	if err != nil {
		return nil, err
	}

	spans := make([]Span, total)
	err = forEachChunk(ctx, n, o, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			if flags[i] {
				spans[pos[i]].Start = i
			}
		}
	})
	if err != nil {
		return nil, err
	}

	// Group g ends where group g+1 starts; sequential, one step per group.
	for g := 0; g < total-1; g++ {
		spans[g].End = spans[g+1].Start
	}
	spans[total-1].End = n
	return spans, nil
}
