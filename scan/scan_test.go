package scan

import (
	"context"
	"testing"
)

// parallelOpts forces the chunked code path even on tiny inputs.
var parallelOpts = Options{MaxParallel: 4, MinChunk: 2}

func ints(n int) []any {
	vals := make([]any, n)
	for i := range vals {
		vals[i] = i
	}
	return vals
}

func TestCompact_OrderPreserved(t *testing.T) {
	in := ints(101)
	even := func(v any) bool { return v.(int)%2 == 0 }

	got, err := Compact(context.Background(), in, even, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}

	// The sequential result is the oracle: same survivors, same order.
	var want []any
	for _, v := range in {
		if even(v) {
			want = append(want, v)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCompact_AllRemoved(t *testing.T) {
	got, err := Compact(context.Background(), ints(10),
		func(any) bool { return false }, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestCompact_Empty(t *testing.T) {
	got, err := Compact(context.Background(), nil,
		func(any) bool { return true }, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestCompact_RemovesTombstones(t *testing.T) {
	in := []any{1, Tombstone, 2, Tombstone, Tombstone, 3}
	got, err := Compact(context.Background(), in,
		func(v any) bool { return !IsTombstone(v) }, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestCompact_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compact(ctx, ints(10), func(any) bool { return true }, parallelOpts); err == nil {
		t.Error("want context error")
	}
}

func TestTransform_PreservesOrder(t *testing.T) {
	in := ints(53)
	got, err := Transform(context.Background(), in,
		func(v any) any { return v.(int) * 10 }, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if got[i] != i*10 {
			t.Fatalf("got[%d] = %v, want %d", i, got[i], i*10)
		}
	}
}

func TestGroup_RunBoundaries(t *testing.T) {
	in := []any{1, 1, 2, 2, 2, 3}
	spans, err := Group(context.Background(), in,
		func(prev, cur any) bool { return prev != cur }, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}

	want := []Span{{0, 2}, {2, 5}, {5, 6}}
	if len(spans) != len(want) {
		t.Fatalf("spans = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("spans[%d] = %v, want %v", i, spans[i], want[i])
		}
	}
}

func TestGroup_SingleGroup(t *testing.T) {
	spans, err := Group(context.Background(), ints(7),
		func(prev, cur any) bool { return false }, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 1 || spans[0] != (Span{0, 7}) {
		t.Errorf("spans = %v, want [{0 7}]", spans)
	}
}

func TestGroup_CoversInputWithoutGapsOrOverlaps(t *testing.T) {
	in := ints(97)
	spans, err := Group(context.Background(), in,
		func(prev, cur any) bool { return cur.(int)%5 == 0 }, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}

	if spans[0].Start != 0 {
		t.Errorf("first span starts at %d, want 0", spans[0].Start)
	}
	for g := 1; g < len(spans); g++ {
		if spans[g].Start != spans[g-1].End {
			t.Errorf("gap or overlap between span %d and %d: %v %v",
				g-1, g, spans[g-1], spans[g])
		}
	}
	if spans[len(spans)-1].End != len(in) {
		t.Errorf("last span ends at %d, want %d", spans[len(spans)-1].End, len(in))
	}
}

func TestGroup_Empty(t *testing.T) {
	spans, err := Group(context.Background(), nil,
		func(prev, cur any) bool { return true }, parallelOpts)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 0 {
		t.Errorf("spans = %v, want none", spans)
	}
}

func TestExclusiveScan_ChunkOffsets(t *testing.T) {
	// 11 elements with MinChunk 2 exercises the chunk-sum combine.
	flags := []bool{true, false, true, true, false, false, true, false, true, true, false}
	pos := make([]int, len(flags))

	total, err := exclusiveScan(context.Background(), flags, pos, parallelOpts.normalized())
	if err != nil {
		t.Fatal(err)
	}

	want := 0
	for i, f := range flags {
		if pos[i] != want {
			t.Errorf("pos[%d] = %d, want %d", i, pos[i], want)
		}
		if f {
			want++
		}
	}
	if total != want {
		t.Errorf("total = %d, want %d", total, want)
	}
}
