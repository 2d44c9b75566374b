package plan

import (
	"context"
	"testing"

	"github.com/kbukum/seqplan/decompose"
	"github.com/kbukum/seqplan/errors"
	"github.com/kbukum/seqplan/seq"
	"github.com/kbukum/seqplan/stage"
)

func synthesize(t *testing.T, s seq.Seq, term TerminalSpec) *Plan {
	t.Helper()
	stages, err := decompose.Decompose(s)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewSynthesizer(nil).Synthesize(context.Background(), stages, term)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSynthesize_TrivialRemovalFoldsToBounds(t *testing.T) {
	p := synthesize(t, seq.Drop(seq.Range(0, 10), 3), TerminalSpec{Op: OpCollect})

	if len(p.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(p.Entries))
	}
	want := BoundsAdjust{Offset: 3, Stride: 1, Limit: -1}
	if p.Entries[0] != Entry(want) {
		t.Errorf("entry = %#v, want %#v", p.Entries[0], want)
	}
	if p.Passes() != 0 {
		t.Error("a trivial removal must not materialize")
	}
}

func TestSynthesize_NonTrivialRemovalMaterializes(t *testing.T) {
	p := synthesize(t, seq.Filter(seq.Range(0, 10), func(n int) bool { return n%2 == 0 }),
		TerminalSpec{Op: OpCollect})

	if len(p.Entries) != 1 || p.Passes() != 1 {
		t.Fatalf("entries = %#v, want a single compact pass", p.Entries)
	}
	pass := p.Entries[0].(MaterializePass)
	if pass.Mode != ModeCompact {
		t.Errorf("mode = %s, want %s", pass.Mode, ModeCompact)
	}
	if !pass.Keep(4) || pass.Keep(5) {
		t.Error("pass predicate must be the filter's predicate")
	}
	if p.Terminal.PlaceholderAware {
		t.Error("the pass leaves no placeholders for the terminal")
	}
}

func TestSynthesize_TrivialFoldsAfterHazardCleared(t *testing.T) {
	p := synthesize(t, seq.Drop(
		seq.Filter(seq.Range(0, 10), func(n int) bool { return n%2 == 0 }), 1),
		TerminalSpec{Op: OpCollect})

	if len(p.Entries) != 2 {
		t.Fatalf("entries = %#v, want pass then bounds", p.Entries)
	}
	if pass, ok := p.Entries[0].(MaterializePass); !ok || pass.Mode != ModeCompact {
		t.Errorf("entries[0] = %#v, want compact pass", p.Entries[0])
	}
	want := BoundsAdjust{Offset: 1, Stride: 1, Limit: -1}
	if p.Entries[1] != Entry(want) {
		t.Errorf("entries[1] = %#v, want %#v", p.Entries[1], want)
	}
	if p.Passes() != 1 {
		t.Errorf("passes = %d, want 1: the flag is already clear when drop folds", p.Passes())
	}
}

func TestSynthesize_GroupingThenPositionAware(t *testing.T) {
	p := synthesize(t, seq.Pairwise(
		seq.ChunkBy(seq.FromSlice([]int{1, 1, 2, 2, 2, 3}),
			func(prev, cur int) bool { return prev != cur })),
		TerminalSpec{Op: OpCollect})

	if len(p.Entries) != 1 || p.Passes() != 1 {
		t.Fatalf("entries = %#v, want a single grouping pass", p.Entries)
	}
	pass := p.Entries[0].(MaterializePass)
	if pass.Mode != ModeCompactAndGroup {
		t.Errorf("mode = %s, want %s", pass.Mode, ModeCompactAndGroup)
	}
	if len(p.Terminal.Prep) != 1 || p.Terminal.Prep[0].Kind != stage.KindPairwise {
		t.Errorf("terminal prep = %v, want the pairwise pass-through", p.Terminal.Prep)
	}
	if p.Terminal.PlaceholderAware {
		t.Error("the grouping pass leaves no placeholders for the terminal")
	}
}

func TestSynthesize_Minimality(t *testing.T) {
	// Two hazard runs separated by clean stages: exactly two passes.
	p := synthesize(t, seq.Drop(
		seq.Filter(
			seq.Map(
				seq.Filter(seq.Range(0, 100), func(n int) bool { return n%2 == 0 }),
				func(n int) int { return n + 1 }),
			func(n int) bool { return n%3 == 0 }), 2),
		TerminalSpec{Op: OpCollect})

	if p.Passes() != 2 {
		t.Fatalf("passes = %d, want 2 (one per hazard run)", p.Passes())
	}
	// The map between the two filters rides in the second pass, not in a
	// pass of its own.
	second := p.Entries[1].(MaterializePass)
	if len(second.Prep) != 1 || second.Prep[0].Kind != stage.KindMap {
		t.Errorf("second pass prep = %v, want the intervening map", second.Prep)
	}
	if second.Prep[0].Params.Apply(3) != 4 {
		t.Error("prep transform must be the original map function")
	}
}

func TestSynthesize_TrailingTransformRidesOnTerminal(t *testing.T) {
	p := synthesize(t, seq.Map(seq.Range(0, 5), func(n int) int { return n * n }),
		TerminalSpec{})

	if len(p.Entries) != 0 {
		t.Errorf("entries = %#v, want none for a pure transform", p.Entries)
	}
	if len(p.Terminal.Prep) != 1 || p.Terminal.Prep[0].Params.Apply(3) != 9 {
		t.Error("transform must ride on the terminal's element access")
	}
	if p.Terminal.Spec.Op != OpCollect {
		t.Errorf("op = %s, want default %s", p.Terminal.Spec.Op, OpCollect)
	}
}

func TestSynthesize_PlanIdentity(t *testing.T) {
	s := seq.Take(seq.Range(0, 10), 4)
	a := synthesize(t, s, TerminalSpec{})
	b := synthesize(t, s, TerminalSpec{})
	if a.ID == b.ID {
		t.Error("each synthesis must mint a fresh plan identity")
	}
	if a.Shape != b.Shape || a.Shape != "range(0,10)|take(4)" {
		t.Errorf("shape = %q, want range(0,10)|take(4)", a.Shape)
	}
}

func TestSynthesize_TerminalValidation(t *testing.T) {
	stages, err := decompose.Decompose(seq.Range(0, 3))
	if err != nil {
		t.Fatal(err)
	}
	synth := NewSynthesizer(nil)

	if _, err := synth.Synthesize(context.Background(), stages, TerminalSpec{Op: OpReduce}); errors.CodeOf(err) != errors.ErrCodeInvalidPipeline {
		t.Error("reduce without a reducer must be rejected")
	}
	if _, err := synth.Synthesize(context.Background(), stages, TerminalSpec{Op: OpVisit}); errors.CodeOf(err) != errors.ErrCodeInvalidPipeline {
		t.Error("visit without a visitor must be rejected")
	}
	if _, err := synth.Synthesize(context.Background(), stages, TerminalSpec{Op: "sort"}); errors.CodeOf(err) != errors.ErrCodeInvalidPipeline {
		t.Error("unknown terminal operations must be rejected")
	}
}

func TestSynthesize_RejectsMalformedStageLists(t *testing.T) {
	synth := NewSynthesizer(nil)

	if _, err := synth.Synthesize(context.Background(), nil, TerminalSpec{}); errors.CodeOf(err) != errors.ErrCodeInvalidPipeline {
		t.Error("empty stage list must be rejected")
	}

	notFactory := []stage.Descriptor{{
		Kind: stage.KindMap,
		Meta: stage.Default().MustLookup(stage.KindMap),
	}}
	if _, err := synth.Synthesize(context.Background(), notFactory, TerminalSpec{}); errors.CodeOf(err) != errors.ErrCodeInvalidPipeline {
		t.Error("stage list not starting with a factory must be rejected")
	}
}
