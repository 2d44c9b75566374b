package decompose

import (
	"testing"

	"github.com/kbukum/seqplan/errors"
	"github.com/kbukum/seqplan/seq"
	"github.com/kbukum/seqplan/stage"
)

func kindsOf(descs []stage.Descriptor) []stage.Kind {
	kinds := make([]stage.Kind, len(descs))
	for i, d := range descs {
		kinds[i] = d.Kind
	}
	return kinds
}

func kindsEqual(a, b []stage.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDecompose_FactoryFirst(t *testing.T) {
	p := seq.Drop(seq.Filter(seq.Map(seq.Range(0, 10),
		func(n int) int { return n * 2 }),
		func(n int) bool { return n > 4 }), 1)

	descs, err := Decompose(p)
	if err != nil {
		t.Fatal(err)
	}

	want := []stage.Kind{stage.KindRange, stage.KindMap, stage.KindFilter, stage.KindDrop}
	if !kindsEqual(kindsOf(descs), want) {
		t.Errorf("kinds = %v, want %v", kindsOf(descs), want)
	}
	if !descs[0].Meta.Factory {
		t.Error("first descriptor must be a factory")
	}
}

func TestDecompose_BareFactory(t *testing.T) {
	descs, err := Decompose(seq.FromSlice([]int{1, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if len(descs) != 1 || descs[0].Kind != stage.KindSlice {
		t.Errorf("descs = %v, want single slice factory", kindsOf(descs))
	}
}

func TestDecompose_CapturesParameters(t *testing.T) {
	descs, err := Decompose(seq.Drop(seq.Range(3, 7), 2))
	if err != nil {
		t.Fatal(err)
	}
	if descs[0].Params.Start != 3 || descs[0].Params.Count != 7 {
		t.Errorf("range params = %+v, want start=3 count=7", descs[0].Params)
	}
	if descs[1].Params.Count != 2 {
		t.Errorf("drop count = %d, want 2", descs[1].Params.Count)
	}
}

func TestDecompose_ZipIsOpaque(t *testing.T) {
	right := seq.Filter(seq.Range(0, 5), func(n int) bool { return n > 1 })
	descs, err := Decompose(seq.Zip(seq.Range(0, 5), right))
	if err != nil {
		t.Fatal(err)
	}

	// The right side is captured as a parameter, never decomposed: only
	// the left chain contributes stages.
	want := []stage.Kind{stage.KindRange, stage.KindZip}
	if !kindsEqual(kindsOf(descs), want) {
		t.Errorf("kinds = %v, want %v", kindsOf(descs), want)
	}
	if descs[1].Params.Right == nil {
		t.Error("zip should capture its right base as an opaque parameter")
	}
}

func TestDecompose_NilPipeline(t *testing.T) {
	_, err := Decompose(nil)
	if errors.CodeOf(err) != errors.ErrCodeInvalidPipeline {
		t.Errorf("code = %s, want %s", errors.CodeOf(err), errors.ErrCodeInvalidPipeline)
	}
}

func TestDecompose_UnknownKindFallsBack(t *testing.T) {
	// A registry that does not know "filter" stands in for a pipeline
	// using a construct the system cannot reason about.
	reg := stage.NewRegistry()
	reg.MustRegister(stage.KindRange, stage.Metadata{
		Removal: stage.ClassNone, Grouping: stage.ClassNone, Factory: true,
	})

	p := seq.Filter(seq.Range(0, 4), func(n int) bool { return n > 0 })
	_, err := With(reg, p)
	if errors.CodeOf(err) != errors.ErrCodeClassification {
		t.Fatalf("code = %s, want %s", errors.CodeOf(err), errors.ErrCodeClassification)
	}
	if !errors.CanFallback(err) {
		t.Error("classification errors must permit sequential fallback")
	}
}
