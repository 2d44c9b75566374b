package decompose

import (
	"github.com/kbukum/seqplan/errors"
	"github.com/kbukum/seqplan/seq"
	"github.com/kbukum/seqplan/stage"
)

// Decompose walks the pipeline outward-to-base and returns its stages in
// evaluation order, factory first, against the default registry.
//
// A ClassificationError means the pipeline used a kind the registry does
// not know; the caller must fall back to sequential evaluation
// (seq.Collect) rather than abort.
func Decompose(s seq.Seq) ([]stage.Descriptor, error) {
	return With(stage.Default(), s)
}

// With is Decompose against an explicit registry.
func With(reg *stage.Registry, s seq.Seq) ([]stage.Descriptor, error) {
	if s == nil {
		return nil, errors.InvalidPipeline("pipeline is nil")
	}

	// Unwrap iteratively rather than recursing: composition depth is
	// finite but unbounded, and the synthesizer wants an indexable list.
	var outward []stage.Descriptor
	for cur := s; cur != nil; cur = cur.Base() {
		meta, ok := reg.Lookup(cur.Kind())
		if !ok {
			return nil, errors.Classification(string(cur.Kind()))
		}
		if meta.Factory && cur.Base() != nil {
			return nil, errors.InvalidPipeline("factory stage has a base").
				WithDetail("kind", string(cur.Kind()))
		}
		outward = append(outward, stage.Descriptor{
			Kind:   cur.Kind(),
			Meta:   meta,
			Params: cur.Params(),
		})
	}

	innermost := outward[len(outward)-1]
	if !innermost.Meta.Factory {
		return nil, errors.InvalidPipeline("chain does not end in a factory").
			WithDetail("kind", string(innermost.Kind))
	}

	// Reverse to factory-first order for the synthesizer's forward pass.
	stages := make([]stage.Descriptor, len(outward))
	for i, d := range outward {
		stages[len(outward)-1-i] = d
	}
	return stages, nil
}
