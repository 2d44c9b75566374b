package exec

import (
	"context"

	"github.com/kbukum/seqplan/errors"
	"github.com/kbukum/seqplan/plan"
	"github.com/kbukum/seqplan/scan"
	"github.com/kbukum/seqplan/seq"
	"github.com/kbukum/seqplan/stage"
)

// materializeSource realizes a factory stage into a concrete sequence.
func materializeSource(d stage.Descriptor) ([]any, error) {
	switch d.Kind {
	case stage.KindSlice:
		return d.Params.Values, nil
	case stage.KindRange:
		out := make([]any, d.Params.Count)
		for i := range out {
			out[i] = d.Params.Start + i
		}
		return out, nil
	default:
		return nil, errors.Execution("source",
			errors.UnsupportedComposition(string(d.Kind), "not a known factory"))
	}
}

// applyBounds resolves a bounds adjustment against a concrete sequence:
// offset, stride and limit select indexes; a window regroups the
// selection into fixed-width groups.
func applyBounds(in []any, b plan.BoundsAdjust) []any {
	stride := b.Stride
	if stride < 1 {
		stride = 1
	}

	var out []any
	for i := b.Offset; i < len(in); i += stride {
		if b.Limit >= 0 && len(out) == b.Limit {
			break
		}
		out = append(out, in[i])
	}
	if b.Window > 0 {
		out = window(out, b.Window)
	}
	return out
}

// window cuts a sequence into fixed-width groups; the final group may be
// shorter.
func window(in []any, width int) []any {
	var out []any
	for lo := 0; lo < len(in); lo += width {
		hi := lo + width
		if hi > len(in) {
			hi = len(in)
		}
		out = append(out, in[lo:hi])
	}
	return out
}

// applyPrep evaluates a residual lazy program over a concrete sequence:
// element-wise transforms run on the parallel substrate, position-aware
// pass-throughs and order-pinned bounds stages evaluate in program
// order.
func (e *Executor) applyPrep(ctx context.Context, in []any, prep []stage.Descriptor) ([]any, error) {
	var err error
	for _, d := range prep {
		switch d.Kind {
		case stage.KindEnumerate:
			out := make([]any, len(in))
			for i, v := range in {
				out[i] = seq.Indexed{Index: i, Value: v}
			}
			in = out

		case stage.KindPairwise:
			if len(in) < 2 {
				in = nil
				continue
			}
			out := make([]any, len(in)-1)
			for i := range out {
				out[i] = seq.Pair{First: in[i], Second: in[i+1]}
			}
			in = out

		case stage.KindZip:
			right, ok := d.Params.Right.(seq.Seq)
			if !ok {
				return nil, errors.Execution("prep",
					errors.UnsupportedComposition(string(d.Kind), "right side is not a sequence"))
			}
			rvals, rerr := seq.Collect(ctx, right)
			if rerr != nil {
				return nil, errors.Execution("prep", rerr)
			}
			n := len(in)
			if len(rvals) < n {
				n = len(rvals)
			}
			out := make([]any, n)
			for i := 0; i < n; i++ {
				out[i] = seq.Pair{First: in[i], Second: rvals[i]}
			}
			in = out

		case stage.KindDrop:
			in = applyBounds(in, plan.BoundsAdjust{Offset: d.Params.Count, Stride: 1, Limit: -1})
		case stage.KindTake:
			in = applyBounds(in, plan.BoundsAdjust{Stride: 1, Limit: d.Params.Count})
		case stage.KindStepBy:
			in = applyBounds(in, plan.BoundsAdjust{Stride: d.Params.Count, Limit: -1})
		case stage.KindChunks:
			in = window(in, d.Params.Width)

		default:
			if d.Params.Apply == nil {
				return nil, errors.Execution("prep",
					errors.UnsupportedComposition(string(d.Kind), "no residual evaluation rule"))
			}
			in, err = scan.Transform(ctx, in, d.Params.Apply, e.opts)
			if err != nil {
				return nil, err
			}
		}
	}
	return in, nil
}
