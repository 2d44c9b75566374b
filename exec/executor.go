package exec

import (
	"context"
	"time"

	"github.com/kbukum/seqplan/config"
	"github.com/kbukum/seqplan/decompose"
	"github.com/kbukum/seqplan/errors"
	"github.com/kbukum/seqplan/logger"
	"github.com/kbukum/seqplan/observability"
	"github.com/kbukum/seqplan/plan"
	"github.com/kbukum/seqplan/scan"
	"github.com/kbukum/seqplan/seq"
)

// Executor interprets execution plans over in-memory sequences.
type Executor struct {
	planner plan.Planner
	opts    scan.Options
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option customizes an Executor.
type Option func(*Executor)

// WithPlanner replaces the default synthesizer, e.g. with a caching or
// decorated planner.
func WithPlanner(p plan.Planner) Option {
	return func(e *Executor) { e.planner = p }
}

// WithLogger sets the executor's logger.
func WithLogger(log *logger.Logger) Option {
	return func(e *Executor) { e.log = log }
}

// WithMetrics enables per-pass metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// New creates an Executor bounded by the given configuration.
func New(cfg config.ExecutorConfig, opts ...Option) *Executor {
	e := &Executor{
		opts: scan.Options{MaxParallel: cfg.MaxParallel, MinChunk: cfg.MinChunk},
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.planner == nil {
		e.planner = plan.NewSynthesizer(e.log)
	}
	e.log = e.log.WithComponent("executor")
	return e
}

// Run plans and executes a pipeline end to end. A pipeline the planner
// cannot classify falls back to sequential evaluation; correctness over
// performance.
func (e *Executor) Run(ctx context.Context, s seq.Seq, term plan.TerminalSpec) (any, error) {
	stages, err := decompose.Decompose(s)
	if err != nil {
		if errors.CanFallback(err) {
			e.log.Warn("falling back to sequential evaluation", logger.Fields(
				logger.FieldError, err.Error(),
			))
			return e.runSequential(ctx, s, term)
		}
		return nil, err
	}

	p, err := e.planner.Synthesize(ctx, stages, term)
	if err != nil {
		if errors.CanFallback(err) {
			return e.runSequential(ctx, s, term)
		}
		return nil, err
	}
	return e.Execute(ctx, p, nil)
}

// Execute runs a synthesized plan. A nil source means the plan's own
// factory stage provides the input.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan, source []any) (any, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanExecute)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrPlanID, p.ID.String())
	observability.SetSpanAttribute(ctx, observability.AttrPlanShape, p.Shape)

	var err error
	if source == nil {
		source, err = materializeSource(p.Source)
		if err != nil {
			observability.SetSpanError(ctx, err)
			return nil, err
		}
	}

	cur := source
	for _, entry := range p.Entries {
		switch en := entry.(type) {
		case plan.BoundsAdjust:
			cur = applyBounds(cur, en)
		case plan.MaterializePass:
			cur, err = e.runPass(ctx, cur, en)
			if err != nil {
				observability.SetSpanError(ctx, err)
				return nil, err
			}
		}
	}

	out, err := e.runTerminal(ctx, cur, p.Terminal)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	e.log.Debug("plan executed", logger.Fields(
		logger.FieldPlanID, p.ID.String(),
		logger.FieldElements, len(cur),
		logger.FieldPasses, p.Passes(),
	))
	return out, nil
}

// runPass evaluates the pass's residual program, then compacts or groups
// on the parallel scan substrate.
func (e *Executor) runPass(ctx context.Context, in []any, pass plan.MaterializePass) ([]any, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanMaterialize)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrPassMode, string(pass.Mode))
	observability.SetSpanAttribute(ctx, observability.AttrElementsIn, len(in))
	start := time.Now()

	in, err := e.applyPrep(ctx, in, pass.Prep)
	if err != nil {
		return nil, err
	}

	var out []any
	switch pass.Mode {
	case plan.ModeCompact:
		out, err = scan.Compact(ctx, in, pass.Keep, e.opts)

	case plan.ModeCompactAndGroup:
		if pass.Keep != nil {
			in, err = scan.Compact(ctx, in, pass.Keep, e.opts)
			if err != nil {
				return nil, err
			}
		}
		var spans []scan.Span
		spans, err = scan.Group(ctx, in, pass.Boundary, e.opts)
		if err != nil {
			break
		}
		out = make([]any, len(spans))
		for g, sp := range spans {
			out[g] = in[sp.Start:sp.End]
		}

	default:
		err = errors.Execution("materialize",
			errors.UnsupportedComposition(string(pass.Mode), "unknown pass mode"))
	}
	if err != nil {
		return nil, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrElementsOut, len(out))
	if e.metrics != nil {
		e.metrics.RecordPass(ctx, string(pass.Mode), len(in), len(out), time.Since(start))
	}
	return out, nil
}

// runTerminal evaluates the terminal's residual program and consumes the
// final sequence. By this point a compaction has removed every
// placeholder a pass left behind; PlaceholderAware covers plans executed
// with an externally hazarded source.
func (e *Executor) runTerminal(ctx context.Context, in []any, term plan.Terminal) (any, error) {
	in, err := e.applyPrep(ctx, in, term.Prep)
	if err != nil {
		return nil, err
	}
	if term.PlaceholderAware {
		in, err = scan.Compact(ctx, in, func(v any) bool { return !scan.IsTombstone(v) }, e.opts)
		if err != nil {
			return nil, err
		}
	}
	return finish(in, term.Spec)
}

// finish applies the requested bulk operation to a concrete sequence.
func finish(in []any, spec plan.TerminalSpec) (any, error) {
	switch spec.Op {
	case plan.OpCollect, "":
		return in, nil
	case plan.OpReduce:
		acc := spec.Init
		for _, v := range in {
			acc = spec.Reduce(acc, v)
		}
		return acc, nil
	case plan.OpVisit:
		for i, v := range in {
			if err := spec.Visit(i, v); err != nil {
				return nil, errors.Execution("visit", err)
			}
		}
		return nil, nil
	default:
		return nil, errors.InvalidPipeline("unknown terminal operation").
			WithDetail("op", string(spec.Op))
	}
}

// runSequential evaluates the original pipeline one element at a time
// and applies the terminal to the result.
func (e *Executor) runSequential(ctx context.Context, s seq.Seq, term plan.TerminalSpec) (any, error) {
	values, err := seq.Collect(ctx, s)
	if err != nil {
		return nil, errors.Execution("sequential", err)
	}
	return finish(values, term)
}
