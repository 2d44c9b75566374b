package plan

import (
	"context"
	"time"

	"github.com/kbukum/seqplan/errors"
	"github.com/kbukum/seqplan/logger"
	"github.com/kbukum/seqplan/observability"
	"github.com/kbukum/seqplan/stage"
)

// LoggingPlanner logs every synthesis with its outcome and duration.
type LoggingPlanner struct {
	inner Planner
	log   *logger.Logger
}

// WithLogging wraps a Planner with structured logging.
func WithLogging(inner Planner, log *logger.Logger) *LoggingPlanner {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &LoggingPlanner{inner: inner, log: log.WithComponent("planner")}
}

func (p *LoggingPlanner) Synthesize(ctx context.Context, stages []stage.Descriptor, term TerminalSpec) (*Plan, error) {
	start := time.Now()
	plan, err := p.inner.Synthesize(ctx, stages, term)
	if err != nil {
		p.log.WithError(err).Error("synthesis failed", logger.Fields(
			logger.FieldShape, Shape(stages),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
		return nil, err
	}

	p.log.Info("synthesis complete", logger.Fields(
		logger.FieldPlanID, plan.ID.String(),
		logger.FieldShape, plan.Shape,
		logger.FieldEntries, len(plan.Entries),
		logger.FieldPasses, plan.Passes(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return plan, nil
}

// TracingPlanner opens a span around every synthesis.
type TracingPlanner struct {
	inner Planner
}

// WithTracing wraps a Planner with OpenTelemetry spans.
func WithTracing(inner Planner) *TracingPlanner {
	return &TracingPlanner{inner: inner}
}

func (p *TracingPlanner) Synthesize(ctx context.Context, stages []stage.Descriptor, term TerminalSpec) (*Plan, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanSynthesize)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrPlanShape, Shape(stages))

	plan, err := p.inner.Synthesize(ctx, stages, term)
	if err != nil {
		observability.SetSpanError(ctx, err)
		observability.SetSpanAttribute(ctx, observability.AttrStatus, "error")
		return nil, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrPlanID, plan.ID.String())
	observability.SetSpanAttribute(ctx, observability.AttrPlanEntries, len(plan.Entries))
	observability.SetSpanAttribute(ctx, observability.AttrStatus, "ok")
	return plan, nil
}

// MetricsPlanner records synthesis counters and durations.
type MetricsPlanner struct {
	inner   Planner
	metrics *observability.Metrics
}

// WithMetrics wraps a Planner with OpenTelemetry metrics.
func WithMetrics(inner Planner, metrics *observability.Metrics) *MetricsPlanner {
	return &MetricsPlanner{inner: inner, metrics: metrics}
}

func (p *MetricsPlanner) Synthesize(ctx context.Context, stages []stage.Descriptor, term TerminalSpec) (*Plan, error) {
	start := time.Now()
	plan, err := p.inner.Synthesize(ctx, stages, term)
	if err != nil {
		p.metrics.RecordError(ctx, string(errors.CodeOf(err)), "synthesizer")
		return nil, err
	}
	p.metrics.RecordPlan(ctx, plan.Shape, plan.BoundsAdjusts(), plan.Passes(), time.Since(start))
	return plan, nil
}
