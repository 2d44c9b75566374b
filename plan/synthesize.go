package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/seqplan/errors"
	"github.com/kbukum/seqplan/logger"
	"github.com/kbukum/seqplan/stage"
)

// Planner synthesizes execution plans from decomposed stage lists.
// Decorators in observability.go wrap this interface.
type Planner interface {
	Synthesize(ctx context.Context, stages []stage.Descriptor, term TerminalSpec) (*Plan, error)
}

// Synthesizer is the core Planner: one forward pass over the stage list,
// folding each stage through the hazard state machine.
type Synthesizer struct {
	log *logger.Logger
}

// NewSynthesizer creates a Synthesizer. A nil logger disables logging.
func NewSynthesizer(log *logger.Logger) *Synthesizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Synthesizer{log: log.WithComponent("synthesizer")}
}

// Synthesize folds the stage list into an ordered plan: bounds
// adjustments and materialization passes, closed by the terminal
// operation. The plan is minimal: a pass appears only where a hazardous
// stage demands one or where pending placeholders would corrupt a later
// stage.
func (s *Synthesizer) Synthesize(ctx context.Context, stages []stage.Descriptor, term TerminalSpec) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, errors.InvalidPipeline("no stages")
	}
	if !stages[0].Meta.Factory {
		return nil, errors.InvalidPipeline("stage list does not begin with a factory").
			WithDetail("kind", string(stages[0].Kind))
	}
	term = term.withDefaults()
	if err := validateTerminal(term); err != nil {
		return nil, err
	}

	t := threaded{state: Clean}
	var entries []Entry
	for _, d := range stages {
		next, emitted, err := step(t, d)
		if err != nil {
			return nil, err
		}
		t = next
		entries = append(entries, emitted...)
	}

	p := &Plan{
		ID:      uuid.New(),
		Shape:   Shape(stages),
		Source:  stages[0],
		Entries: entries,
		Terminal: Terminal{
			Spec:             term,
			Prep:             t.prep,
			PlaceholderAware: t.state == Hazarded,
		},
	}

	s.log.Debug("plan synthesized", logger.Fields(
		logger.FieldPlanID, p.ID.String(),
		logger.FieldShape, p.Shape,
		logger.FieldEntries, len(p.Entries),
		logger.FieldPasses, p.Passes(),
	))
	return p, nil
}

func (t TerminalSpec) withDefaults() TerminalSpec {
	if t.Op == "" {
		t.Op = OpCollect
	}
	return t
}

func validateTerminal(term TerminalSpec) error {
	switch term.Op {
	case OpCollect:
		return nil
	case OpReduce:
		if term.Reduce == nil {
			return errors.InvalidPipeline("reduce terminal without a reducer")
		}
		return nil
	case OpVisit:
		if term.Visit == nil {
			return errors.InvalidPipeline("visit terminal without a visitor")
		}
		return nil
	default:
		return errors.InvalidPipeline("unknown terminal operation").
			WithDetail("op", string(term.Op))
	}
}
