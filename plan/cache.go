package plan

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kbukum/seqplan/stage"
)

// Shape renders a stage list as a human-readable signature, used for
// logging, metrics attributes, and grouping cache statistics.
//
//	range(0,10)|map|filter|drop(3)
func Shape(stages []stage.Descriptor) string {
	var b strings.Builder
	for i, d := range stages {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(d.Kind))
		switch d.Kind {
		case stage.KindRange:
			fmt.Fprintf(&b, "(%d,%d)", d.Params.Start, d.Params.Count)
		case stage.KindDrop, stage.KindTake, stage.KindStepBy:
			fmt.Fprintf(&b, "(%d)", d.Params.Count)
		case stage.KindChunks:
			fmt.Fprintf(&b, "(%d)", d.Params.Width)
		}
	}
	return b.String()
}

// Fingerprint is the cache key for a stage list. Synthesis is a pure
// function of the stage list, so two lists with the same fingerprint
// yield interchangeable plans. Captured callables are compared by
// identity, which keeps distinct closures of the same shape from
// sharing a plan.
func Fingerprint(stages []stage.Descriptor) string {
	var b strings.Builder
	for i, d := range stages {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(d.Kind))
		fmt.Fprintf(&b, "{%d,%d,%d", d.Params.Start, d.Params.Count, d.Params.Width)
		if d.Params.Apply != nil {
			fmt.Fprintf(&b, ",a=%p", d.Params.Apply)
		}
		if d.Params.Keep != nil {
			fmt.Fprintf(&b, ",k=%p", d.Params.Keep)
		}
		if d.Params.Boundary != nil {
			fmt.Fprintf(&b, ",b=%p", d.Params.Boundary)
		}
		if d.Params.Values != nil {
			fmt.Fprintf(&b, ",v=%p", d.Params.Values)
		}
		if d.Params.Right != nil {
			fmt.Fprintf(&b, ",r=%p", d.Params.Right)
		}
		b.WriteByte('}')
	}
	return b.String()
}

// Cache memoizes synthesized plans by fingerprint. Safe for concurrent
// use.
type Cache struct {
	mu    sync.RWMutex
	plans map[string]*Plan
}

// NewCache creates an empty plan cache.
func NewCache() *Cache {
	return &Cache{plans: make(map[string]*Plan)}
}

// Get returns the cached plan for key, if any.
func (c *Cache) Get(key string) (*Plan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.plans[key]
	return p, ok
}

// Put stores a plan under key, replacing any previous entry.
func (c *Cache) Put(key string, p *Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[key] = p
}

// Len returns the number of cached plans.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}

// CachingPlanner memoizes an inner Planner by stage-list fingerprint.
type CachingPlanner struct {
	inner Planner
	cache *Cache
}

// WithCache wraps a Planner with fingerprint memoization.
func WithCache(inner Planner, cache *Cache) *CachingPlanner {
	if cache == nil {
		cache = NewCache()
	}
	return &CachingPlanner{inner: inner, cache: cache}
}

// Synthesize returns the memoized plan when the stage list has been seen
// before, otherwise synthesizes and stores it. Terminal specs are not
// part of the fingerprint, so the cached entries are reused but the
// terminal is rebound on every call.
func (p *CachingPlanner) Synthesize(ctx context.Context, stages []stage.Descriptor, term TerminalSpec) (*Plan, error) {
	key := Fingerprint(stages)
	if cached, ok := p.cache.Get(key); ok {
		rebound := *cached
		rebound.Terminal.Spec = term.withDefaults()
		if err := validateTerminal(rebound.Terminal.Spec); err != nil {
			return nil, err
		}
		return &rebound, nil
	}

	plan, err := p.inner.Synthesize(ctx, stages, term)
	if err != nil {
		return nil, err
	}
	p.cache.Put(key, plan)
	return plan, nil
}
