package stage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/seqplan/validation"
)

// Registry maps stage kinds to their hazard metadata.
type Registry struct {
	mu   sync.RWMutex
	rows map[Kind]Metadata
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{rows: make(map[Kind]Metadata)}
}

// Register adds a metadata row after validating it. Registration is the
// point where classification totality is enforced: a row missing either
// class never enters the table.
func (r *Registry) Register(kind Kind, meta Metadata) error {
	if kind == "" {
		return fmt.Errorf("stage: kind must not be empty")
	}
	if err := validation.Validate(meta); err != nil {
		return fmt.Errorf("stage: metadata for kind %q: %w", kind, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[kind] = meta
	return nil
}

// MustRegister is Register for design-time tables; it panics on invalid rows.
func (r *Registry) MustRegister(kind Kind, meta Metadata) {
	if err := r.Register(kind, meta); err != nil {
		panic(err)
	}
}

// Lookup retrieves the metadata for a kind.
func (r *Registry) Lookup(kind Kind) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[kind]
	return m, ok
}

// MustLookup retrieves the metadata for a kind and panics if the kind is
// outside the vocabulary. The vocabulary is fixed and validated at
// pipeline-construction time, so a miss here is a programming error.
func (r *Registry) MustLookup(kind Kind) Metadata {
	m, ok := r.Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("stage: kind %q is not registered", kind))
	}
	return m
}

// Kinds returns the sorted kinds of all registered rows.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.rows))
	for k := range r.rows {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the registry covering the whole closed vocabulary.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()

		// Factories.
		r.MustRegister(KindSlice, Metadata{Removal: ClassNone, Grouping: ClassNone, Factory: true})
		r.MustRegister(KindRange, Metadata{Removal: ClassNone, Grouping: ClassNone, Factory: true})

		// Element-wise.
		r.MustRegister(KindMap, Metadata{Removal: ClassNone, Grouping: ClassNone})

		// Removal.
		r.MustRegister(KindFilter, Metadata{Removal: ClassNonTrivial, Grouping: ClassNone})
		r.MustRegister(KindDrop, Metadata{Removal: ClassTrivial, Grouping: ClassNone})
		r.MustRegister(KindTake, Metadata{Removal: ClassTrivial, Grouping: ClassNone})
		r.MustRegister(KindStepBy, Metadata{Removal: ClassTrivial, Grouping: ClassNone})

		// Grouping.
		r.MustRegister(KindChunks, Metadata{Removal: ClassNone, Grouping: ClassTrivial})
		r.MustRegister(KindChunkBy, Metadata{Removal: ClassNone, Grouping: ClassNonTrivial})

		// Position-aware pass-throughs.
		r.MustRegister(KindEnumerate, Metadata{Removal: ClassNone, Grouping: ClassNone, PositionAware: true})
		r.MustRegister(KindPairwise, Metadata{Removal: ClassNone, Grouping: ClassNone, PositionAware: true})
		r.MustRegister(KindZip, Metadata{Removal: ClassNone, Grouping: ClassNone, PositionAware: true})

		defaultRegistry = r
	})
	return defaultRegistry
}
