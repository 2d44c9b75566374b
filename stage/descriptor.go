package stage

// Params carries the captured callables and constants a stage needs to be
// re-evaluated outside its original lazy chain. Immutable after capture.
type Params struct {
	// Apply is the element-wise transform (map).
	Apply func(any) any
	// Keep is the per-element survival predicate (filter).
	Keep func(any) bool
	// Boundary reports whether cur starts a new group relative to prev
	// (chunk_by).
	Boundary func(prev, cur any) bool
	// Count is the element count for drop/take or the stride for step_by.
	Count int
	// Width is the fixed window width for chunks.
	Width int
	// Values is the backing data of a slice factory.
	Values []any
	// Start is the first value of a range factory; Count holds its length.
	Start int
	// Right is the opaque second base of a multi-base stage (zip).
	Right any
}

// Descriptor is one node of a decomposed pipeline: its kind, the registry
// metadata for that kind, and the captured parameters.
type Descriptor struct {
	Kind   Kind
	Meta   Metadata
	Params Params
}
