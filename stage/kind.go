package stage

// Kind identifies one adaptor or factory kind in the closed vocabulary.
type Kind string

// Factories (no base).
const (
	// KindSlice is a factory over an in-memory slice.
	KindSlice Kind = "slice"
	// KindRange is a factory over a half-open integer interval.
	KindRange Kind = "range"
)

// Adaptors (single base).
const (
	// KindMap is an element-wise value transform.
	KindMap Kind = "map"
	// KindFilter keeps elements matching a runtime predicate.
	KindFilter Kind = "filter"
	// KindDrop removes the first n elements.
	KindDrop Kind = "drop"
	// KindTake keeps the first n elements.
	KindTake Kind = "take"
	// KindStepBy keeps every n-th element.
	KindStepBy Kind = "step_by"
	// KindChunks groups elements into fixed-width windows.
	KindChunks Kind = "chunks"
	// KindChunkBy groups elements by an adjacent-pair boundary predicate.
	KindChunkBy Kind = "chunk_by"
	// KindEnumerate pairs each element with its absolute index.
	KindEnumerate Kind = "enumerate"
	// KindPairwise yields adjacent element pairs.
	KindPairwise Kind = "pairwise"
	// KindZip pairs elements positionally with a second sequence. The
	// right-hand sequence is captured as an opaque parameter and is not
	// decomposed further.
	KindZip Kind = "zip"
)
