// Package plan synthesizes execution plans from decomposed pipelines.
//
// The synthesizer makes a single forward pass over the stage list,
// threading a two-state hazard flag (Clean/Hazarded) and folding every
// stage into one of: a BoundsAdjust entry (pure index arithmetic), a
// MaterializePass entry (a scan-based compaction or grouping over the
// whole sequence), or the residual lazy program carried to the next
// materialization point or the terminal operation.
//
// Plans are immutable once synthesized and are pure functions of the
// stage list, so they can be memoized by pipeline fingerprint (Cache).
package plan
