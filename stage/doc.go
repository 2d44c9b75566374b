// Package stage defines the closed adaptor/factory vocabulary, the hazard
// metadata table that classifies each kind for bulk execution, and the
// stage descriptors produced by pipeline decomposition.
//
// The vocabulary is closed by design: whole-pipeline classification is
// only decidable because every kind a pipeline can contain has a registry
// row. Supporting a new adaptor kind means adding one row, plus a
// predicate adapter if its removal/grouping class is non-trivial; the
// decomposer and synthesizer algorithms do not change.
package stage
