// Package scan implements the parallel materializer primitives behind
// MaterializePass entries: order-preserving compaction and boundary-based
// grouping, both built on the same three-phase protocol.
//
// Every primitive runs predicate evaluation, an exclusive prefix scan,
// and a scatter as three separate phases with a global barrier between
// them. No phase starts until every agent has finished the previous one,
// so predicate evaluation never races with data movement.
package scan
