// Package exec is the reference bulk-execution substrate: it interprets
// synthesized plans over in-memory sequences. Bounds adjustments resolve
// to index arithmetic, materialization passes run on the parallel scan
// primitives, and residual lazy programs evaluate at pass inputs and at
// the terminal.
//
// The substrate also owns the sequential fallback: a pipeline the
// planner cannot classify is evaluated one element at a time instead of
// being rejected.
package exec
