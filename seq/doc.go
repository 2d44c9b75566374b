// Package seq provides the composable, lazily-evaluated sequence values
// the planner operates on. Pipelines are built from a closed vocabulary
// of factories and adaptors; composing them does no work.
//
// Every value answers the three questions the planner needs: its kind
// tag, its immediate base (nil for factories), and its captured
// parameters. That is the whole contract; the planner never evaluates a
// sequence itself.
//
// The package also provides sequential pull evaluation (Iterate,
// Collect). This is the mandated fallback path when a pipeline cannot be
// classified for bulk execution, and the reference semantics the bulk
// plans must agree with.
package seq
