// Package harness runs YAML-defined conformance scenarios against the
// stream grammars and the engine.
//
// A scenario feeds a sequence of stream inputs through one grammar and
// asserts on the final store, the cursor, and the audit trail. Scenarios
// double as golden tests: RunWithGolden snapshots the full outcome and
// compares it against testdata/golden.
package harness
