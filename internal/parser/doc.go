// Package parser implements the two stream grammars that feed the engine.
//
// The implicit token-stream grammar splits on ";" and resolves unqualified
// key=value tokens against the engine cursor; "ns=" and "ctx=" pseudo-tokens
// move the cursor and are never stored. The explicit meteor-stream grammar
// splits records on the fixed ":;:" delimiter and requires full
// context:namespace:key addressing per token; it never touches the cursor.
//
// Each grammar has three entry points. Process is the legacy per-token path:
// it commits each token as it parses and stops at the first error, so tokens
// before a malformed one stay written. ProcessAggregated buffers everything,
// groups tokens into validated Meteor records, and writes nothing unless the
// whole call validates. Validate runs the same checks as ProcessAggregated
// without mutating any state.
package parser
