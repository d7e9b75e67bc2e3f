// Package engine is the stateful façade over storage: it owns the cursor the
// implicit grammar folds addressing into, the append-only command audit
// trail, and the single storage instance that is the system of record.
//
// All addressing is colon-delimited strings; arity determines meaning.
// "ctx:ns:key" names one key, "ctx:ns" a whole namespace (delete only),
// "ctx" a whole context (delete only). More than three parts is a format
// error. A delete of a missing path is a not-found outcome, not an error.
//
// The engine is single-threaded by contract. It performs no locking; one
// caller at a time, consistent with CLI, REPL, and embedded-library use.
// Limits come from the config profile injected at construction and are not
// re-checked per mutation - the parsers validate, the engine trusts.
package engine
