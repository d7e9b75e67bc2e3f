// Package meteor defines the value types shared by the parsers and the
// engine: Context, Namespace, Key, Token, and the Meteor record itself.
//
// All of these are immutable value objects constructed fresh per parse.
// Validation happens at construction: a Key flattens its bracket notation
// once and caches the result, and a Meteor rejects token/namespace mismatches
// before anything reaches storage. Code downstream of a constructor may
// assume the invariants hold.
package meteor
