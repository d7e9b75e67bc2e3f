// Package config loads the named limit profiles that bound the engine.
//
// Profiles ship embedded in the binary (profiles.yaml) and are checked
// against an embedded CUE schema (schema.cue) at load time, so a malformed
// profile is caught before an engine ever runs with it. The engine itself
// never re-checks limits at mutation time; callers validate input against a
// profile and the engine trusts them.
package config
