package testutil

import "time"

// FixedSession is the session id used by deterministic test engines.
//
// The engine normally generates a random UUID per session; golden snapshot
// comparison needs the same id every run.
const FixedSession = "test-session-00000000-0000-0000-0000-000000000001"

// Epoch is the anchor timestamp for deterministic clocks in tests.
func Epoch() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}
