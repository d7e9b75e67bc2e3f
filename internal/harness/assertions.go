package harness

import "github.com/roach88/meteor/internal/engine"

// applyAssertions checks every scenario assertion against the final engine
// state, accumulating failures on the result.
func applyAssertions(scenario *Scenario, eng *engine.Engine, result *Result) {
	for i, a := range scenario.Assertions {
		switch a.Type {
		case AssertEntry:
			v, found, err := eng.Get(a.Path)
			switch {
			case err != nil:
				result.AddError("assertions[%d]: get %s: %v", i, a.Path, err)
			case !found:
				result.AddError("assertions[%d]: %s not found", i, a.Path)
			case v != a.Value:
				result.AddError("assertions[%d]: %s = %q, want %q", i, a.Path, v, a.Value)
			}

		case AssertMissing:
			if eng.Exists(a.Path) {
				result.AddError("assertions[%d]: %s exists, want missing", i, a.Path)
			}

		case AssertCursor:
			if result.Cursor != a.Cursor {
				result.AddError("assertions[%d]: cursor %s, want %s", i, result.Cursor, a.Cursor)
			}

		case AssertHistoryCount:
			count := 0
			for _, ev := range result.History {
				if ev.Command == a.Command {
					count++
				}
			}
			if count != a.Count {
				result.AddError("assertions[%d]: %s appears %d times, want %d", i, a.Command, count, a.Count)
			}
		}
	}
}
