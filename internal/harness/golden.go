package harness

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/sebdah/goldie/v2"
)

// Snapshot captures the complete outcome of a scenario execution in a
// shape that serializes deterministically: entries are pre-sorted and the
// history carries no ids or timestamps.
type Snapshot struct {
	ScenarioName string         `json:"scenario_name"`
	Cursor       string         `json:"cursor"`
	Entries      []EntryState   `json:"entries"`
	History      []HistoryEvent `json:"history"`
}

// RunWithGolden executes a scenario and compares its snapshot against the
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if execution itself fails; a snapshot mismatch or a
// failed assertion fails t instead.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	snapshot := Snapshot{
		ScenarioName: scenario.Name,
		Cursor:       result.Cursor,
		Entries:      result.Entries,
		History:      result.History,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
