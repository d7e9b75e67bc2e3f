package harness

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/meteor/internal/config"
	"github.com/roach88/meteor/internal/engine"
	"github.com/roach88/meteor/internal/meteor"
	"github.com/roach88/meteor/internal/parser"
	"github.com/roach88/meteor/internal/testutil"
)

// EntryState is one stored key in full-path form.
type EntryState struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// HistoryEvent is one audit record with the per-run fields (id, session,
// timestamp) stripped, so results compare across runs.
type HistoryEvent struct {
	Command string `json:"command"`
	Target  string `json:"target"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step and assertion held.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Cursor is the final "ctx:ns" position.
	Cursor string `json:"cursor"`

	// Entries is the final store, flattened in deterministic order.
	Entries []EntryState `json:"entries"`

	// History is the audit trail in append order.
	History []HistoryEvent `json:"history"`
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario on a fresh deterministic engine.
//
// A step error is only fatal when the step did not expect one; expected
// errors are matched by code and execution continues, mirroring how a
// session survives bad input.
func Run(scenario *Scenario) (*Result, error) {
	profileName := scenario.Profile
	if profileName == "" {
		profileName = "default"
	}
	profile, err := config.Load(profileName)
	if err != nil {
		return nil, err
	}

	clock := testutil.NewFixedClock(testutil.Epoch())
	eng := engine.New(profile,
		engine.WithLogger(slog.New(slog.DiscardHandler)),
		engine.WithNow(clock.Now),
		engine.WithSession(testutil.FixedSession),
	)

	result := &Result{Pass: true}

	for i, step := range scenario.Steps {
		err := processStep(eng, scenario, step.Stream)
		switch {
		case err == nil && step.ExpectError != "":
			result.AddError("steps[%d]: expected %s, got success", i, step.ExpectError)
		case err != nil && step.ExpectError == "":
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		case err != nil && errorCode(err) != step.ExpectError:
			result.AddError("steps[%d]: expected %s, got %s (%v)", i, step.ExpectError, errorCode(err), err)
		}
	}

	captureState(eng, result)
	applyAssertions(scenario, eng, result)
	return result, nil
}

func processStep(eng *engine.Engine, scenario *Scenario, stream string) error {
	if scenario.Grammar == GrammarMeteor {
		p := parser.NewMeteorStream(eng)
		if scenario.Aggregate {
			return p.ProcessAggregated(stream)
		}
		return p.Process(stream)
	}
	p := parser.NewTokenStream(eng)
	if scenario.Aggregate {
		return p.ProcessAggregated(stream)
	}
	return p.Process(stream)
}

func captureState(eng *engine.Engine, result *Result) {
	cur := eng.Cursor()
	result.Cursor = cur.Context.Name() + ":" + cur.Namespace.String()

	result.Entries = []EntryState{}
	for _, ctx := range eng.Contexts() {
		for _, ns := range eng.Namespaces(ctx) {
			for _, entry := range eng.Entries(ctx, ns) {
				result.Entries = append(result.Entries, EntryState{
					Path:  ctx + ":" + ns + ":" + entry.Key,
					Value: entry.Value,
				})
			}
		}
	}

	result.History = []HistoryEvent{}
	for _, rec := range eng.History() {
		result.History = append(result.History, HistoryEvent{
			Command: rec.Command,
			Target:  rec.Target,
			Success: rec.Success,
			Error:   rec.Error,
		})
	}
}

// errorCode extracts the code string from any of the stream error families.
func errorCode(err error) string {
	var fe *parser.FormatError
	if errors.As(err, &fe) {
		return string(fe.Code)
	}
	var ce *engine.CommandError
	if errors.As(err, &ce) {
		return string(ce.Code)
	}
	var se *meteor.SemanticError
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return ""
}
