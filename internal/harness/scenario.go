package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Grammar names accepted by a scenario.
const (
	GrammarToken  = "token"
	GrammarMeteor = "meteor"
)

// Scenario defines a conformance test scenario.
// Scenarios feed stream inputs through one grammar and assert on the
// resulting store, cursor, and audit trail.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden file
	// name, so it must be filesystem-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Profile names the limit profile to run under. Empty means "default".
	Profile string `yaml:"profile,omitempty"`

	// Grammar selects the stream grammar: "token" (implicit, cursor-bound)
	// or "meteor" (explicit, fully addressed).
	Grammar string `yaml:"grammar"`

	// Aggregate selects the buffered processing path: whole calls validate
	// before anything writes. False uses the legacy per-token path.
	Aggregate bool `yaml:"aggregate,omitempty"`

	// Steps are the stream inputs, processed in order on one engine.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store and trail.
	// Supported types: entry, missing, cursor, history_count
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one stream input.
type Step struct {
	// Stream is the raw input text.
	Stream string `yaml:"stream"`

	// ExpectError is the error code this step must fail with (for example
	// "BAD_ADDRESS"). Empty means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates the final store or audit trail.
type Assertion struct {
	// Type specifies the assertion type:
	// - "entry": the full path holds exactly the given value
	// - "missing": the full path holds nothing
	// - "cursor": the cursor ends at the given "ctx:ns" position
	// - "history_count": the named command appears exactly N times
	Type string `yaml:"type"`

	// Path is a full "ctx:ns:key" address (entry, missing).
	Path string `yaml:"path,omitempty"`

	// Value is the expected stored value (entry).
	Value string `yaml:"value,omitempty"`

	// Cursor is the expected "ctx:ns" position (cursor).
	Cursor string `yaml:"cursor,omitempty"`

	// Command is the audited command name (history_count).
	Command string `yaml:"command,omitempty"`

	// Count is the expected number of occurrences (history_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertEntry        = "entry"
	AssertMissing      = "missing"
	AssertCursor       = "cursor"
	AssertHistoryCount = "history_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // reject typos like "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// ScenarioPaths lists the scenario YAML files under dir in sorted order.
func ScenarioPaths(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Grammar != GrammarToken && s.Grammar != GrammarMeteor {
		return fmt.Errorf("grammar must be %q or %q, got %q", GrammarToken, GrammarMeteor, s.Grammar)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}

	for i, step := range s.Steps {
		if step.Stream == "" {
			return fmt.Errorf("steps[%d]: stream is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertEntry:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for entry", index)
		}
	case AssertMissing:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for missing", index)
		}
	case AssertCursor:
		if a.Cursor == "" {
			return fmt.Errorf("assertions[%d]: cursor is required for cursor", index)
		}
	case AssertHistoryCount:
		if a.Command == "" {
			return fmt.Errorf("assertions[%d]: command is required for history_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
