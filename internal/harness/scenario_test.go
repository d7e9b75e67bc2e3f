package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: loads fine
grammar: token
steps:
  - stream: "a=1"
assertions:
  - type: entry
    path: app:main:a
    value: "1"
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "basic", scenario.Name)
	assert.Equal(t, GrammarToken, scenario.Grammar)
	require.Len(t, scenario.Steps, 1)
	require.Len(t, scenario.Assertions, 1)
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
grammar: token
steps:
  - stream: "a=1"
assertion:
  - type: entry
    path: app:main:a
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenarioRequiresName(t *testing.T) {
	path := writeScenario(t, `
grammar: token
steps:
  - stream: "a=1"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenarioRejectsBadGrammar(t *testing.T) {
	path := writeScenario(t, `
name: bad
grammar: cobol
steps:
  - stream: "a=1"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grammar")
}

func TestLoadScenarioRequiresSteps(t *testing.T) {
	path := writeScenario(t, `
name: empty
grammar: token
steps: []
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one step")
}

func TestLoadScenarioRejectsBadAssertionType(t *testing.T) {
	path := writeScenario(t, `
name: bad-assert
grammar: token
steps:
  - stream: "a=1"
assertions:
  - type: telepathy
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assertion type")
}

func TestLoadScenarioMissing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
