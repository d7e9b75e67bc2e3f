package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultProfile(t *testing.T) {
	p, err := Load("default")
	require.NoError(t, err)
	assert.Equal(t, "default", p.Name)
	assert.Equal(t, 4, p.MaxNamespaceDepth)
	assert.Equal(t, 1000, p.MaxHistory)
}

func TestLoadStrictProfile(t *testing.T) {
	p, err := Load("strict")
	require.NoError(t, err)
	assert.Equal(t, 3, p.MaxNamespaceDepth)
	assert.Equal(t, 100, p.MaxHistory)
}

func TestLoadUnknownProfile(t *testing.T) {
	_, err := Load("turbo")
	var ue *UnknownProfileError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "turbo", ue.Name)
	assert.Contains(t, ue.Known, "default")
}

func TestDefaultNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() { Default() })
}

func TestNamesListsAllProfiles(t *testing.T) {
	assert.Equal(t, []string{"default", "strict", "relaxed"}, Names())
}

func TestAllEmbeddedProfilesSatisfySchema(t *testing.T) {
	for _, name := range Names() {
		_, err := Load(name)
		assert.NoError(t, err, "profile %q", name)
	}
}

func TestSchemaRejectsNonPositiveLimit(t *testing.T) {
	p := Default()
	p.MaxHistory = 0
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestSchemaRejectsEmptyName(t *testing.T) {
	p := Default()
	p.Name = ""
	require.Error(t, p.Validate())
}
