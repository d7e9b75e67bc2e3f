package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

//go:embed schema.cue
var schemaCUE string

// Profile is a named set of build-time limits injected at engine
// construction. Limits are not runtime-adjustable; switching behavior means
// switching profiles.
type Profile struct {
	Name              string `yaml:"name" json:"name"`
	MaxContexts       int    `yaml:"max_contexts" json:"max_contexts"`
	MaxNamespaceDepth int    `yaml:"max_namespace_depth" json:"max_namespace_depth"`
	MaxKeyLength      int    `yaml:"max_key_length" json:"max_key_length"`
	MaxValueLength    int    `yaml:"max_value_length" json:"max_value_length"`
	MaxHistory        int    `yaml:"max_history" json:"max_history"`
}

// UnknownProfileError reports a profile name not present in the embedded set.
type UnknownProfileError struct {
	Name  string
	Known []string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile %q: available profiles are %v", e.Name, e.Known)
}

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// Load returns the named profile, schema-validated.
func Load(name string) (Profile, error) {
	profiles, err := loadAll()
	if err != nil {
		return Profile{}, err
	}
	for _, p := range profiles {
		if p.Name == name {
			if err := p.Validate(); err != nil {
				return Profile{}, err
			}
			return p, nil
		}
	}
	return Profile{}, &UnknownProfileError{Name: name, Known: Names()}
}

// Default returns the "default" profile. The embedded profile set always
// contains it; failure here means a broken build and panics.
func Default() Profile {
	p, err := Load("default")
	if err != nil {
		panic(fmt.Sprintf("config: embedded default profile invalid: %v", err))
	}
	return p
}

// Names lists the embedded profile names in file order.
func Names() []string {
	profiles, err := loadAll()
	if err != nil {
		return nil
	}
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// Validate checks the profile against the embedded CUE schema. Non-positive
// limits and empty names are rejected.
func (p Profile) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling profile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Profile"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("profile schema missing #Profile: %w", err)
	}

	unified := def.Unify(ctx.Encode(p))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("profile %q fails schema validation: %w", p.Name, err)
	}
	return nil
}

func loadAll() ([]Profile, error) {
	var file profileFile
	if err := yaml.Unmarshal(profilesYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing embedded profiles: %w", err)
	}
	return file.Profiles, nil
}
