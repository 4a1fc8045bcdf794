package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/validate"
)

// DefaultRulesPath is where a project keeps its rules file when RULES_FILE
// is not set.
const DefaultRulesPath = ".workout-forge/rules.yaml"

// ErrRulesNotFound is returned when an explicitly named rules file is missing.
var ErrRulesNotFound = errors.New("rules file not found")

// ProgramRules is the YAML rules file: exercise aliases, swaps and the hard
// rules the validator enforces.
type ProgramRules struct {
	Aliases []identity.AliasGroup `yaml:"aliases"`
	Swaps   map[string]string     `yaml:"swaps"`
	Rules   validate.Rules        `yaml:"rules"`
}

// DefaultProgramRules returns the built-in rules with no extra aliases.
func DefaultProgramRules() *ProgramRules {
	return &ProgramRules{Rules: validate.DefaultRules()}
}

// LoadRules reads a rules file. Keys absent from the file keep their
// built-in values.
func LoadRules(path string) (*ProgramRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRulesNotFound, path)
		}
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	r := DefaultProgramRules()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return r, nil
}

// FindRules loads the explicit rules file when one is named, otherwise the
// project default when it exists, otherwise the built-in rules.
func FindRules(explicit string) (*ProgramRules, error) {
	if explicit != "" {
		return LoadRules(explicit)
	}
	if _, err := os.Stat(DefaultRulesPath); err == nil {
		return LoadRules(DefaultRulesPath)
	}
	return DefaultProgramRules(), nil
}

// Resolver builds the identity resolver for these rules.
func (p *ProgramRules) Resolver() *identity.Resolver {
	return identity.NewResolver(identity.WithAliasGroups(p.Aliases...), identity.WithSwaps(p.Swaps))
}
