package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// whitelistSet is a precomputed lookup table for fast whitelist membership checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// LoadFile parses a KEY=VALUE config file at the given path.
//
// Lines are processed according to these rules:
//   - Empty lines and lines starting with # are skipped.
//   - A leading "export " is ignored, so the file can be sourced by a shell.
//   - Lines without an = sign are skipped.
//   - Values may be wrapped in matching single or double quotes.
//   - Keys not present in WhitelistedVars are silently ignored.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if !whitelistSet[key] {
			continue
		}
		result[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return result, nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// layer is one optional config file in the precedence chain.
type layer struct {
	name     string
	path     string
	required bool
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Global config file (globalPath)
//  3. Project config file (projectPath)
//  4. Explicit config file (explicitPath), which must exist
//  5. CLI overrides (cliOverrides map)
//
// Empty paths are skipped. Missing global and project files are not errors.
func LoadWithPrecedence(globalPath, projectPath, explicitPath string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	layers := []layer{
		{name: "global", path: globalPath},
		{name: "project", path: projectPath},
		{name: "explicit", path: explicitPath, required: true},
	}
	for _, l := range layers {
		if l.path == "" {
			continue
		}
		m, err := LoadFile(l.path)
		if err != nil {
			if !l.required && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%s config: %w", l.name, err)
		}
		ApplyMapToConfig(cfg, m)
	}

	if len(cliOverrides) > 0 {
		ApplyMapToConfig(cfg, cliOverrides)
	}
	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Unknown keys are silently ignored. Integer fields that fail to parse
// are silently ignored (the previous value is preserved).
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "PROVIDER":
			cfg.Provider = strings.ToLower(value)
		case "MODEL":
			cfg.Model = value
		case "COMMAND":
			cfg.Command = value
		case "MAX_CORRECTIONS":
			setInt(&cfg.MaxCorrections, value)
		case "MAX_EXERCISES_PER_SECTION":
			setInt(&cfg.MaxExercisesPerSection, value)
		case "MAX_RETRY":
			setInt(&cfg.MaxRetry, value)
		case "RETRY_BASE_DELAY":
			setInt(&cfg.RetryBaseDelay, value)
		case "TIMEOUT":
			setInt(&cfg.Timeout, value)
		case "RULES_FILE":
			cfg.RulesFile = value
		case "HISTORY_DSN":
			cfg.HistoryDSN = value
		case "HISTORY_LIMIT":
			setInt(&cfg.HistoryLimit, value)
		case "STATE_DIR":
			cfg.StateDir = value
		case "LOG_FILE":
			cfg.LogFile = value
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		}
	}
}

func setInt(dst *int, value string) {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		*dst = v
	}
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
