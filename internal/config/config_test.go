package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/workout-forge/internal/config"
)

func TestNewDefaultConfigValues(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.NotNil(t, cfg)

	// Generator selection.
	assert.Equal(t, config.ProviderOllama, cfg.Provider)
	assert.Equal(t, "llama3.1", cfg.Model)
	assert.Empty(t, cfg.Command)

	// Loop limits.
	assert.Equal(t, 2, cfg.MaxCorrections)
	assert.Equal(t, 6, cfg.MaxExercisesPerSection)
	assert.Equal(t, 3, cfg.MaxRetry)

	// Timing.
	assert.Equal(t, 2, cfg.RetryBaseDelay)
	assert.Equal(t, 300, cfg.Timeout)

	// Files and stores.
	assert.Empty(t, cfg.RulesFile)
	assert.Equal(t, ".workout-forge/history.db", cfg.HistoryDSN)
	assert.Equal(t, 3, cfg.HistoryLimit)
	assert.Equal(t, ".workout-forge", cfg.StateDir)
	assert.Empty(t, cfg.LogFile)
	assert.False(t, cfg.Verbose)
}

func TestWhitelistHasNoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range config.WhitelistedVars {
		assert.False(t, seen[v], "duplicate whitelist entry %s", v)
		seen[v] = true
	}
}
