package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/workout-forge/internal/config"
)

// writeFile is a test helper that creates a temporary file with the given content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

// ---------------------------------------------------------------------------
// LoadFile tests
// ---------------------------------------------------------------------------

func TestLoadFileBasicKeyValue(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config", "PROVIDER=command\nMODEL=qwen2.5\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "command", m["PROVIDER"])
	assert.Equal(t, "qwen2.5", m["MODEL"])
}

func TestLoadFileSkipsCommentsBlankAndUnknown(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config", "# comment\n\nNOT_ALLOWED=1\nno equals sign\nVERBOSE=true\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"VERBOSE": "true"}, m)
}

func TestLoadFileExportAndQuotes(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config", "export COMMAND=\"claude --print\"\n  MODEL = 'llama3.1:8b'  \nLOG_FILE=a=b.log\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "claude --print", m["COMMAND"])
	assert.Equal(t, "llama3.1:8b", m["MODEL"])
	assert.Equal(t, "a=b.log", m["LOG_FILE"], "only the first = splits")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// ---------------------------------------------------------------------------
// LoadWithPrecedence tests
// ---------------------------------------------------------------------------

func TestLoadWithPrecedenceOrder(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "global", "MODEL=global\nMAX_CORRECTIONS=5\nTIMEOUT=10\nSTATE_DIR=/g\n")
	project := writeFile(t, dir, "project", "MODEL=project\nMAX_CORRECTIONS=4\nTIMEOUT=20\n")
	explicit := writeFile(t, dir, "explicit", "MODEL=explicit\nMAX_CORRECTIONS=3\n")

	cfg, err := config.LoadWithPrecedence(global, project, explicit, map[string]string{"MODEL": "cli"})
	require.NoError(t, err)

	assert.Equal(t, "cli", cfg.Model)
	assert.Equal(t, 3, cfg.MaxCorrections)
	assert.Equal(t, 20, cfg.Timeout)
	assert.Equal(t, "/g", cfg.StateDir)
	assert.Equal(t, 6, cfg.MaxExercisesPerSection, "untouched keys keep defaults")
}

func TestLoadWithPrecedenceMissingOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadWithPrecedence(filepath.Join(dir, "g"), filepath.Join(dir, "p"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestLoadWithPrecedenceMissingExplicitFile(t *testing.T) {
	_, err := config.LoadWithPrecedence("", "", filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "explicit config")
}

// ---------------------------------------------------------------------------
// ApplyMapToConfig tests
// ---------------------------------------------------------------------------

func TestApplyMapToConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{
		"PROVIDER":                  "Command",
		"COMMAND":                   "llm -m gpt-4o",
		"MAX_EXERCISES_PER_SECTION": "4",
		"MAX_RETRY":                 "not-a-number",
		"RETRY_BASE_DELAY":          " 7 ",
		"RULES_FILE":                "rules.yaml",
		"HISTORY_DSN":               "postgres://localhost/logs",
		"HISTORY_LIMIT":             "5",
		"LOG_FILE":                  "forge.log",
		"VERBOSE":                   "YES",
	})

	assert.Equal(t, config.ProviderCommand, cfg.Provider)
	assert.Equal(t, "llm -m gpt-4o", cfg.Command)
	assert.Equal(t, 4, cfg.MaxExercisesPerSection)
	assert.Equal(t, 3, cfg.MaxRetry, "unparseable ints keep the previous value")
	assert.Equal(t, 7, cfg.RetryBaseDelay)
	assert.Equal(t, "rules.yaml", cfg.RulesFile)
	assert.Equal(t, "postgres://localhost/logs", cfg.HistoryDSN)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, "forge.log", cfg.LogFile)
	assert.True(t, cfg.Verbose)
}
