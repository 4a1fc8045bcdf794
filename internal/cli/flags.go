// Package cli provides flag binding and validation for the workout-forge CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/workout-forge/internal/config"
)

// BindFlags registers the shared configuration flags as persistent flags on
// the root command. The flags write straight into cfg; defaults come from cfg
// as passed in. Call ValidateFlags after parsing.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.PersistentFlags()

	// Generator
	flags.StringVar(&cfg.Provider, "provider", cfg.Provider, "Generator backend: ollama or command")
	flags.StringVar(&cfg.Model, "model", cfg.Model, "Model name for the ollama backend")
	flags.StringVar(&cfg.Command, "command", cfg.Command, "Command line for the command backend (prompt on stdin)")

	// Loop limits
	flags.IntVar(&cfg.MaxCorrections, "max-corrections", cfg.MaxCorrections, "Correction attempts after the first generation")
	flags.IntVar(&cfg.MaxExercisesPerSection, "max-exercises-per-section", cfg.MaxExercisesPerSection, "Anchors kept per compiled section")
	flags.IntVar(&cfg.MaxRetry, "max-retry", cfg.MaxRetry, "Retries per generator call")
	flags.IntVar(&cfg.RetryBaseDelay, "retry-base-delay", cfg.RetryBaseDelay, "Seconds before the first retry, doubled each time")
	flags.IntVar(&cfg.Timeout, "timeout", cfg.Timeout, "Seconds allowed per generator call (0 disables)")

	// Files and stores
	flags.StringVar(&cfg.RulesFile, "rules", cfg.RulesFile, "Program rules YAML file")
	flags.StringVar(&cfg.HistoryDSN, "history-dsn", cfg.HistoryDSN, "History store: SQLite path or postgres:// URL")
	flags.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "Prior logs read per exercise")
	flags.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "Directory for session state and attempt artifacts")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Also write logs to this file (rotated)")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")

	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Show debug output")
}

// BindOutputFlag registers --output on a command that writes a plan.
func BindOutputFlag(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVarP(&cfg.OutputFile, "output", "o", "", "Write the plan to this file instead of stdout")
}

// flagKeys maps each config flag to its config file key.
var flagKeys = map[string]string{
	"provider":                  "PROVIDER",
	"model":                     "MODEL",
	"command":                   "COMMAND",
	"max-corrections":           "MAX_CORRECTIONS",
	"max-exercises-per-section": "MAX_EXERCISES_PER_SECTION",
	"max-retry":                 "MAX_RETRY",
	"retry-base-delay":          "RETRY_BASE_DELAY",
	"timeout":                   "TIMEOUT",
	"rules":                     "RULES_FILE",
	"history-dsn":               "HISTORY_DSN",
	"history-limit":             "HISTORY_LIMIT",
	"state-dir":                 "STATE_DIR",
	"log-file":                  "LOG_FILE",
	"verbose":                   "VERBOSE",
}

// BuildOverrides returns the config keys for flags the user set explicitly,
// so config file values are not clobbered by flag defaults.
func BuildOverrides(cmd *cobra.Command) map[string]string {
	overrides := make(map[string]string)
	flags := cmd.Flags()
	for flag, key := range flagKeys {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	return overrides
}

// ConfigPaths returns the global and project config file locations.
func ConfigPaths() (global, project string) {
	if dir, err := os.UserConfigDir(); err == nil {
		global = filepath.Join(dir, "workout-forge", "config")
	}
	return global, filepath.Join(".workout-forge", "config")
}

// ValidateFlags checks flag values after parsing.
func ValidateFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}
	return ValidateConfig(cfg)
}

// ValidateConfig checks the merged configuration.
func ValidateConfig(cfg *config.Config) error {
	switch cfg.Provider {
	case config.ProviderOllama:
		if cfg.Model == "" {
			return fmt.Errorf("provider %s needs a model", cfg.Provider)
		}
	case config.ProviderCommand:
		if cfg.Command == "" {
			return fmt.Errorf("provider %s needs --command", cfg.Provider)
		}
	default:
		return fmt.Errorf("--provider must be %q or %q, got: %s", config.ProviderOllama, config.ProviderCommand, cfg.Provider)
	}

	ints := []struct {
		flag string
		val  int
		min  int
	}{
		{"max-corrections", cfg.MaxCorrections, 0},
		{"max-exercises-per-section", cfg.MaxExercisesPerSection, 1},
		{"max-retry", cfg.MaxRetry, 0},
		{"retry-base-delay", cfg.RetryBaseDelay, 0},
		{"timeout", cfg.Timeout, 0},
		{"history-limit", cfg.HistoryLimit, 1},
	}
	for _, i := range ints {
		if i.val < i.min {
			return fmt.Errorf("--%s must be at least %s, got: %d", i.flag, strconv.Itoa(i.min), i.val)
		}
	}
	return nil
}
