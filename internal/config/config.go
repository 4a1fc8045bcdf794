// Package config defines the workout-forge configuration model and default
// values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < CLI flag overrides.
package config

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = [14]string{
	"PROVIDER",
	"MODEL",
	"COMMAND",
	"MAX_CORRECTIONS",
	"MAX_EXERCISES_PER_SECTION",
	"MAX_RETRY",
	"RETRY_BASE_DELAY",
	"TIMEOUT",
	"RULES_FILE",
	"HISTORY_DSN",
	"HISTORY_LIMIT",
	"STATE_DIR",
	"LOG_FILE",
	"VERBOSE",
}

// Providers accepted by PROVIDER.
const (
	ProviderOllama  = "ollama"
	ProviderCommand = "command"
)

// Config holds every configuration field for the workout-forge CLI.
type Config struct {
	// Generator selection.
	Provider string
	Model    string
	Command  string

	// Loop limits.
	MaxCorrections         int
	MaxExercisesPerSection int
	MaxRetry               int

	// Timing, in seconds.
	RetryBaseDelay int
	Timeout        int

	// Files and stores.
	RulesFile    string
	HistoryDSN   string
	HistoryLimit int
	StateDir     string
	LogFile      string

	// Runtime flags.
	Verbose bool

	// CLI-only flags (not loaded from config files).
	ConfigFile string
	OutputFile string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		Provider:               ProviderOllama,
		Model:                  "llama3.1",
		MaxCorrections:         2,
		MaxExercisesPerSection: 6,
		MaxRetry:               3,
		RetryBaseDelay:         2,
		Timeout:                300,
		HistoryDSN:             ".workout-forge/history.db",
		HistoryLimit:           3,
		StateDir:               ".workout-forge",
	}
}
