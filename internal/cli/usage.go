package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `workout-forge - weekly training plans from trainer notes, checked and repaired

USAGE
  workout-forge <command> [flags]

COMMANDS
  parse <trainer.txt>              Show detected days, sections and anchors
  compile <trainer.txt>            Render the compiled directive block
  validate <trainer.txt> <plan>    Check a plan against the template and rules
  repair <trainer.txt> <plan>      Restore missing anchors without the model
  generate <trainer.txt>           Generate, repair, validate and correct a plan
  history add|show                 Record or inspect training logs

FLAGS
  Generator:
    --provider <ollama|command>      Generator backend (default: ollama)
    --model <name>                   Ollama model (default: llama3.1)
    --command <cmdline>              Command backend; prompt is sent on stdin

  Loop Limits:
    --max-corrections <int>          Correction attempts after the first (default: 2)
    --max-exercises-per-section <n>  Anchors kept per section (default: 6)
    --max-retry <int>                Retries per generator call (default: 3)
    --retry-base-delay <secs>        First retry delay, doubled each time (default: 2)
    --timeout <secs>                 Per-call timeout, 0 disables (default: 300)

  Files & Stores:
    --rules <path>                   Program rules YAML (default: .workout-forge/rules.yaml if present)
    --history-dsn <dsn>              SQLite path or postgres:// URL (default: .workout-forge/history.db)
    --history-limit <int>            Prior logs per exercise (default: 3)
    --state-dir <path>               Session artifacts (default: .workout-forge)
    --log-file <path>                Mirror logs to a rotated file
    --config <path>                  Additional KEY=VALUE config file
    -o, --output <path>              Plan output file (generate, repair)

  Other:
    -v, --verbose                    Show debug output
    -h, --help                       Show this help text
    --version                        Show version, commit, build date

CONFIG PRECEDENCE
  defaults < ~/.config/workout-forge/config < .workout-forge/config < --config < flags

EXIT CODES
  0   Success              Plan has no violations
  1   Error                Invalid arguments, unreadable input, misconfiguration
  2   Unresolved           Plan written but violations remain
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Generate next week's plan with a local model
  workout-forge generate coach-notes.txt -o plan.md

  # Use any CLI that reads a prompt on stdin
  workout-forge generate coach-notes.txt --provider command --command "llm -m gpt-4o"

  # Check and fix a hand-edited plan
  workout-forge validate coach-notes.txt plan.md
  workout-forge repair coach-notes.txt plan.md -o plan.md

  # Log a session
  workout-forge history add --day Thursday --exercise "Hammer Curl" --log "3 x 12 @ 16 kg, RPE 9"
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
