// Package banner prints the colored session headers and run summaries for
// the workout-forge CLI.
package banner

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/workout-forge/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

// Summary is what a finished run reports.
type Summary struct {
	SessionID    string
	Attempts     int
	BestAttempt  int
	Violations   int
	Codes        []string
	Kept         int
	Repaired     int
	Inserted     int
	Dropped      int
	DurationSecs int
	OutputFile   string
	UsedSkeleton bool
}

// PrintStartup displays the session header.
//
//	═══════════════════════════════════════════════════
//	  workout-forge - weekly plan generation
//	═══════════════════════════════════════════════════
//	  Session:    6f1c...
//	  Provider:   ollama
//	  Model:      llama3.1
//	═══════════════════════════════════════════════════
func PrintStartup(w io.Writer, sessionID, provider, model string) {
	sep := headerColor(rule)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, headerColor("  workout-forge - weekly plan generation"))
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  Session:    %s\n", sessionID)
	fmt.Fprintf(w, "  Provider:   %s\n", provider)
	if model != "" {
		fmt.Fprintf(w, "  Model:      %s\n", model)
	}
	fmt.Fprintln(w, sep)
}

// PrintSummary displays the outcome of a run. A clean plan gets the green
// header; leftover violations get the yellow one with their codes listed.
func PrintSummary(w io.Writer, s Summary) {
	paint := successColor
	title := "  ✓ Plan passed all checks"
	switch {
	case s.UsedSkeleton:
		paint = errorColor
		title = "  ✗ No usable generation; wrote template skeleton"
	case s.Violations > 0:
		paint = warnColor
		title = fmt.Sprintf("  ⚠ Plan has %d unresolved violation(s)", s.Violations)
	}

	sep := paint(rule)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, paint(title))
	fmt.Fprintf(w, "  Attempts:   %d (best: %d)\n", s.Attempts, s.BestAttempt)
	fmt.Fprintf(w, "  Repair:     %d kept, %d repaired, %d inserted, %d dropped\n",
		s.Kept, s.Repaired, s.Inserted, s.Dropped)
	if len(s.Codes) > 0 {
		fmt.Fprintf(w, "  Codes:      %s\n", strings.Join(s.Codes, ", "))
	}
	fmt.Fprintf(w, "  Duration:   %s\n", logging.FormatDuration(s.DurationSecs))
	if s.OutputFile != "" {
		fmt.Fprintf(w, "  Output:     %s\n", s.OutputFile)
	}
	fmt.Fprintln(w, sep)
}

// PrintInterrupted displays when a session is cut short by a signal.
func PrintInterrupted(w io.Writer, attempt int, phase string) {
	sep := warnColor(rule)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, warnColor("  ⚠ Session interrupted"))
	fmt.Fprintf(w, "  Attempt:    %d\n", attempt)
	fmt.Fprintf(w, "  Phase:      %s\n", phase)
	fmt.Fprintln(w, sep)
}
