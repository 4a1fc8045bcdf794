// Package exitcode defines named exit codes for the workout-forge CLI.
package exitcode

const (
	Success     = 0   // Plan written with no remaining violations
	Error       = 1   // Bad input, misconfiguration, generator unavailable
	Unresolved  = 2   // Plan written but violations remain after all corrections
	Interrupted = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Unresolved:
		return "Unresolved"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}

// ForViolations maps a final violation count to an exit code.
func ForViolations(n int) int {
	if n > 0 {
		return Unresolved
	}
	return Success
}
