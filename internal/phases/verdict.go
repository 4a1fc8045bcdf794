package phases

import (
	"github.com/CodexForgeBR/workout-forge/internal/exitcode"
)

// Verdicts assigned to an attempt after repair and validation.
const (
	VerdictPass            = "PASS"
	VerdictNeedsCorrection = "NEEDS_CORRECTION"
	VerdictEmpty           = "EMPTY"
)

// Loop actions.
const (
	ActionContinue = "continue"
	ActionExit     = "exit"
)

// VerdictInput contains the data needed to decide what follows an attempt.
type VerdictInput struct {
	Empty       bool // generator failed or returned no usable plan
	Violations  int
	Attempt     int // 1-based
	MaxAttempts int
}

// VerdictResult contains the outcome of verdict processing.
type VerdictResult struct {
	Verdict  string
	Action   string
	ExitCode int
}

// Classify names the attempt's verdict.
func Classify(in VerdictInput) string {
	switch {
	case in.Empty:
		return VerdictEmpty
	case in.Violations > 0:
		return VerdictNeedsCorrection
	default:
		return VerdictPass
	}
}

// ProcessVerdict decides whether the loop runs another attempt. A passing
// plan always stops the loop; otherwise the loop continues while budget
// remains and exits as unresolved once it is spent.
func ProcessVerdict(in VerdictInput) VerdictResult {
	v := Classify(in)
	if v == VerdictPass {
		return VerdictResult{Verdict: v, Action: ActionExit, ExitCode: exitcode.Success}
	}
	if in.Attempt < in.MaxAttempts {
		return VerdictResult{Verdict: v, Action: ActionContinue, ExitCode: exitcode.Success}
	}
	return VerdictResult{Verdict: v, Action: ActionExit, ExitCode: exitcode.Unresolved}
}
