package phases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/CodexForgeBR/workout-forge/internal/ai"
	"github.com/CodexForgeBR/workout-forge/internal/banner"
	"github.com/CodexForgeBR/workout-forge/internal/exitcode"
	"github.com/CodexForgeBR/workout-forge/internal/logging"
	"github.com/CodexForgeBR/workout-forge/internal/plan"
	"github.com/CodexForgeBR/workout-forge/internal/prompt"
	"github.com/CodexForgeBR/workout-forge/internal/repair"
	"github.com/CodexForgeBR/workout-forge/internal/state"
	"github.com/CodexForgeBR/workout-forge/internal/validate"
)

// ErrNoPlan marks a response that held text but no recognizable day.
var ErrNoPlan = errors.New("response contains no plan days")

// Orchestrator runs the generate, repair, validate, correct loop.
type Orchestrator struct {
	Generator      ai.Generator
	Validator      *validate.Validator
	Repairer       *repair.Engine
	Prepared       *Prepared
	MaxCorrections int
	Timeout        time.Duration  // per generation call, zero for none
	State          *state.Manager // nil disables persistence
	Provider       string
	Model          string
	InputHash      string
	OutputFile     string
	Out            io.Writer // banners, defaults to stdout

	session   *state.SessionState
	startTime time.Time
}

// Attempt is one round through the loop.
type Attempt struct {
	Number       int
	Prompt       string
	Response     string
	Plan         string
	Repair       repair.Summary
	Violations   []validate.Violation
	Err          error
	EditDistance int
}

// Empty reports whether the attempt produced no usable plan.
func (a *Attempt) Empty() bool {
	return a.Err != nil
}

// Result is the outcome of Run. Plan is always set, falling back to a
// repaired skeleton when no attempt produced text.
type Result struct {
	Plan         string
	Violations   []validate.Violation
	Repair       repair.Summary
	Attempts     []Attempt
	Best         int // attempt number, 0 for the skeleton
	UsedSkeleton bool
	Interrupted  bool
	ExitCode     int
}

// MaxAttempts is the initial generation plus the correction budget.
func (o *Orchestrator) MaxAttempts() int {
	if o.MaxCorrections < 0 {
		return 1
	}
	return 1 + o.MaxCorrections
}

// Run executes the bounded correction loop. It never returns an error; a
// failed or interrupted run still yields the best plan seen.
func (o *Orchestrator) Run(ctx context.Context) *Result {
	o.startTime = time.Now()
	o.phaseInit()

	res := &Result{}
	best, last := -1, -1
	maxAttempts := o.MaxAttempts()

	for n := 1; n <= maxAttempts; n++ {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		logging.Phase(fmt.Sprintf("Attempt %d/%d", n, maxAttempts))

		var basis *Attempt
		if best >= 0 {
			basis = &res.Attempts[best]
		}
		a := o.runAttempt(ctx, n, basis)
		if !a.Empty() && last >= 0 {
			a.EditDistance = EditDistance(res.Attempts[last].Plan, a.Plan)
			logging.Debug(fmt.Sprintf("Attempt %d moved %d character(s) from attempt %d", n, a.EditDistance, res.Attempts[last].Number))
		}
		res.Attempts = append(res.Attempts, a)
		o.record(a)

		if a.Err != nil && ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		if !a.Empty() {
			idx := len(res.Attempts) - 1
			if best < 0 || len(a.Violations) < len(res.Attempts[best].Violations) {
				best = idx
			}
			last = idx
		}

		verdict := ProcessVerdict(VerdictInput{
			Empty:       a.Empty(),
			Violations:  len(a.Violations),
			Attempt:     n,
			MaxAttempts: maxAttempts,
		})
		switch verdict.Verdict {
		case VerdictPass:
			logging.Success(fmt.Sprintf("Attempt %d passed all checks", n))
		case VerdictEmpty:
			logging.Warn(fmt.Sprintf("Attempt %d produced no plan: %v", n, a.Err))
		default:
			logging.Warn(fmt.Sprintf("Attempt %d has %d violation(s): %s", n, len(a.Violations), strings.Join(validate.Codes(a.Violations), ", ")))
		}
		if verdict.Action == ActionExit {
			break
		}
	}

	if best >= 0 {
		b := res.Attempts[best]
		res.Plan, res.Violations, res.Repair, res.Best = b.Plan, b.Violations, b.Repair, b.Number
	} else {
		o.phaseSkeleton(res)
	}

	switch {
	case res.Interrupted:
		res.ExitCode = exitcode.Interrupted
	case strings.TrimSpace(res.Plan) == "":
		res.ExitCode = exitcode.Error
	default:
		res.ExitCode = exitcode.ForViolations(len(res.Violations))
	}

	o.phaseFinish(res)
	return res
}

func (o *Orchestrator) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o *Orchestrator) phaseInit() {
	if o.State == nil {
		return
	}
	s, err := o.State.Begin(o.Provider, o.Model, o.MaxCorrections)
	if err != nil {
		logging.Warn(fmt.Sprintf("Failed to init session state: %v", err))
		return
	}
	s.InputHash, s.OutputFile = o.InputHash, o.OutputFile
	o.session = s
	banner.PrintStartup(o.out(), s.SessionID, o.Provider, o.Model)
}

func (o *Orchestrator) runAttempt(ctx context.Context, n int, basis *Attempt) Attempt {
	a := Attempt{Number: n}
	if basis == nil {
		o.setPhase(state.PhaseGenerate, n)
		a.Prompt = prompt.BuildGeneratePrompt(o.Prepared.Context)
	} else {
		o.setPhase(state.PhaseCorrect, n)
		a.Prompt = prompt.BuildCorrectionPrompt(o.Prepared.Context, basis.Plan, validate.FormatFeedback(basis.Violations))
	}

	genCtx := ctx
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	text, err := o.Generator.Generate(genCtx, a.Prompt)
	if err != nil {
		a.Err = err
		return a
	}
	a.Response = text
	if strings.TrimSpace(plan.StripFences(text)) == "" {
		a.Err = ai.ErrEmptyResponse
		return a
	}
	if len(plan.Parse(text).Days) == 0 {
		a.Err = ErrNoPlan
		return a
	}

	o.setPhase(state.PhaseRepair, n)
	var sum repair.Summary
	a.Plan, sum = o.Repairer.Repair(text, o.Prepared.Compiled)
	a.Repair = sum
	if sum.Changed() {
		logging.Info(fmt.Sprintf("Repair: %d kept, %d repaired, %d inserted, %d dropped", sum.Kept, sum.Repaired, sum.Inserted, sum.Dropped))
		logging.Debug(sum.Diff)
	}

	o.setPhase(state.PhaseValidate, n)
	a.Violations = o.Validator.Validate(validate.Input{
		Plan:       plan.Parse(a.Plan),
		Compiled:   o.Prepared.Compiled,
		Directives: o.Prepared.Directives,
	})
	return a
}

// phaseSkeleton repairs an empty plan so every compiled anchor still reaches
// the output with placeholder prescriptions.
func (o *Orchestrator) phaseSkeleton(res *Result) {
	logging.Warn("No attempt produced a plan; writing template skeleton")
	res.Plan, res.Repair = o.Repairer.Repair("", o.Prepared.Compiled)
	res.Violations = o.Validator.Validate(validate.Input{
		Plan:       plan.Parse(res.Plan),
		Compiled:   o.Prepared.Compiled,
		Directives: o.Prepared.Directives,
	})
	res.UsedSkeleton = true
}

func (o *Orchestrator) setPhase(phase string, attempt int) {
	if o.session == nil {
		return
	}
	o.session.Phase = phase
	o.session.Attempt = attempt
	if err := o.State.Save(o.session); err != nil {
		logging.Warn(fmt.Sprintf("Failed to save %s state: %v", phase, err))
	}
}

func (o *Orchestrator) record(a Attempt) {
	if o.session == nil {
		return
	}
	rec := state.AttemptRecord{
		Number:       a.Number,
		Empty:        a.Empty(),
		Violations:   len(a.Violations),
		Codes:        validate.Codes(a.Violations),
		EditDistance: a.EditDistance,
		Repair: state.RepairCounts{
			Kept:     a.Repair.Kept,
			Repaired: a.Repair.Repaired,
			Inserted: a.Repair.Inserted,
			Dropped:  a.Repair.Dropped,
		},
	}
	if a.Err != nil {
		rec.Error = a.Err.Error()
	}
	o.session.Attempts = append(o.session.Attempts, rec)

	artifacts := state.Artifacts{Prompt: a.Prompt, Response: a.Response, Plan: a.Plan}
	if !a.Empty() {
		vs := a.Violations
		if vs == nil {
			vs = []validate.Violation{}
		}
		artifacts.Violations = vs
	}
	if err := o.State.SaveAttempt(a.Number, artifacts); err != nil {
		logging.Warn(fmt.Sprintf("Failed to save attempt %d artifacts: %v", a.Number, err))
	}
	if err := o.State.Save(o.session); err != nil {
		logging.Warn(fmt.Sprintf("Failed to save attempt %d state: %v", a.Number, err))
	}
}

func (o *Orchestrator) phaseFinish(res *Result) {
	elapsed := int(time.Since(o.startTime).Seconds())

	if res.Interrupted {
		attempt := len(res.Attempts)
		phase := state.PhaseGenerate
		if o.session != nil {
			phase = o.session.Phase
		}
		banner.PrintInterrupted(o.out(), attempt, phase)
	}

	if o.session != nil {
		o.session.Phase = state.PhaseDone
		o.session.BestAttempt = res.Best
		o.session.LastFeedback = validate.FormatFeedback(res.Violations)
		switch {
		case res.Interrupted:
			o.session.Status = state.StatusInterrupted
		case res.ExitCode == exitcode.Error:
			o.session.Status = state.StatusFailed
		case len(res.Violations) > 0:
			o.session.Status = state.StatusUnresolved
		default:
			o.session.Status = state.StatusComplete
		}
		if err := o.State.Save(o.session); err != nil {
			logging.Warn(fmt.Sprintf("Failed to save final state: %v", err))
		}
	}

	sessionID := ""
	if o.session != nil {
		sessionID = o.session.SessionID
	}
	banner.PrintSummary(o.out(), banner.Summary{
		SessionID:    sessionID,
		Attempts:     len(res.Attempts),
		BestAttempt:  res.Best,
		Violations:   len(res.Violations),
		Codes:        validate.Codes(res.Violations),
		Kept:         res.Repair.Kept,
		Repaired:     res.Repair.Repaired,
		Inserted:     res.Repair.Inserted,
		Dropped:      res.Repair.Dropped,
		DurationSecs: elapsed,
		OutputFile:   o.OutputFile,
		UsedSkeleton: res.UsedSkeleton,
	})
}
