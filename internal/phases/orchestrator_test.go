package phases

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/workout-forge/internal/ai"
	"github.com/CodexForgeBR/workout-forge/internal/exitcode"
	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/prompt"
	"github.com/CodexForgeBR/workout-forge/internal/repair"
	"github.com/CodexForgeBR/workout-forge/internal/sections"
	"github.com/CodexForgeBR/workout-forge/internal/state"
	"github.com/CodexForgeBR/workout-forge/internal/template"
	"github.com/CodexForgeBR/workout-forge/internal/validate"
)

// MockOrchestratorGenerator replays scripted responses and records prompts.
type MockOrchestratorGenerator struct {
	CallCount int
	Responses []string
	Errors    []error
	PromptLog []string
}

func (m *MockOrchestratorGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	i := m.CallCount
	m.CallCount++
	m.PromptLog = append(m.PromptLog, prompt)
	if i < len(m.Errors) && m.Errors[i] != nil {
		return "", m.Errors[i]
	}
	if i < len(m.Responses) {
		return m.Responses[i], nil
	}
	return "", nil
}

const cleanPlan = `## Monday
### A1. Cat Camel
- 1 x 60 @ 0 kg
- Rest: none
- Notes: slow
### C1. Back Squat
- 5 x 5 @ 100 kg
- Rest: 180s
- Notes: brace
### E1. DB Lateral Raise
- 4 x 12 @ 8 kg
- Rest: 60s
- Notes: lean away
### E2. Face Pull
- 3 x 15 @ 10 kg
- Rest: 60s
- Notes: high elbows
`

// oddPlan carries one odd_db_load violation.
var oddPlan = strings.Replace(cleanPlan, "4 x 12 @ 8 kg", "4 x 12 @ 7 kg", 1)

// worsePlan adds a missing_main_load violation on top of oddPlan.
var worsePlan = strings.Replace(oddPlan, "5 x 5 @ 100 kg", "5 x 5", 1)

func testPrepared() *Prepared {
	compiled := template.CompileWeek([]sections.Day{{
		Name: "Monday",
		Sections: []sections.Section{
			{ID: sections.Warmup, Label: "Warm-Up", Exercises: []string{"Cat Camel"}},
			{ID: sections.Strength, Label: "Strength", Exercises: []string{"Back Squat"}},
			{ID: sections.Accessory, Label: "Accessory", Exercises: []string{"DB Lateral Raise", "Face Pull"}},
		},
	}}, 6)
	return &Prepared{
		Compiled: compiled,
		Context:  prompt.Context{Directives: template.RenderDirectives(compiled)},
	}
}

func newTestOrchestrator(gen ai.Generator, maxCorrections int) *Orchestrator {
	r := identity.NewResolver()
	return &Orchestrator{
		Generator:      gen,
		Validator:      validate.New(r, validate.Rules{}),
		Repairer:       repair.New(r),
		Prepared:       testPrepared(),
		MaxCorrections: maxCorrections,
		Provider:       "command",
		Out:            io.Discard,
	}
}

func TestRun_PassesFirstAttempt(t *testing.T) {
	gen := &MockOrchestratorGenerator{Responses: []string{cleanPlan}}
	res := newTestOrchestrator(gen, 2).Run(context.Background())

	assert.Equal(t, 1, gen.CallCount)
	assert.Equal(t, exitcode.Success, res.ExitCode)
	assert.Empty(t, res.Violations)
	assert.Equal(t, 1, res.Best)
	assert.False(t, res.UsedSkeleton)
	assert.Equal(t, 4, res.Repair.Kept)
	assert.Contains(t, gen.PromptLog[0], "C1. Back Squat")
}

func TestRun_CorrectsAfterViolations(t *testing.T) {
	gen := &MockOrchestratorGenerator{Responses: []string{oddPlan, cleanPlan}}
	res := newTestOrchestrator(gen, 2).Run(context.Background())

	require.Equal(t, 2, gen.CallCount)
	assert.Equal(t, exitcode.Success, res.ExitCode)
	assert.Equal(t, 2, res.Best)

	correction := gen.PromptLog[1]
	assert.Contains(t, correction, "[odd_db_load]")
	assert.Contains(t, correction, "4 x 12 @ 7 kg", "the previous plan is quoted back")

	require.Len(t, res.Attempts, 2)
	assert.Greater(t, res.Attempts[1].EditDistance, 0)
}

func TestRun_BudgetExhaustedKeepsBest(t *testing.T) {
	gen := &MockOrchestratorGenerator{Responses: []string{oddPlan, worsePlan}}
	res := newTestOrchestrator(gen, 1).Run(context.Background())

	assert.Equal(t, 2, gen.CallCount)
	assert.Equal(t, exitcode.Unresolved, res.ExitCode)
	assert.Equal(t, 1, res.Best)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, validate.CodeOddDBLoad, res.Violations[0].Code)
	assert.Contains(t, res.Plan, "4 x 12 @ 7 kg")
}

func TestRun_ZeroCorrectionsRunsOnce(t *testing.T) {
	gen := &MockOrchestratorGenerator{Responses: []string{oddPlan, cleanPlan}}
	res := newTestOrchestrator(gen, 0).Run(context.Background())

	assert.Equal(t, 1, gen.CallCount)
	assert.Equal(t, exitcode.Unresolved, res.ExitCode)
}

func TestRun_EmptyResponsesFallBackToSkeleton(t *testing.T) {
	gen := &MockOrchestratorGenerator{Responses: []string{"", "  \n```\n```\n"}}
	res := newTestOrchestrator(gen, 1).Run(context.Background())

	require.Equal(t, 2, gen.CallCount)
	assert.Equal(t, gen.PromptLog[0], gen.PromptLog[1], "no plan to correct, so the generation prompt is resent")
	for _, a := range res.Attempts {
		assert.ErrorIs(t, a.Err, ai.ErrEmptyResponse)
	}

	assert.True(t, res.UsedSkeleton)
	assert.Equal(t, 0, res.Best)
	assert.Equal(t, 4, res.Repair.Inserted)
	assert.Contains(t, res.Plan, "Back Squat")
	assert.Contains(t, validate.Codes(res.Violations), validate.CodeRepairPlaceholder)
	assert.Equal(t, exitcode.Unresolved, res.ExitCode)
}

func TestRun_GeneratorErrorCountsAsAttempt(t *testing.T) {
	gen := &MockOrchestratorGenerator{
		Errors:    []error{errors.New("backend down")},
		Responses: []string{"", cleanPlan},
	}
	res := newTestOrchestrator(gen, 2).Run(context.Background())

	assert.Equal(t, 2, gen.CallCount)
	require.Len(t, res.Attempts, 2)
	assert.True(t, res.Attempts[0].Empty())
	assert.Equal(t, exitcode.Success, res.ExitCode)
	assert.Equal(t, 2, res.Best)
}

func TestRun_MalformedResponseIsFailedAttempt(t *testing.T) {
	gen := &MockOrchestratorGenerator{Responses: []string{"Sure! Here is a great week of training.", cleanPlan}}
	res := newTestOrchestrator(gen, 2).Run(context.Background())

	require.Len(t, res.Attempts, 2)
	assert.ErrorIs(t, res.Attempts[0].Err, ErrNoPlan)
	assert.Equal(t, exitcode.Success, res.ExitCode)
}

func TestRun_InterruptedBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &MockOrchestratorGenerator{Responses: []string{cleanPlan}}
	res := newTestOrchestrator(gen, 2).Run(ctx)

	assert.Equal(t, 0, gen.CallCount)
	assert.True(t, res.Interrupted)
	assert.Equal(t, exitcode.Interrupted, res.ExitCode)
	assert.True(t, res.UsedSkeleton)
}

func TestRun_InterruptedDuringGeneration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &cancellingGenerator{cancel: cancel}
	res := newTestOrchestrator(gen, 2).Run(ctx)

	assert.Equal(t, 1, gen.calls)
	assert.True(t, res.Interrupted)
	assert.Equal(t, exitcode.Interrupted, res.ExitCode)
}

type cancellingGenerator struct {
	cancel context.CancelFunc
	calls  int
}

func (g *cancellingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	g.calls++
	g.cancel()
	return "", ctx.Err()
}

func TestRun_PersistsSessionState(t *testing.T) {
	root := t.TempDir()
	gen := &MockOrchestratorGenerator{Responses: []string{oddPlan, cleanPlan}}
	o := newTestOrchestrator(gen, 2)
	o.State = state.NewManager(root)
	o.Model = "llama3.1"
	o.InputHash = state.HashText("Monday\n")
	o.OutputFile = "week.md"

	res := o.Run(context.Background())
	require.Equal(t, exitcode.Success, res.ExitCode)

	s, err := state.LoadState(root)
	require.NoError(t, err)
	assert.Equal(t, o.State.SessionID(), s.SessionID)
	assert.Equal(t, state.StatusComplete, s.Status)
	assert.Equal(t, state.PhaseDone, s.Phase)
	assert.Equal(t, 2, s.BestAttempt)
	assert.Equal(t, o.InputHash, s.InputHash)
	assert.Equal(t, "week.md", s.OutputFile)
	require.Len(t, s.Attempts, 2)
	assert.Equal(t, []string{validate.CodeOddDBLoad}, s.Attempts[0].Codes)
	assert.Equal(t, 0, s.Attempts[1].Violations)
	assert.Greater(t, s.Attempts[1].EditDistance, 0)

	for _, name := range []string{"prompt.txt", "response.txt", "plan.md", "violations.json"} {
		assert.FileExists(t, filepath.Join(o.State.AttemptDir(1), name))
	}
	raw, err := os.ReadFile(filepath.Join(o.State.AttemptDir(2), "violations.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestRun_PersistsUnresolvedStatus(t *testing.T) {
	root := t.TempDir()
	gen := &MockOrchestratorGenerator{Responses: []string{oddPlan}}
	o := newTestOrchestrator(gen, 0)
	o.State = state.NewManager(root)

	o.Run(context.Background())

	s, err := state.LoadState(root)
	require.NoError(t, err)
	assert.Equal(t, state.StatusUnresolved, s.Status)
	assert.Contains(t, s.LastFeedback, "[odd_db_load]")
}

func TestMaxAttempts(t *testing.T) {
	assert.Equal(t, 3, (&Orchestrator{MaxCorrections: 2}).MaxAttempts())
	assert.Equal(t, 1, (&Orchestrator{MaxCorrections: 0}).MaxAttempts())
	assert.Equal(t, 1, (&Orchestrator{MaxCorrections: -4}).MaxAttempts())
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, EditDistance(cleanPlan, cleanPlan))
	assert.Equal(t, 4, EditDistance("", "abc\n"))

	d := EditDistance(cleanPlan, oddPlan)
	assert.Greater(t, d, 0)
	assert.Equal(t, d, EditDistance(oddPlan, cleanPlan))
}
