package phases

import (
	"context"
	"fmt"

	"github.com/CodexForgeBR/workout-forge/internal/history"
	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/logging"
	"github.com/CodexForgeBR/workout-forge/internal/progression"
	"github.com/CodexForgeBR/workout-forge/internal/prompt"
	"github.com/CodexForgeBR/workout-forge/internal/sections"
	"github.com/CodexForgeBR/workout-forge/internal/template"
	"github.com/CodexForgeBR/workout-forge/internal/validate"
)

// lowConfidence is the parse confidence under which a day is reported.
const lowConfidence = 0.5

// HistorySource fetches recent logs keyed by exercise name. *history.Store
// satisfies it.
type HistorySource interface {
	ForExercises(ctx context.Context, names []string, limit int) (map[string][]history.Record, error)
}

// PrepareConfig holds what Prepare needs besides the trainer text.
type PrepareConfig struct {
	Resolver      *identity.Resolver
	Rules         validate.Rules
	History       HistorySource // nil means no history
	HistoryLimit  int
	MaxPerSection int
}

// Prepared is the per-request material shared by every attempt.
type Prepared struct {
	Week       []sections.Day
	Compiled   []template.Day
	Directives []progression.Directive
	Context    prompt.Context
}

// Prepare parses and compiles the trainer text, builds progression
// directives from history, and renders the prompt context.
func Prepare(ctx context.Context, cfg PrepareConfig, trainerText string) (*Prepared, error) {
	p := &Prepared{Week: sections.ParseWeek(trainerText)}
	for _, d := range p.Week {
		if d.Confidence < lowConfidence {
			logging.Warn(fmt.Sprintf("%s parsed with low confidence (%.2f)", d.Name, d.Confidence))
		}
		for _, w := range d.Warnings {
			logging.Debug(fmt.Sprintf("%s: %s", d.Name, w))
		}
	}
	p.Compiled = template.CompileWeek(p.Week, cfg.MaxPerSection)

	var reqs []progression.Request
	var names []string
	for _, d := range p.Compiled {
		for _, a := range d.Anchors() {
			reqs = append(reqs, progression.Request{Day: d.Name, Exercise: a.ExerciseName})
			names = append(names, a.ExerciseName)
		}
	}

	if cfg.History != nil && len(names) > 0 {
		records, err := cfg.History.ForExercises(ctx, names, cfg.HistoryLimit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.Warn(fmt.Sprintf("History unavailable, generating without it: %v", err))
		} else {
			p.Directives = progression.BuildAll(cfg.Resolver, reqs, history.Source(records))
		}
	}
	logging.Info(fmt.Sprintf("Compiled %d day(s), %d progression directive(s)", len(p.Compiled), len(p.Directives)))

	p.Context = prompt.Context{
		Directives: template.RenderDirectives(p.Compiled),
		HardRules:  prompt.FormatHardRules(cfg.Rules),
	}
	if len(p.Directives) > 0 {
		p.Context.History = progression.FormatDirectives(p.Directives)
	}
	return p, nil
}
