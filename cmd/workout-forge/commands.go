package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/workout-forge/internal/ai"
	"github.com/CodexForgeBR/workout-forge/internal/cli"
	"github.com/CodexForgeBR/workout-forge/internal/config"
	"github.com/CodexForgeBR/workout-forge/internal/exitcode"
	"github.com/CodexForgeBR/workout-forge/internal/history"
	"github.com/CodexForgeBR/workout-forge/internal/logging"
	"github.com/CodexForgeBR/workout-forge/internal/phases"
	"github.com/CodexForgeBR/workout-forge/internal/plan"
	"github.com/CodexForgeBR/workout-forge/internal/prompt"
	"github.com/CodexForgeBR/workout-forge/internal/repair"
	"github.com/CodexForgeBR/workout-forge/internal/sections"
	sighandler "github.com/CodexForgeBR/workout-forge/internal/signal"
	"github.com/CodexForgeBR/workout-forge/internal/state"
	"github.com/CodexForgeBR/workout-forge/internal/template"
	"github.com/CodexForgeBR/workout-forge/internal/validate"
)

func (a *app) parseCmd() *cobra.Command {
	var asPlan, asYAML bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Show detected days, sections and anchors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			if asPlan {
				return a.encode(plan.Parse(text), asYAML)
			}
			return a.encode(sections.ParseWeek(text), asYAML)
		},
	}
	cmd.Flags().BoolVar(&asPlan, "plan", false, "Parse a generated plan instead of trainer notes")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON")
	return cmd
}

func (a *app) compileCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "compile <trainer.txt>",
		Short: "Render the compiled directive block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			compiled := template.CompileWeek(sections.ParseWeek(text), a.cfg.MaxExercisesPerSection)
			if asJSON {
				return a.encode(compiled, false)
			}
			_, err = fmt.Fprint(a.stdout, template.RenderDirectives(compiled))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the compiled days as JSON")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate <trainer.txt> <plan.md>",
		Short: "Check a plan against the template and program rules",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trainer, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			planText, err := a.readInput(args[1])
			if err != nil {
				return err
			}

			store := a.openHistory()
			if store != nil {
				defer store.Close()
			}
			prepared, err := a.prepare(cmd.Context(), trainer, store)
			if err != nil {
				return err
			}

			vs := validate.New(a.resolver, a.rules.Rules).Validate(validate.Input{
				Plan:       plan.Parse(planText),
				Compiled:   prepared.Compiled,
				Directives: prepared.Directives,
			})
			if asJSON {
				if vs == nil {
					vs = []validate.Violation{}
				}
				if err := a.encode(vs, false); err != nil {
					return err
				}
			} else if len(vs) > 0 {
				fmt.Fprint(a.stdout, validate.FormatFeedback(vs))
			}

			if len(vs) == 0 {
				logging.Success("Plan passed all checks")
			} else {
				logging.Warn(fmt.Sprintf("%d violation(s)", len(vs)))
			}
			return exitWith(exitcode.ForViolations(len(vs)))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print violations as JSON")
	return cmd
}

func (a *app) repairCmd() *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "repair <trainer.txt> <plan.md>",
		Short: "Restore missing anchors without calling the model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trainer, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			planText, err := a.readInput(args[1])
			if err != nil {
				return err
			}

			compiled := template.CompileWeek(sections.ParseWeek(trainer), a.cfg.MaxExercisesPerSection)
			patched, sum := repair.New(a.resolver).Repair(planText, compiled)
			if err := a.writePlan(patched); err != nil {
				return err
			}

			logging.Info(fmt.Sprintf("Repair: %d kept, %d repaired, %d inserted, %d dropped",
				sum.Kept, sum.Repaired, sum.Inserted, sum.Dropped))
			for _, d := range sum.Days {
				for _, name := range d.Inserted {
					logging.Debug(fmt.Sprintf("%s: inserted %s", d.Day, name))
				}
				for _, name := range d.Dropped {
					logging.Debug(fmt.Sprintf("%s: dropped %s", d.Day, name))
				}
			}
			if showDiff && sum.Diff != "" {
				fmt.Fprint(a.stderr, sum.Diff)
			}
			return nil
		},
	}
	cli.BindOutputFlag(cmd, a.flags)
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print a unified diff of the changes to stderr")
	return cmd
}

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <trainer.txt>",
		Short: "Generate, repair, validate and correct a weekly plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trainer, err := a.readInput(args[0])
			if err != nil {
				return err
			}

			ctx, interrupt, stop := sighandler.WithInterrupt(cmd.Context(), func(sig os.Signal) {
				logging.Warn(fmt.Sprintf("Received %s, keeping the best plan so far", sig))
			})
			defer stop()

			gen, err := a.newGenerator()
			if err != nil {
				return err
			}
			if err := ai.CheckAvailability(ctx, gen); err != nil {
				return fmt.Errorf("generator unavailable: %w", err)
			}

			store := a.openHistory()
			if store != nil {
				defer store.Close()
			}
			prepared, err := a.prepare(ctx, trainer, store)
			if err != nil {
				return err
			}

			orch := &phases.Orchestrator{
				Generator:      gen,
				Validator:      validate.New(a.resolver, a.rules.Rules),
				Repairer:       repair.New(a.resolver),
				Prepared:       prepared,
				MaxCorrections: a.cfg.MaxCorrections,
				Timeout:        time.Duration(a.cfg.Timeout) * time.Second,
				Provider:       a.cfg.Provider,
				Model:          a.modelName(),
				InputHash:      state.HashText(trainer),
				OutputFile:     a.cfg.OutputFile,
				Out:            a.stderr,
			}
			if a.cfg.StateDir != "" {
				orch.State = state.NewManager(a.cfg.StateDir)
			}

			res := orch.Run(ctx)
			if interrupt.Interrupted() {
				logging.Debug(fmt.Sprintf("Stopped by %s", interrupt.Received()))
			}
			if res.ExitCode != exitcode.Error {
				if err := a.writePlan(res.Plan); err != nil {
					return err
				}
				if a.cfg.OutputFile != "" {
					logging.Success(fmt.Sprintf("Plan written to %s", a.cfg.OutputFile))
				}
			}
			return exitWith(res.ExitCode)
		},
	}
	cli.BindOutputFlag(cmd, a.flags)
	return cmd
}

func (a *app) modelName() string {
	if a.cfg.Provider == config.ProviderCommand {
		return ""
	}
	return a.cfg.Model
}

// newGenerator builds the configured backend wrapped in retry with backoff.
func (a *app) newGenerator() (ai.Generator, error) {
	var inner ai.Generator
	switch a.cfg.Provider {
	case config.ProviderCommand:
		g, err := ai.ParseCommand(a.cfg.Command)
		if err != nil {
			return nil, err
		}
		inner = g
	default:
		g, err := ai.NewOllamaGenerator(a.cfg.Model, prompt.SystemPrompt)
		if err != nil {
			return nil, err
		}
		inner = g
	}

	return &ai.RetryGenerator{
		Inner: inner,
		RetryCfg: ai.RetryConfig{
			MaxRetries: a.cfg.MaxRetry,
			BaseDelay:  time.Duration(a.cfg.RetryBaseDelay) * time.Second,
			OnRetry: func(attempt int, delay time.Duration, err error) {
				logging.Warn(fmt.Sprintf("Generator call failed (%v); retry %d in %s", err, attempt, delay))
			},
			OnRateLimit: func(err *ai.RateLimitError) {
				logging.Warn(fmt.Sprintf("Rate limited: %v", err))
			},
		},
	}, nil
}

// openHistory opens the configured store. History is advisory, so a store
// that cannot be opened is reported and skipped.
func (a *app) openHistory() *history.Store {
	if a.cfg.HistoryDSN == "" {
		return nil
	}
	store, err := history.Open(a.cfg.HistoryDSN, a.resolver)
	if err != nil {
		logging.Warn(fmt.Sprintf("History store unavailable: %v", err))
		return nil
	}
	return store
}

func (a *app) prepare(ctx context.Context, trainer string, store *history.Store) (*phases.Prepared, error) {
	pc := phases.PrepareConfig{
		Resolver:      a.resolver,
		Rules:         a.rules.Rules,
		HistoryLimit:  a.cfg.HistoryLimit,
		MaxPerSection: a.cfg.MaxExercisesPerSection,
	}
	if store != nil {
		pc.History = store
	}
	return phases.Prepare(ctx, pc, trainer)
}
