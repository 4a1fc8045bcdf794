package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/workout-forge/internal/cli"
	"github.com/CodexForgeBR/workout-forge/internal/config"
	"github.com/CodexForgeBR/workout-forge/internal/exitcode"
	"github.com/CodexForgeBR/workout-forge/internal/identity"
	"github.com/CodexForgeBR/workout-forge/internal/logging"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	os.Exit(a.execute(os.Args[1:]))
}

// app carries the loaded configuration between cobra hooks and commands.
type app struct {
	flags    *config.Config // bound to flags
	cfg      *config.Config // merged with config files
	rules    *config.ProgramRules
	resolver *identity.Resolver

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// exitError carries a non-zero exit code out of a command without printing
// anything more.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit %d (%s)", e.code, exitcode.Name(e.code))
}

func exitWith(code int) error {
	if code == exitcode.Success {
		return nil
	}
	return &exitError{code: code}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		flags:  config.NewDefaultConfig(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

func (a *app) execute(args []string) int {
	// Data goes to stdout; logs and banners go to stderr.
	logging.SetOutput(a.stderr, a.stderr)

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.Execute()
	if cerr := logging.Close(); cerr != nil {
		fmt.Fprintln(a.stderr, cerr)
	}

	var ee *exitError
	switch {
	case errors.As(err, &ee):
		return ee.code
	case err != nil:
		logging.Error(err.Error())
		return exitcode.Error
	}
	return exitcode.Success
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "workout-forge",
		Short:   "Weekly training plans from trainer notes, checked and repaired",
		Long:    "workout-forge compiles a trainer's weekly template, has a model write the plan, then validates and repairs it deterministically.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindFlags(root, a.flags)
	cli.SetCustomHelp(root)

	root.AddCommand(
		a.parseCmd(),
		a.compileCmd(),
		a.validateCmd(),
		a.repairCmd(),
		a.generateCmd(),
		a.historyCmd(),
	)
	return root
}

// load merges config files under the flags, validates the result and
// builds the rules and resolver every command shares.
func (a *app) load(cmd *cobra.Command) error {
	global, project := cli.ConfigPaths()
	cfg, err := config.LoadWithPrecedence(global, project, a.flags.ConfigFile, cli.BuildOverrides(cmd))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ConfigFile = a.flags.ConfigFile
	cfg.OutputFile = a.flags.OutputFile
	if err := cli.ValidateFlags(cmd, cfg); err != nil {
		return err
	}
	a.cfg = cfg

	logging.SetVerbose(cfg.Verbose)
	if cfg.LogFile != "" {
		logging.OpenFile(cfg.LogFile)
	}

	rules, err := config.FindRules(cfg.RulesFile)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	a.rules = rules
	a.resolver = rules.Resolver()
	return nil
}
