package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/workout-forge/internal/history"
	"github.com/CodexForgeBR/workout-forge/internal/logging"
	"github.com/CodexForgeBR/workout-forge/internal/progression"
)

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Record or inspect training logs",
	}
	cmd.AddCommand(a.historyAddCmd(), a.historyShowCmd())
	return cmd
}

func (a *app) historyAddCmd() *cobra.Command {
	var rec history.Record
	var rpe float64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append one training log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("rpe") {
				rec.RPE = &rpe
			}
			store, err := history.Open(a.cfg.HistoryDSN, a.resolver)
			if err != nil {
				return err
			}
			defer store.Close()

			saved, err := store.Append(cmd.Context(), rec)
			if err != nil {
				return err
			}
			logging.Success(fmt.Sprintf("Logged %s (%s)", a.resolver.CanonicalName(saved.Exercise), saved.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&rec.Exercise, "exercise", "", "Exercise name")
	cmd.Flags().StringVar(&rec.Day, "day", "", "Training day")
	cmd.Flags().StringVar(&rec.Log, "log", "", "What was done, e.g. \"3 x 12 @ 16 kg, felt easy\"")
	cmd.Flags().StringVar(&rec.Label, "label", "", "Session label (defaults to the date)")
	cmd.Flags().Float64Var(&rpe, "rpe", 0, "Reported RPE (1-10)")
	_ = cmd.MarkFlagRequired("exercise")
	_ = cmd.MarkFlagRequired("log")
	return cmd
}

func (a *app) historyShowCmd() *cobra.Command {
	var asJSON bool
	var limit int
	cmd := &cobra.Command{
		Use:   "show <exercise>",
		Short: "Show recent logs and the progression signal for an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = a.cfg.HistoryLimit
			}
			store, err := history.Open(a.cfg.HistoryDSN, a.resolver)
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.Recent(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if asJSON {
				if recs == nil {
					recs = []history.Record{}
				}
				return a.encode(recs, false)
			}
			if len(recs) == 0 {
				logging.Info(fmt.Sprintf("No logs for %s", a.resolver.CanonicalName(args[0])))
				return nil
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tDAY\tLABEL\tRPE\tLOG")
			logs := make([]progression.Log, len(recs))
			for i, r := range recs {
				logs[i] = r.ProgressionLog()
				rpe := "-"
				if r.RPE != nil {
					rpe = strings.TrimSuffix(fmt.Sprintf("%.1f", *r.RPE), ".0")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.CreatedAt.Format("2006-01-02"), r.Day, r.Label, rpe, r.Log)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if d, ok := progression.Build(a.resolver, recs[0].Day, args[0], logs); ok {
				fmt.Fprint(a.stdout, "\n"+progression.FormatDirectives([]progression.Directive{d}))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of logs to show (default HISTORY_LIMIT)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}
