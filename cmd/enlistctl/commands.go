package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
	"github.com/noah-isme/student-enlistment-api/pkg/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "enlistctl",
		Short:         "Registrar tooling for the enlistment engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseScheduleCmd(), newConflictCmd(), newResolveCapCmd())
	return root
}

func newParseScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-schedule <schedule>",
		Short: "Show how a schedule string is read, including dropped clauses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := enlistment.ParseSchedule(args[0])
			out := cmd.OutOrStdout()
			if len(result.Intervals) == 0 {
				fmt.Fprintln(out, "no meetings")
			}
			for _, interval := range result.Intervals {
				fmt.Fprintf(out, "%s\t(%d-%d)\n", interval, interval.Start, interval.End)
			}
			for _, dropped := range result.Dropped {
				fmt.Fprintf(out, "dropped %q: %v\n", dropped.Clause, dropped.Reason)
			}
			return nil
		},
	}
}

func newConflictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflict <schedule> <schedule>",
		Short: "Report whether two schedule strings overlap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first := enlistment.ParseSchedule(args[0]).Intervals
			second := enlistment.ParseSchedule(args[1]).Intervals
			out := cmd.OutOrStdout()
			for _, a := range first {
				for _, b := range second {
					if days, ok := a.Overlap(b); ok {
						fmt.Fprintf(out, "conflict on %s: %s and %s\n", days, a, b)
						return nil
					}
				}
			}
			fmt.Fprintln(out, "no conflict")
			return nil
		},
	}
}

func newResolveCapCmd() *cobra.Command {
	var (
		yearLevel int
		semester  int
		status    string
		ceilings  string
	)
	cmd := &cobra.Command{
		Use:   "resolve-cap",
		Short: "Resolve a student's unit cap from the configured policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("ceilings") {
				ceilings = cfg.Enlistment.SeedCeilings
			}
			table, err := enlistment.ParseCeilings(ceilings)
			if err != nil {
				return err
			}
			term, err := enlistment.ParseSemester(semester)
			if err != nil {
				return err
			}
			standing, err := enlistment.ParseRegistrationStatus(status)
			if err != nil {
				return err
			}
			policy := enlistment.NewCapPolicy(cfg.Enlistment.IrregularCap, cfg.Enlistment.DefaultCeiling, table)
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", policy.Resolve(yearLevel, term, standing))
			return nil
		},
	}
	cmd.Flags().IntVar(&yearLevel, "year", 1, "year level")
	cmd.Flags().IntVar(&semester, "semester", 1, "semester (1 or 2)")
	cmd.Flags().StringVar(&status, "status", string(enlistment.StatusRegular), "registration status")
	cmd.Flags().StringVar(&ceilings, "ceilings", "", `ceiling table, e.g. "1:1=21,2:1=22" (defaults to ENLISTMENT_SEED_CEILINGS)`)
	return cmd
}
