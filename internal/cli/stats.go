package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/focus/internal/report"
)

func newStatsCommand(opts *options) *cobra.Command {
	var (
		days     int
		markdown bool
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show daily focus totals for the last days.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			sum, err := report.Load(s, days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case markdown && raw:
				fmt.Fprint(out, sum.Markdown())
			case markdown:
				fmt.Fprintln(out, report.Render(sum.Markdown()))
			default:
				fmt.Fprint(out, sum.Text())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days ending today")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render a markdown report")
	cmd.Flags().BoolVar(&raw, "raw", false, "With --markdown, print the markdown source unstyled")
	return cmd
}

func newGoalCommand(opts *options) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show the daily goal for today or a specific date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(dateFlag)
			if err != nil {
				return err
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			g, err := s.GetDailyGoal(date)
			if err != nil {
				return err
			}
			status := ""
			if g.Achieved() {
				status = " achieved"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d min (%.0f%%)%s\n",
				g.Date, g.AchievedMinutes, g.TargetMinutes, g.Progress()*100, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.AddCommand(newGoalSetCommand(opts))
	return cmd
}

func newGoalSetCommand(opts *options) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "set MINUTES",
		Short: "Set the goal target. Also becomes the default for days without one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[0])
			}
			date, err := parseDateFlag(dateFlag)
			if err != nil {
				return err
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetGoalTarget(minutes, date); err != nil {
				return err
			}
			g, err := s.GetDailyGoal(date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal for %s set to %d min\n", g.Date, g.TargetMinutes)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	return cmd
}

func newStreakCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show consecutive days with the goal met.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.Streak()
			if err != nil {
				return err
			}
			unit := "days"
			if n == 1 {
				unit = "day"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", n, unit)
			return nil
		},
	}
}
