package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/focus/internal/export"
)

func newExportCommand(opts *options) *cobra.Command {
	var (
		format string
		out    string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions and daily totals as CSV or JSON.",
		Long:  "export writes every session plus the last --days daily aggregates. Without --out the result goes to stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid format %q (expected csv|json)", format)
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := export.Collect(s, days)
			if err != nil {
				return err
			}

			if out == "" {
				if format == "csv" {
					return export.WriteCSV(cmd.OutOrStdout(), data)
				}
				return export.WriteJSON(cmd.OutOrStdout(), data)
			}

			if format == "csv" {
				err = export.ToCSV(data, out)
			} else {
				err = export.ToJSON(data, out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d sessions to %s\n", len(data.Sessions), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVar(&days, "days", 30, "Daily aggregates to include")
	return cmd
}
