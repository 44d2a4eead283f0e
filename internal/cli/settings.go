package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/focus/internal/config"
)

func newSettingsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "List persisted settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			all, err := s.GetAllSettings()
			if err != nil {
				return err
			}
			for _, st := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", st.Key, st.Value)
			}
			return nil
		},
	}

	cmd.AddCommand(newSettingsGetCommand(opts), newSettingsSetCommand(opts))
	return cmd
}

func newSettingsGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one setting.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			v, err := s.GetSetting(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newSettingsSetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Validate and store a setting.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, err := config.ParseSetting(key, args[1])
			if err != nil {
				return err
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if key == config.KeyDailyGoalMinutes {
				// Today's target follows the new default.
				minutes, _ := strconv.Atoi(value)
				err = s.SetGoalTarget(minutes, "")
			} else {
				err = s.SetSetting(key, value)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
			return nil
		},
	}
}

func newConfigCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show where focus keeps its files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", path)
			fmt.Fprintf(out, "db:     %s\n", cfg.DBPath)
			fmt.Fprintf(out, "log:    %s\n", cfg.LogPath)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write config.yaml with the current values.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})
	return cmd
}
