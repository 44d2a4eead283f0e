package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTaskCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task list.",
	}

	cmd.AddCommand(
		newTaskAddCommand(opts),
		newTaskListCommand(opts),
		newTaskDoneCommand(opts),
		newTaskUndoCommand(opts),
		newTaskRenameCommand(opts),
		newTaskRemoveCommand(opts),
		newTaskTimeCommand(opts),
	)
	return cmd
}

func newTaskAddCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME ...",
		Short: "Create a task.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			task, err := s.CreateTask(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatTask(*task))
			return nil
		},
	}
}

func newTaskListCommand(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.ListTasks(all)
			if err != nil {
				return err
			}
			printTasks(cmd, tasks)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")
	return cmd
}

func newTaskDoneCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed and count it for today.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.CompleteTask(id); err != nil {
				return err
			}
			task, err := s.GetTask(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", formatTask(*task))
			return nil
		},
	}
}

func newTaskUndoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "undo ID",
		Short: "Reopen a completed task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.UncompleteTask(id); err != nil {
				return err
			}
			task, err := s.GetTask(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s\n", formatTask(*task))
			return nil
		},
	}
}

func newTaskRenameCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME ...",
		Short: "Rename a task.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.RenameTask(id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			task, err := s.GetTask(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s\n", formatTask(*task))
			return nil
		},
	}
}

func newTaskRemoveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task and its sessions.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteTask(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
			return nil
		},
	}
}

func newTaskTimeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "time ID MINUTES",
		Short: "Adjust a task's focus total by MINUTES (may be negative).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[1])
			}
			s, _, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.AddFocusTime(id, int64(minutes)*60); err != nil {
				return err
			}
			task, err := s.GetTask(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatTask(*task))
			return nil
		},
	}
}
