package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/focus/internal/config"
	"github.com/sadopc/focus/internal/store"
)

type options struct {
	configPath string
}

func (o *options) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.DefaultPath()
}

// open loads the config file, opens the database it names, and overlays the
// persisted settings. A database created by this call is seeded from the
// config file first. The caller closes the store.
func (o *options) open() (*store.Store, config.Config, error) {
	path, err := o.resolveConfigPath()
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, cfg, err
	}
	if cfg.DBPath == "" {
		return nil, cfg, fmt.Errorf("no database path configured")
	}

	_, statErr := os.Stat(cfg.DBPath)
	fresh := errors.Is(statErr, os.ErrNotExist)

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, cfg, err
	}
	if fresh {
		if err := s.PutSettings(cfg.Settings()); err != nil {
			s.Close()
			return nil, cfg, err
		}
	}
	settings, err := s.Settings()
	if err != nil {
		s.Close()
		return nil, cfg, err
	}
	cfg.ApplySettings(settings)
	return s, cfg, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func parseDateFlag(dateFlag string) (string, error) {
	if dateFlag == "" {
		return "", nil
	}
	if _, err := time.ParseInLocation(store.DateLayout, dateFlag, time.Local); err != nil {
		return "", fmt.Errorf("parse date: %w", err)
	}
	return dateFlag, nil
}

func formatTask(t store.Task) string {
	status := "todo"
	if t.Completed {
		status = "done"
	}

	builder := strings.Builder{}
	builder.Grow(32 + len(t.Name))

	builder.WriteString("#")
	builder.WriteString(strconv.FormatInt(t.ID, 10))
	builder.WriteString(" [")
	builder.WriteString(status)
	builder.WriteString("] ")
	builder.WriteString(t.Name)

	if t.TotalFocusSeconds > 0 {
		builder.WriteString(" (")
		builder.WriteString(formatMinutes(t.TotalFocusSeconds))
		builder.WriteString(")")
	}

	return builder.String()
}

func formatMinutes(secs int64) string {
	return fmt.Sprintf("%dm", secs/60)
}

func printTasks(cmd *cobra.Command, tasks []store.Task) {
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "(no tasks)")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(out, formatTask(t))
	}
}
