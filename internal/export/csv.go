package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/focus/internal/store"
)

// Source is the read side of the store an export needs.
type Source interface {
	ListSessions(f store.SessionFilter) ([]store.Session, error)
	ListTasks(includeCompleted bool) ([]store.Task, error)
	DailyAggregates(days int) ([]store.DailyAggregate, error)
}

// Data is the content of one export.
type Data struct {
	Sessions []store.Session
	Tasks    map[int64]*store.Task
	Days     []store.DailyAggregate
}

// Collect loads every session, every task, and the last days aggregates.
func Collect(src Source, days int) (Data, error) {
	sessions, err := src.ListSessions(store.SessionFilter{})
	if err != nil {
		return Data{}, fmt.Errorf("collect sessions: %w", err)
	}
	tasks, err := src.ListTasks(true)
	if err != nil {
		return Data{}, fmt.Errorf("collect tasks: %w", err)
	}
	aggs, err := src.DailyAggregates(days)
	if err != nil {
		return Data{}, fmt.Errorf("collect aggregates: %w", err)
	}

	byID := make(map[int64]*store.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}
	return Data{Sessions: sessions, Tasks: byID, Days: aggs}, nil
}

func (d Data) taskName(id *int64) string {
	if id == nil {
		return ""
	}
	if t, ok := d.Tasks[*id]; ok {
		return t.Name
	}
	return "Unknown"
}

func ToCSV(data Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, data)
}

// WriteCSV writes one row per session.
func WriteCSV(out io.Writer, data Data) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"ID", "Kind", "Task", "Start", "End", "Duration (s)", "Duration", "Completed"}); err != nil {
		return err
	}

	for _, s := range data.Sessions {
		endStr := ""
		if s.EndTime != nil {
			endStr = s.EndTime.Local().Format(time.RFC3339)
		}
		row := []string{
			strconv.FormatInt(s.ID, 10),
			string(s.Kind),
			data.taskName(s.TaskID),
			s.StartTime.Local().Format(time.RFC3339),
			endStr,
			strconv.FormatInt(s.DurationSeconds, 10),
			formatDuration(s.DurationSeconds),
			strconv.FormatBool(s.Completed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
