package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Sessions   []jsonEntry `json:"sessions"`
	Daily      []jsonDay   `json:"daily"`
}

type jsonEntry struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Task        string `json:"task,omitempty"`
	TaskID      *int64 `json:"task_id,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time,omitempty"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
	Completed   bool   `json:"completed"`
}

type jsonDay struct {
	Date              string `json:"date"`
	FocusSeconds      int64  `json:"focus_seconds"`
	SessionsCompleted int    `json:"sessions_completed"`
	TasksCompleted    int    `json:"tasks_completed"`
}

func ToJSON(data Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()
	if err := WriteJSON(f, data); err != nil {
		return err
	}
	return f.Close()
}

// WriteJSON writes sessions and daily aggregates as one indented document.
func WriteJSON(out io.Writer, data Data) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(data.Sessions),
		Sessions:   []jsonEntry{},
		Daily:      []jsonDay{},
	}

	for _, s := range data.Sessions {
		endStr := ""
		if s.EndTime != nil {
			endStr = s.EndTime.Local().Format(time.RFC3339)
		}
		export.Sessions = append(export.Sessions, jsonEntry{
			ID:          s.ID,
			Kind:        string(s.Kind),
			Task:        data.taskName(s.TaskID),
			TaskID:      s.TaskID,
			StartTime:   s.StartTime.Local().Format(time.RFC3339),
			EndTime:     endStr,
			DurationSec: s.DurationSeconds,
			Duration:    formatDuration(s.DurationSeconds),
			Completed:   s.Completed,
		})
	}

	for _, d := range data.Days {
		export.Daily = append(export.Daily, jsonDay{
			Date:              d.Date,
			FocusSeconds:      d.TotalFocusSeconds,
			SessionsCompleted: d.SessionsCompleted,
			TasksCompleted:    d.TasksCompleted,
		})
	}

	enc, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := out.Write(append(enc, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
