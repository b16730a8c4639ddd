package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jaydenyuan326/todo/internal/task"
)

func date(s string) *time.Time {
	t, err := time.Parse(task.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_data.json")
	st := New(path)

	done := task.New("ship release", task.PriorityHigh, date("2024-06-30"))
	done.Column = task.ColumnDone
	done.XPAwarded = true

	doing := task.New("write tests", task.PriorityMedium, nil)
	doing.Column = task.ColumnDoing

	records := []task.Record{
		done,
		doing,
		task.New("clean desk", task.PriorityLow, date("2024-07-15")),
	}

	if err := st.Save(records, 170); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	list, totalXP, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if totalXP != 170 {
		t.Errorf("total XP: got %d, want 170", totalXP)
	}

	loaded := list.Snapshot()
	if len(loaded) != len(records) {
		t.Fatalf("task count: got %d, want %d", len(loaded), len(records))
	}
	for i, want := range records {
		got := loaded[i]
		if got.ID != want.ID {
			t.Errorf("task %d ID: got %s, want %s", i, got.ID, want.ID)
		}
		if got.Description != want.Description {
			t.Errorf("task %d description: got %q, want %q", i, got.Description, want.Description)
		}
		if got.Priority != want.Priority {
			t.Errorf("task %d priority: got %s, want %s", i, got.Priority, want.Priority)
		}
		if got.Column != want.Column {
			t.Errorf("task %d column: got %s, want %s", i, got.Column, want.Column)
		}
		if got.XPAwarded != want.XPAwarded {
			t.Errorf("task %d xp awarded: got %v, want %v", i, got.XPAwarded, want.XPAwarded)
		}
		switch {
		case (got.DueDate == nil) != (want.DueDate == nil):
			t.Errorf("task %d due date presence: got %v, want %v", i, got.DueDate, want.DueDate)
		case got.DueDate != nil && !got.DueDate.Equal(*want.DueDate):
			t.Errorf("task %d due date: got %s, want %s", i, got.DueDate, want.DueDate)
		}
	}
}

func TestLoadMissingFileIsFreshStart(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent.json"))
	list, totalXP, err := st.Load()
	if err != nil {
		t.Fatalf("load of missing file failed: %v", err)
	}
	if list.Len() != 0 || totalXP != 0 {
		t.Errorf("fresh start: got %d tasks, %d XP", list.Len(), totalXP)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"total_xp": 5,`},
		{"negative xp", `{"schema_version": 1, "total_xp": -5, "tasks": []}`},
		{"missing tasks", `{"schema_version": 1, "total_xp": 0}`},
		{"wrong schema version", `{"schema_version": 9, "total_xp": 0, "tasks": []}`},
		{"bad priority", `{"schema_version": 1, "total_xp": 0, "tasks": [{"description": "x", "priority": "urgent", "due_date": null, "status": "todo", "xp_awarded": false}]}`},
		{"empty description", `{"schema_version": 1, "total_xp": 0, "tasks": [{"description": "", "priority": "low", "due_date": null, "status": "todo", "xp_awarded": false}]}`},
		{"bad status", `{"schema_version": 1, "total_xp": 0, "tasks": [{"description": "x", "priority": "low", "due_date": null, "status": "archived", "xp_awarded": false}]}`},
		{"bad due date", `{"schema_version": 1, "total_xp": 0, "tasks": [{"description": "x", "priority": "low", "due_date": "soon", "status": "todo", "xp_awarded": false}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todo_data.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}

			_, _, err := New(path).Load()
			var malformed *MalformedDataError
			if !errors.As(err, &malformed) {
				t.Errorf("got %v, want *MalformedDataError", err)
			}
		})
	}
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_data.json")
	data := `{"schema_version": 1, "total_xp": 0, "tasks": [{"description": "old task", "priority": "low", "due_date": null, "status": "todo", "xp_awarded": false}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	list, _, err := New(path).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	snap := list.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("task count: got %d, want 1", len(snap))
	}
	if snap[0].ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("missing ID was not assigned")
	}
}

func TestMalformedDataErrorPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_data.json")
	data := `{"schema_version": 1, "total_xp": 0, "tasks": [{"description": "x", "priority": "urgent", "due_date": null, "status": "todo", "xp_awarded": false}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := New(path).Load()
	var malformed *MalformedDataError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want *MalformedDataError", err)
	}
	if malformed.Path == "" {
		t.Error("error path is empty, want a JSON path")
	}
}
