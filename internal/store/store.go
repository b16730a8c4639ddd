// Package store persists the board and XP total as a JSON file.
package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jaydenyuan326/todo/internal/task"
	"github.com/jaydenyuan326/todo/internal/tasklist"
)

// SchemaVersion is the on-disk format version.
const SchemaVersion = 1

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource("todo.schema.json", strings.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile("todo.schema.json")
	})
	return schema, schemaErr
}

// MalformedDataError reports corrupt or incomplete persisted data.
type MalformedDataError struct {
	Path string // JSON path to the offending field, if known
	Err  error
}

func (e *MalformedDataError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed data at %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed data: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedDataError) Unwrap() error {
	return e.Err
}

// fileData is the on-disk layout.
type fileData struct {
	SchemaVersion int        `json:"schema_version"`
	TotalXP       int        `json:"total_xp"`
	Tasks         []taskData `json:"tasks"`
}

type taskData struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
	XPAwarded   bool    `json:"xp_awarded"`
}

// Store reads and writes one data file.
type Store struct {
	Path string
}

// New returns a store for the given file path.
func New(path string) *Store {
	return &Store{Path: path}
}

// Exists reports whether the data file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads the data file and rebuilds the task list and XP total.
// A missing file is a fresh start: empty list, zero XP, no error.
// Corrupt contents fail with *MalformedDataError.
func (s *Store) Load() (*tasklist.List, int, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return tasklist.New(), 0, nil
		}
		return nil, 0, fmt.Errorf("read data file: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, 0, err
	}

	var f fileData
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, 0, &MalformedDataError{Err: err}
	}

	list := tasklist.New()
	for i, td := range f.Tasks {
		rec, err := decodeTask(td, fmt.Sprintf("tasks[%d]", i))
		if err != nil {
			return nil, 0, err
		}
		list.Append(rec)
	}
	return list, f.TotalXP, nil
}

// Save writes the snapshot and XP total with 2-space indentation.
func (s *Store) Save(records []task.Record, totalXP int) error {
	f := fileData{
		SchemaVersion: SchemaVersion,
		TotalXP:       totalXP,
		Tasks:         make([]taskData, 0, len(records)),
	}
	for _, rec := range records {
		f.Tasks = append(f.Tasks, encodeTask(rec))
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

func encodeTask(rec task.Record) taskData {
	td := taskData{
		ID:          rec.ID.String(),
		Description: rec.Description,
		Priority:    string(rec.Priority),
		Status:      string(rec.Column),
		XPAwarded:   rec.XPAwarded,
	}
	if rec.DueDate != nil {
		due := rec.DueDate.Format(task.DateLayout)
		td.DueDate = &due
	}
	return td
}

func decodeTask(td taskData, path string) (task.Record, error) {
	rec := task.Record{
		Description: td.Description,
		XPAwarded:   td.XPAwarded,
	}

	if td.Description == "" {
		return task.Record{}, &MalformedDataError{Path: path + ".description", Err: fmt.Errorf("must not be empty")}
	}

	pri := task.Priority(td.Priority)
	if !pri.Valid() {
		return task.Record{}, &MalformedDataError{Path: path + ".priority", Err: fmt.Errorf("invalid priority %q", td.Priority)}
	}
	rec.Priority = pri

	col := task.Column(td.Status)
	if !col.Valid() {
		return task.Record{}, &MalformedDataError{Path: path + ".status", Err: fmt.Errorf("invalid status %q", td.Status)}
	}
	rec.Column = col

	if td.DueDate != nil {
		due, err := task.ParseDueDate(*td.DueDate)
		if err != nil {
			return task.Record{}, &MalformedDataError{Path: path + ".due_date", Err: err}
		}
		rec.DueDate = due
	}

	if td.ID != "" {
		id, err := uuid.Parse(td.ID)
		if err != nil {
			return task.Record{}, &MalformedDataError{Path: path + ".id", Err: err}
		}
		rec.ID = id
	} else {
		// Data written before IDs existed; assign one.
		rec.ID = uuid.New()
	}

	return rec, nil
}

// validate checks raw file contents against the embedded JSON Schema.
func validate(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile data schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return &MalformedDataError{Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := leafCause(ve)
			return &MalformedDataError{
				Path: pointerToPath(leaf.InstanceLocation),
				Err:  fmt.Errorf("%s", leaf.Message),
			}
		}
		return &MalformedDataError{Err: err}
	}
	return nil
}

// leafCause walks to the deepest cause of a schema validation error.
func leafCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

// pointerToPath converts a JSON pointer like "/tasks/2/priority" into
// the dotted form "tasks[2].priority".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
