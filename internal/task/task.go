// Package task defines the task record and its board enums.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransition reports an attempt to move a task backward (or
// sideways) on the board. Columns only advance.
var ErrInvalidTransition = errors.New("invalid column transition")

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the numeric urgency of p. Higher means more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ParsePriority converts user input into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q, must be one of: high, medium, low", s)
	}
	return p, nil
}

// Column is a stage on the kanban board.
type Column string

const (
	ColumnTodo  Column = "todo"
	ColumnDoing Column = "doing"
	ColumnDone  Column = "done"
)

// stage returns the position of c in the workflow, starting at 1.
func (c Column) stage() int {
	switch c {
	case ColumnTodo:
		return 1
	case ColumnDoing:
		return 2
	case ColumnDone:
		return 3
	}
	return 0
}

// Valid reports whether c is one of the known columns.
func (c Column) Valid() bool {
	return c.stage() > 0
}

// Title returns the column's display name.
func (c Column) Title() string {
	switch c {
	case ColumnTodo:
		return "To Do"
	case ColumnDoing:
		return "In Progress"
	case ColumnDone:
		return "Done"
	}
	return string(c)
}

// Columns lists the board columns in workflow order.
func Columns() []Column {
	return []Column{ColumnTodo, ColumnDoing, ColumnDone}
}

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// Record is one task on the board.
type Record struct {
	ID          uuid.UUID
	Description string
	Priority    Priority
	DueDate     *time.Time // nil means no deadline
	Column      Column
	XPAwarded   bool
}

// New creates a record in the To Do column.
func New(description string, priority Priority, due *time.Time) Record {
	return Record{
		ID:          uuid.New(),
		Description: description,
		Priority:    priority,
		DueDate:     due,
		Column:      ColumnTodo,
	}
}

// MoveTo advances the record to col. Moves must go forward in the
// workflow; anything else fails with ErrInvalidTransition.
func (r *Record) MoveTo(col Column) error {
	if !col.Valid() {
		return fmt.Errorf("%w: unknown column %q", ErrInvalidTransition, col)
	}
	if col.stage() <= r.Column.stage() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Column, col)
	}
	r.Column = col
	return nil
}

// NextColumn returns the column after the record's current one, or
// false if the record is already Done.
func (r Record) NextColumn() (Column, bool) {
	switch r.Column {
	case ColumnTodo:
		return ColumnDoing, true
	case ColumnDoing:
		return ColumnDone, true
	}
	return "", false
}

// DueString formats the due date for display, or "no date".
func (r Record) DueString() string {
	if r.DueDate == nil {
		return "no date"
	}
	return r.DueDate.Format(DateLayout)
}

// ParseDueDate converts a YYYY-MM-DD string into a due date. Empty
// input means no deadline.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}
