package task

import (
	"errors"
	"testing"
)

func TestMoveToForward(t *testing.T) {
	rec := New("write report", PriorityHigh, nil)
	if rec.Column != ColumnTodo {
		t.Fatalf("new record column: got %s, want %s", rec.Column, ColumnTodo)
	}

	if err := rec.MoveTo(ColumnDoing); err != nil {
		t.Fatalf("todo -> doing failed: %v", err)
	}
	if err := rec.MoveTo(ColumnDone); err != nil {
		t.Fatalf("doing -> done failed: %v", err)
	}
	if rec.Column != ColumnDone {
		t.Errorf("column: got %s, want %s", rec.Column, ColumnDone)
	}
}

func TestMoveToSkipAhead(t *testing.T) {
	rec := New("quick fix", PriorityLow, nil)
	if err := rec.MoveTo(ColumnDone); err != nil {
		t.Fatalf("todo -> done failed: %v", err)
	}
}

func TestMoveToRejected(t *testing.T) {
	tests := []struct {
		name string
		from Column
		to   Column
	}{
		{"done to doing", ColumnDone, ColumnDoing},
		{"done to todo", ColumnDone, ColumnTodo},
		{"doing to todo", ColumnDoing, ColumnTodo},
		{"same column", ColumnDoing, ColumnDoing},
		{"unknown column", ColumnTodo, Column("archived")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := New("task", PriorityMedium, nil)
			rec.Column = tt.from
			err := rec.MoveTo(tt.to)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("MoveTo(%s): got %v, want ErrInvalidTransition", tt.to, err)
			}
			if rec.Column != tt.from {
				t.Errorf("column changed on rejected move: got %s, want %s", rec.Column, tt.from)
			}
		})
	}
}

func TestNextColumn(t *testing.T) {
	rec := New("task", PriorityMedium, nil)

	next, ok := rec.NextColumn()
	if !ok || next != ColumnDoing {
		t.Errorf("next of todo: got %s/%v, want doing/true", next, ok)
	}

	rec.Column = ColumnDoing
	next, ok = rec.NextColumn()
	if !ok || next != ColumnDone {
		t.Errorf("next of doing: got %s/%v, want done/true", next, ok)
	}

	rec.Column = ColumnDone
	if _, ok := rec.NextColumn(); ok {
		t.Error("next of done: got ok, want false")
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Errorf("priority order broken: high=%d medium=%d low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"high", PriorityHigh, false},
		{"HIGH", PriorityHigh, false},
		{" Medium ", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePriority(%q) error: got %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseDueDate(t *testing.T) {
	due, err := ParseDueDate("2025-11-20")
	if err != nil {
		t.Fatalf("ParseDueDate failed: %v", err)
	}
	if due == nil || due.Format(DateLayout) != "2025-11-20" {
		t.Errorf("ParseDueDate: got %v, want 2025-11-20", due)
	}

	due, err = ParseDueDate("  ")
	if err != nil || due != nil {
		t.Errorf("empty input: got %v/%v, want nil/nil", due, err)
	}

	if _, err := ParseDueDate("20-11-2025"); err == nil {
		t.Error("malformed date: got nil error")
	}
}
