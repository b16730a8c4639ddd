// Package ui implements the kanban board terminal interface.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jaydenyuan326/todo/internal/config"
	"github.com/jaydenyuan326/todo/internal/notify"
	"github.com/jaydenyuan326/todo/internal/pomodoro"
	"github.com/jaydenyuan326/todo/internal/reward"
	"github.com/jaydenyuan326/todo/internal/task"
	"github.com/jaydenyuan326/todo/internal/tasklist"
)

// Run starts the board TUI and blocks until the user quits or ctx is
// cancelled. All list mutation happens inside the bubbletea update
// loop; the scanner only ever sees snapshots.
func Run(ctx context.Context, cfg *config.Config, list *tasklist.List, ledger *reward.Ledger, scanner *notify.Scanner, logger *log.Logger) error {
	model := newModel(cfg, list, ledger, scanner, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tickMsg time.Time

type alertMsg struct {
	alert notify.Alert
}

// Model is the board's bubbletea model.
type Model struct {
	cfg     *config.Config
	list    *tasklist.List
	ledger  *reward.Ledger
	scanner *notify.Scanner
	timer   *pomodoro.Timer
	logger  *log.Logger

	focus  int // focused column index
	cursor int // selected card in the focused column

	adding     bool
	descInput  textinput.Model
	dateInput  textinput.Model
	inputFocus int
	priIdx     int

	alertLine  string
	statusLine string

	width  int
	height int
}

var priorityChoices = []task.Priority{task.PriorityHigh, task.PriorityMedium, task.PriorityLow}

func newModel(cfg *config.Config, list *tasklist.List, ledger *reward.Ledger, scanner *notify.Scanner, logger *log.Logger) *Model {
	desc := textinput.New()
	desc.Placeholder = "Task description..."
	desc.CharLimit = 120
	desc.Width = 40

	date := textinput.New()
	date.Placeholder = "2025-11-20 (optional)"
	date.CharLimit = 10
	date.Width = 40

	return &Model{
		cfg:       cfg,
		list:      list,
		ledger:    ledger,
		scanner:   scanner,
		timer:     pomodoro.New(cfg.PomodoroDuration()),
		logger:    logger,
		descInput: desc,
		dateInput: date,
		priIdx:    1, // medium, the original app's default
	}
}

func (m *Model) Init() tea.Cmd {
	m.scanner.Update(m.list.Snapshot())
	return tea.Batch(tickCmd(), waitForAlert(m.scanner.Alerts()))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForAlert(ch <-chan notify.Alert) tea.Cmd {
	return func() tea.Msg {
		alert, ok := <-ch
		if !ok {
			return nil
		}
		return alertMsg{alert: alert}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case alertMsg:
		a := msg.alert
		if a.Overdue {
			m.alertLine = fmt.Sprintf("OVERDUE: %s (was due %s)", a.Description, a.DueDate.Format(task.DateLayout))
		} else {
			m.alertLine = fmt.Sprintf("DUE TODAY: %s", a.Description)
		}
		return m, waitForAlert(m.scanner.Alerts())

	case tickMsg:
		if m.timer.Tick(time.Second) {
			m.ledger.AddBonus(reward.FocusBonusXP)
			m.statusLine = fmt.Sprintf("Focus session complete, +%d XP", reward.FocusBonusXP)
			if m.logger != nil {
				m.logger.Info("focus session complete", "bonus", reward.FocusBonusXP)
			}
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if m.adding {
			return m.updateAddForm(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "left", "h":
		if m.focus > 0 {
			m.focus--
			m.clampCursor()
		}
	case "right", "l":
		if m.focus < len(task.Columns())-1 {
			m.focus++
			m.clampCursor()
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()

	case "a":
		m.openAddForm()

	case "enter", " ":
		m.advanceSelected()

	case "x", "delete":
		m.deleteSelected()

	case "p":
		m.list.Sort(tasklist.ByPriority(tasklist.Ascending))
		m.afterMutation()
		m.statusLine = "Sorted by priority, high first"
	case "d":
		m.list.Sort(tasklist.ByDueDate(tasklist.Ascending))
		m.afterMutation()
		m.statusLine = "Sorted by due date, soonest first"

	case "f":
		if m.timer.Start() {
			m.statusLine = "Focus session started"
		}
	}
	return m, nil
}

func (m *Model) updateAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		return m, nil

	case "tab", "shift+tab":
		m.inputFocus = 1 - m.inputFocus
		if m.inputFocus == 0 {
			m.descInput.Focus()
			m.dateInput.Blur()
		} else {
			m.dateInput.Focus()
			m.descInput.Blur()
		}
		return m, nil

	case "ctrl+p":
		m.priIdx = (m.priIdx + 1) % len(priorityChoices)
		return m, nil

	case "enter":
		m.submitAddForm()
		return m, nil
	}

	var cmd tea.Cmd
	if m.inputFocus == 0 {
		m.descInput, cmd = m.descInput.Update(msg)
	} else {
		m.dateInput, cmd = m.dateInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) openAddForm() {
	m.adding = true
	m.inputFocus = 0
	m.descInput.SetValue("")
	m.dateInput.SetValue("")
	m.descInput.Focus()
	m.dateInput.Blur()
}

func (m *Model) submitAddForm() {
	desc := m.descInput.Value()
	if desc == "" {
		m.statusLine = "Description must not be empty"
		return
	}
	due, err := task.ParseDueDate(m.dateInput.Value())
	if err != nil {
		m.statusLine = err.Error()
		return
	}

	rec := task.New(desc, priorityChoices[m.priIdx], due)
	m.list.Append(rec)
	m.afterMutation()
	m.adding = false
	m.statusLine = fmt.Sprintf("Added %q", desc)
	if m.logger != nil {
		m.logger.Debug("task added", "task", desc, "priority", rec.Priority)
	}
}

// advanceSelected moves the selected task one column forward; entering
// Done credits its XP.
func (m *Model) advanceSelected() {
	h, ok := m.selected()
	if !ok {
		return
	}
	rec, err := m.list.Record(h)
	if err != nil {
		m.statusLine = err.Error()
		return
	}
	next, ok := rec.NextColumn()
	if !ok {
		m.statusLine = "Task is already done"
		return
	}
	if err := m.list.MoveColumn(h, next); err != nil {
		m.statusLine = err.Error()
		return
	}

	if next == task.ColumnDone {
		var delta int
		var awardErr error
		if err := m.list.Update(h, func(r *task.Record) {
			delta, awardErr = m.ledger.Award(r)
		}); err != nil {
			m.statusLine = err.Error()
		} else if awardErr != nil {
			m.statusLine = awardErr.Error()
		} else {
			m.statusLine = fmt.Sprintf("Completed %q, +%d XP", rec.Description, delta)
		}
	} else {
		m.statusLine = fmt.Sprintf("Started %q", rec.Description)
	}
	m.afterMutation()
	m.clampCursor()
}

// deleteSelected removes the selected task. Only Done tasks can be
// deleted, matching the board's card actions.
func (m *Model) deleteSelected() {
	if task.Columns()[m.focus] != task.ColumnDone {
		m.statusLine = "Only done tasks can be deleted"
		return
	}
	h, ok := m.selected()
	if !ok {
		return
	}
	rec, err := m.list.Remove(h)
	if err != nil {
		m.statusLine = err.Error()
		return
	}
	m.afterMutation()
	m.clampCursor()
	m.statusLine = fmt.Sprintf("Deleted %q", rec.Description)
}

// afterMutation hands the scanner a fresh snapshot.
func (m *Model) afterMutation() {
	m.scanner.Update(m.list.Snapshot())
}

// columnHandles groups live handles by board column, in link order.
func (m *Model) columnHandles() map[task.Column][]tasklist.Handle {
	cols := make(map[task.Column][]tasklist.Handle, 3)
	for h, rec := range m.list.Forward() {
		cols[rec.Column] = append(cols[rec.Column], h)
	}
	return cols
}

// selected returns the handle under the cursor.
func (m *Model) selected() (tasklist.Handle, bool) {
	col := task.Columns()[m.focus]
	handles := m.columnHandles()[col]
	if m.cursor < 0 || m.cursor >= len(handles) {
		return tasklist.Handle{}, false
	}
	return handles[m.cursor], true
}

func (m *Model) clampCursor() {
	col := task.Columns()[m.focus]
	n := len(m.columnHandles()[col])
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
