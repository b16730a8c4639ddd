package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jaydenyuan326/todo/internal/task"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("62"))

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	selectedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	priorityColors = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TODO MASTER"))
	b.WriteString("  ")
	b.WriteString(fmt.Sprintf("Level %d | XP %d", m.ledger.Level(), m.ledger.TotalXP))
	b.WriteString("  ")
	if m.timer.Running() {
		b.WriteString(statusStyle.Render("Focus " + m.timer.Clock()))
	} else {
		b.WriteString(dimStyle.Render("Focus " + m.timer.Clock() + " (f to start)"))
	}
	b.WriteString("\n\n")

	if m.alertLine != "" {
		b.WriteString(alertStyle.Render(m.alertLine))
		b.WriteString("\n\n")
	}

	if m.adding {
		m.viewAddForm(&b)
	} else {
		m.viewColumns(&b)
	}

	if m.statusLine != "" {
		b.WriteString(statusStyle.Render(m.statusLine))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewColumns(b *strings.Builder) {
	cols := m.columnHandles()
	width := m.columnWidth()

	rendered := make([]string, 0, 3)
	for i, col := range task.Columns() {
		var cb strings.Builder
		cb.WriteString(columnTitleStyle.Render(fmt.Sprintf("%s (%d)", col.Title(), len(cols[col]))))
		cb.WriteString("\n")

		for j, h := range cols[col] {
			rec, err := m.list.Record(h)
			if err != nil {
				continue
			}
			line := m.renderCard(rec, width)
			if i == m.focus && j == m.cursor {
				line = selectedCardStyle.Render(line)
			}
			cb.WriteString(line)
			cb.WriteString("\n")
		}
		if len(cols[col]) == 0 {
			cb.WriteString(dimStyle.Render("(empty)"))
			cb.WriteString("\n")
		}

		style := columnStyle
		if i == m.focus {
			style = focusedColumnStyle
		}
		rendered = append(rendered, style.Width(width).Render(cb.String()))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
}

func (m *Model) renderCard(rec task.Record, width int) string {
	meta := ""
	if rec.DueDate != nil {
		meta = " @" + rec.DueString()
	}

	// Truncate the plain description before styling so escape codes
	// are never cut mid-sequence. The badge occupies 4 cells.
	desc := rec.Description
	avail := width - 4 - len(meta)
	if avail < 8 {
		avail = 8
	}
	if runes := []rune(desc); len(runes) > avail {
		desc = string(runes[:avail-1]) + "…"
	}

	badge := priorityColors[rec.Priority].Render("[" + strings.ToUpper(string(rec.Priority[0])) + "]")
	return badge + " " + desc + dimStyle.Render(meta)
}

func (m *Model) viewAddForm(b *strings.Builder) {
	b.WriteString(columnTitleStyle.Render("New Task"))
	b.WriteString("\n\n")
	b.WriteString("Description: " + m.descInput.View() + "\n")
	b.WriteString("Due date:    " + m.dateInput.View() + "\n")
	b.WriteString("Priority:    " + priorityColors[priorityChoices[m.priIdx]].Render(string(priorityChoices[m.priIdx])) + dimStyle.Render("  (ctrl+p to cycle)"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter save | tab switch field | esc cancel"))
	b.WriteString("\n\n")
}

func (m *Model) helpLine() string {
	if m.adding {
		return ""
	}
	return "←/→ column | ↑/↓ card | enter advance | a add | x delete | p/d sort | f focus | q quit"
}

func (m *Model) columnWidth() int {
	if m.width <= 0 {
		return 34
	}
	w := m.width/3 - 4
	if w < 20 {
		w = 20
	}
	return w
}
