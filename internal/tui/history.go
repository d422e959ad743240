package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"proteinflip/internal/domain"
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// loadMonth shows the month containing day and puts the cursor on it.
func (m *Model) loadMonth(day string) {
	month, err := m.calendar.Month(day)
	if err != nil {
		m.log.Warn("month unavailable", zap.String("day", day), zap.Error(err))
		return
	}
	m.month = month
	m.cursor = 0
	for i, d := range month.Days {
		if d.Day == day {
			m.cursor = i
			break
		}
	}
}

func (m Model) selectedDay() string {
	if m.cursor < 0 || m.cursor >= len(m.month.Days) {
		return m.ledger.Today()
	}
	return m.month.Days[m.cursor].Day
}

// shiftMonth moves by delta months, keeping the day of month where possible.
func (m *Model) shiftMonth(delta int) {
	ref := m.month.Next
	if delta < 0 {
		ref = m.month.Prev
	}
	dom := m.cursor + 1
	m.loadMonth(ref)
	m.cursor = clamp(dom-1, 0, len(m.month.Days)-1)
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateEdit(msg)
	}
	m.notice = ""
	last := len(m.month.Days) - 1
	switch msg.String() {
	case "esc", "q":
		return m.goTo(screenHome)
	case "g":
		return m.goTo(screenGoals)
	case "left":
		m.cursor = clamp(m.cursor-1, 0, last)
	case "right":
		m.cursor = clamp(m.cursor+1, 0, last)
	case "up":
		m.cursor = clamp(m.cursor-7, 0, last)
	case "down":
		m.cursor = clamp(m.cursor+7, 0, last)
	case "[", "p":
		m.shiftMonth(-1)
	case "]", "n":
		m.shiftMonth(1)
	case "enter", "e":
		if last < 0 {
			break
		}
		m.editing = true
		m.editInput.SetValue(strconv.Itoa(m.month.Days[m.cursor].Amount))
		m.editInput.CursorEnd()
		return m, m.editInput.Focus()
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editInput.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.editInput.Blur()
		day := m.selectedDay()
		grams, err := strconv.Atoi(strings.TrimSpace(m.editInput.Value()))
		if err != nil {
			// Not a number: leave the day as it was.
			return m, nil
		}
		if err := m.ledger.Set(m.ctx, day, max(0, grams)); err != nil {
			m.log.Warn("edit rejected", zap.String("day", day), zap.Error(err))
			return m, nil
		}
		m.loadMonth(day)
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("‹  " + m.month.Title + "  ›"))
	b.WriteString("\n")

	header := make([]string, 0, len(weekdays))
	for _, w := range weekdays {
		header = append(header, m.styles.Cell.Inherit(m.styles.Muted).Render(w))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	cells := make([]string, 0, m.month.LeadingBlanks+len(m.month.Days))
	for i := 0; i < m.month.LeadingBlanks; i++ {
		cells = append(cells, m.styles.Cell.Render("\n"))
	}
	for i, d := range m.month.Days {
		style := m.styles.Cell
		if i == m.cursor {
			style = m.styles.Cursor
		}
		num := strconv.Itoa(d.DayOfMonth)
		if d.IsToday {
			num = "•" + num
		}
		style = style.Foreground(StatusColor(d.Status))
		cells = append(cells, style.Render(num+"\n"+fmt.Sprintf("%dg", d.Amount)))
	}
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
		b.WriteString("\n")
	}

	if len(m.month.Days) > 0 {
		d := m.month.Days[m.cursor]
		b.WriteString("\n")
		line := fmt.Sprintf("%s  %d g", d.Day, d.Amount)
		if d.Status != domain.StatusUnset {
			line += fmt.Sprintf("  %s (%d%%)", d.Status.Label(), progressPercent(d.Amount, m.month.Goal))
		}
		b.WriteString(line)
	}
	if m.editing {
		b.WriteString("\n")
		b.WriteString("Edit grams: " + m.editInput.View())
		b.WriteString(m.styles.Help.Render("\nenter save  esc cancel"))
	} else {
		b.WriteString(m.styles.Help.Render("\narrows move  enter edit  [ ] month  esc home"))
	}
	return b.String()
}
