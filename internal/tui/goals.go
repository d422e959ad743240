package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"proteinflip/internal/domain"
)

const (
	minGoal          = 40
	maxGoal          = 300
	defaultGoalDraft = 130
)

func (m Model) updateGoals(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.weightInput.Focused() {
		return m.updateWeight(msg)
	}
	m.notice = ""
	switch msg.String() {
	case "esc", "q":
		return m.goTo(screenHome)
	case "h":
		return m.goTo(screenHistory)
	case "left", "-":
		m.goalDraft = clamp(m.goalDraft-1, minGoal, maxGoal)
	case "right", "+", "=":
		m.goalDraft = clamp(m.goalDraft+1, minGoal, maxGoal)
	case "down", "pgdown":
		m.goalDraft = clamp(m.goalDraft-10, minGoal, maxGoal)
	case "up", "pgup":
		m.goalDraft = clamp(m.goalDraft+10, minGoal, maxGoal)
	case "enter", "s":
		if err := m.ledger.SetGoal(m.ctx, m.goalDraft); err != nil {
			m.log.Warn("goal rejected", zap.Int("goal", m.goalDraft), zap.Error(err))
			return m, nil
		}
		return m.goTo(screenHome)
	case "tab", "w":
		return m, m.weightInput.Focus()
	}
	return m, nil
}

func (m Model) updateWeight(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.weightInput.Blur()
		return m, nil
	case "up", "down":
		if m.unit == domain.UnitKg {
			m.unit = domain.UnitLb
		} else {
			m.unit = domain.UnitKg
		}
		return m, nil
	case "enter":
		weight, err := strconv.ParseFloat(strings.TrimSpace(m.weightInput.Value()), 64)
		if err != nil {
			return m, nil
		}
		goal, err := m.goals.ApplySuggested(m.ctx, weight, m.unit)
		if err != nil {
			m.notice = "Enter a positive weight"
			return m, nil
		}
		m.goalDraft = goal
		m.notice = fmt.Sprintf("Goal set to %d g", goal)
		m.weightInput.Blur()
		return m, nil
	}
	if msg.Type == tea.KeyRunes && !numeric(msg.Runes) {
		return m, nil
	}
	var cmd tea.Cmd
	m.weightInput, cmd = m.weightInput.Update(msg)
	return m, cmd
}

func numeric(rs []rune) bool {
	for _, r := range rs {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func (m Model) viewGoals() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Daily goal"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("◀  %s  ▶", m.styles.Accent.Render(fmt.Sprintf("%d g", m.goalDraft))))
	b.WriteString(m.styles.Help.Render("\n←/→ adjust  enter save  esc home"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Title.Render("Not sure? Work it out from your weight"))
	b.WriteString("\n")
	kg, lb := strings.ToUpper(domain.UnitKg), domain.UnitLb
	if m.unit == domain.UnitLb {
		kg, lb = domain.UnitKg, strings.ToUpper(domain.UnitLb)
	}
	b.WriteString(fmt.Sprintf("%s  %s | %s", m.weightInput.View(), kg, lb))
	if m.weightInput.Focused() {
		b.WriteString(m.styles.Help.Render("\nenter calculate  ↑/↓ unit  esc done"))
	} else {
		b.WriteString(m.styles.Help.Render("\ntab enter weight"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Multiplies your weight in kilograms by %.1f.", domain.GramsPerKg)))
	return b.String()
}
