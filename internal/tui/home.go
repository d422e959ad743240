package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"proteinflip/internal/config"
	"proteinflip/internal/domain"
)

const (
	ringWidth   = 24
	sliderWidth = 30
)

var flapShades = []rune{' ', '░', '▒', '▓'}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "h":
		return m.goTo(screenHistory)
	case "g":
		return m.goTo(screenGoals)
	case "left", "-":
		m.addAmount = clamp(m.addAmount-1, config.MinAdd, config.MaxAdd)
	case "right", "+", "=":
		m.addAmount = clamp(m.addAmount+1, config.MinAdd, config.MaxAdd)
	case "pgdown", "down":
		m.addAmount = clamp(m.addAmount-10, config.MinAdd, config.MaxAdd)
	case "pgup", "up":
		m.addAmount = clamp(m.addAmount+10, config.MinAdd, config.MaxAdd)
	case "enter", " ", "a":
		m.add(m.addAmount)
	case "u":
		if undone, total := m.ledger.UndoLast(m.ctx); undone {
			m.notice = fmt.Sprintf("Undone, today is %d g", total)
		}
	default:
		if i, ok := quickAddIndex(key); ok && i < len(m.quickAdds) {
			m.addAmount = m.quickAdds[i]
			m.add(m.quickAdds[i])
		}
	}
	return m, nil
}

// add is ignored while the counter is still walking to the last total.
func (m *Model) add(amount int) {
	if m.display.Counter.Running() {
		return
	}
	before := m.ledger.Total()
	total, err := m.ledger.Add(m.ctx, amount)
	if err != nil {
		m.log.Warn("add rejected", zap.Int("amount", amount), zap.Error(err))
		return
	}
	if goal := m.ledger.Goal(); goal > 0 && before < goal && total >= goal {
		m.notice = "Goal hit!"
	}
}

func quickAddIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(m.renderFlap())
	b.WriteString("\n\n")
	b.WriteString(m.renderRing())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Accent.Render(fmt.Sprintf("+%d g", m.addAmount)))
	b.WriteString("\n")
	b.WriteString(m.renderSlider())
	b.WriteString("\n")

	quick := make([]string, 0, len(m.quickAdds)+1)
	for i, v := range m.quickAdds {
		quick = append(quick, fmt.Sprintf("[%d] +%d g", i+1, v))
	}
	quick = append(quick, "[u] Undo")
	b.WriteString(strings.Join(quick, "  "))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Goal %d g • Today %d g", m.snap.Goal, m.snap.Total)))
	b.WriteString(m.styles.Help.Render("\n←/→ amount  enter add  h history  g goals  q quit"))
	return b.String()
}

func (m Model) renderFlap() string {
	digits := m.display.Flap.Digits()
	cells := make([]string, 0, len(digits))
	for _, d := range digits {
		top, bottom := d.Angles()
		card := lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Flap.Render(foldRow(top)),
			m.styles.Digit.Render(string(d.Glyph())),
			m.styles.Flap.Render(foldRow(bottom)),
		)
		cells = append(cells, card, " ")
	}
	cells = append(cells, m.styles.Muted.Render(" g"))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cells...)
}

// foldRow shades a flap edge by how far it is turned away from the viewer.
func foldRow(angle float64) string {
	i := int(math.Abs(angle) / 90 * float64(len(flapShades)-1))
	i = clamp(i, 0, len(flapShades)-1)
	return string(flapShades[i])
}

func (m Model) renderRing() string {
	if !m.snap.Progress.Configured() {
		return m.styles.Muted.Render("Set a goal to see your progress")
	}
	filled := clamp(int(math.Round(m.display.Ring.Value()*ringWidth)), 0, ringWidth)
	color := StatusColor(m.snap.Progress.Status)
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		m.styles.Muted.Render(strings.Repeat("░", ringWidth-filled))

	caption := "Keep going"
	if m.snap.Progress.Status == domain.StatusHit {
		caption = "Goal hit"
	}
	return fmt.Sprintf("%s  %d / %d g\n%s", bar, m.snap.Total, m.snap.Goal,
		m.styles.Muted.Render(caption))
}

func (m Model) renderSlider() string {
	pos := (m.addAmount - config.MinAdd) * (sliderWidth - 1) / (config.MaxAdd - config.MinAdd)
	return m.styles.Muted.Render(strings.Repeat("─", pos)) +
		m.styles.Accent.Render("●") +
		m.styles.Muted.Render(strings.Repeat("─", sliderWidth-1-pos))
}

func progressPercent(amount, goal int) int {
	return int(domain.ProgressOf(amount, goal).Ratio * 100)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
