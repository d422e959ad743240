// Package tui is the Bubble Tea front end: a home screen with the
// split-flap counter, a month history and a goals screen.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"proteinflip/internal/animation"
	"proteinflip/internal/app"
	"proteinflip/internal/config"
)

type screen int

const (
	screenHome screen = iota
	screenHistory
	screenGoals
)

func (s screen) String() string {
	switch s {
	case screenHistory:
		return "History"
	case screenGoals:
		return "Goals"
	default:
		return "Home"
	}
}

type (
	snapshotMsg app.Snapshot
	frameMsg    time.Time
	clockMsg    time.Time
)

// Options tunes the home screen.
type Options struct {
	DefaultAdd int
	QuickAdds  []int
}

// OptionsFromConfig reads the UI section of cfg.
func OptionsFromConfig(cfg config.UIConfig) Options {
	return Options{DefaultAdd: cfg.DefaultAdd, QuickAdds: cfg.QuickAdds}
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx      context.Context
	ledger   *app.LedgerStore
	calendar *app.CalendarService
	goals    *app.GoalService
	log      *zap.Logger
	styles   Styles

	updates     chan app.Snapshot
	unsubscribe func()

	screen screen
	width  int
	height int
	snap   app.Snapshot
	notice string

	// home
	display   *animation.Display
	ticking   bool
	addAmount int
	quickAdds []int

	// history
	month     app.CalendarMonth
	cursor    int
	editing   bool
	editInput textinput.Model

	// goals
	goalDraft   int
	weightInput textinput.Model
	unit        string
}

// New builds the model and subscribes it to ledger changes. Call Close when
// the program exits.
func New(ctx context.Context, ledger *app.LedgerStore, calendar *app.CalendarService, goals *app.GoalService, opts Options, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultAdd < config.MinAdd || opts.DefaultAdd > config.MaxAdd {
		opts.DefaultAdd = 25
	}

	snap := ledger.Snapshot()
	m := Model{
		ctx:       ctx,
		ledger:    ledger,
		calendar:  calendar,
		goals:     goals,
		log:       log,
		styles:    DefaultStyles(),
		updates:   make(chan app.Snapshot, 1),
		snap:      snap,
		display:   animation.NewDisplay(snap.Total, snap.Progress.Ratio),
		addAmount: opts.DefaultAdd,
		quickAdds: opts.QuickAdds,
		unit:      "kg",
	}

	m.editInput = textinput.New()
	m.editInput.Placeholder = "grams"
	m.editInput.CharLimit = 6
	m.editInput.Width = 8

	m.weightInput = textinput.New()
	m.weightInput.Placeholder = "Your weight"
	m.weightInput.CharLimit = 7
	m.weightInput.Width = 10

	updates := m.updates
	m.unsubscribe = ledger.Subscribe(func(s app.Snapshot) {
		publish(updates, s)
	})
	return m
}

// publish keeps only the latest snapshot when the UI falls behind.
func publish(ch chan app.Snapshot, s app.Snapshot) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Close removes the ledger subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init rolls the ledger over and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.rolloverCmd(), m.waitForSnapshot(), clockTick())
}

func (m Model) rolloverCmd() tea.Cmd {
	return func() tea.Msg {
		m.ledger.RolloverIfNeeded(m.ctx)
		return nil
	}
}

func (m Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-m.updates:
			return snapshotMsg(s)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(animation.FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// clockTick checks for a new day while the terminal stays in front.
func clockTick() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return clockMsg(t) })
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.FocusMsg:
		return m, m.rolloverCmd()

	case clockMsg:
		return m, tea.Batch(m.rolloverCmd(), clockTick())

	case snapshotMsg:
		return m.applySnapshot(app.Snapshot(msg))

	case frameMsg:
		if !m.display.Frame(animation.FrameInterval) {
			m.ticking = false
			return m, nil
		}
		return m, frameTick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenHistory:
			return m.updateHistory(msg)
		case screenGoals:
			return m.updateGoals(msg)
		default:
			return m.updateHome(msg)
		}
	}
	return m, nil
}

func (m Model) applySnapshot(s app.Snapshot) (Model, tea.Cmd) {
	m.snap = s
	m.display.Show(s.Total, s.Progress.Ratio)
	if m.screen == screenHistory {
		m.loadMonth(m.selectedDay())
	}
	cmds := []tea.Cmd{m.waitForSnapshot()}
	if !m.ticking && m.display.Animating() {
		m.ticking = true
		cmds = append(cmds, frameTick())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) goTo(s screen) (Model, tea.Cmd) {
	m.screen = s
	m.notice = ""
	switch s {
	case screenHistory:
		m.editing = false
		m.loadMonth(m.ledger.Today())
	case screenGoals:
		m.goalDraft = m.ledger.Goal()
		if m.goalDraft < minGoal || m.goalDraft > maxGoal {
			m.goalDraft = defaultGoalDraft
		}
		m.weightInput.SetValue("")
		m.weightInput.Blur()
	}
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	switch m.screen {
	case screenHistory:
		b.WriteString(m.viewHistory())
	case screenGoals:
		b.WriteString(m.viewGoals())
	default:
		b.WriteString(m.viewHome())
	}
	if m.snap.Degraded {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render("Storage unavailable, changes are kept until you quit."))
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Accent.Render(m.notice))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, 3)
	for _, s := range []screen{screenHome, screenHistory, screenGoals} {
		style := m.styles.Tab
		if s == m.screen {
			style = m.styles.TabOn
		}
		tabs = append(tabs, style.Render(s.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, m Model) error {
	defer m.Close()
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
