// Package tui is the interactive terminal view of the balance page.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/view"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Refresh},
		{k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous balance"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next balance"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "t"),
			key.WithHelp("space", "toggle registration"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type Options struct {
	// Ctx bounds background toggles; it should live as long as the program.
	Ctx          context.Context
	Session      *balances.Session
	Formatter    view.Formatter
	Title        string
	VoteURL      string
	PollInterval time.Duration
}

type (
	tickMsg   time.Time
	actionMsg struct{ err error }
)

// Model polls the session store and forwards key presses to the workflows.
type Model struct {
	opts     Options
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	page     view.Page
	selected int
	showHelp bool
	lastErr  error
}

func New(opts Options) *Model {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	m := &Model{
		opts:    opts,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: s,
	}
	m.sync()
	return m
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd(m.opts.PollInterval))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.sync()
		return m, tickCmd(m.opts.PollInterval)

	case actionMsg:
		m.lastErr = msg.err
		m.sync()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.page.Panels)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleCmd()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m *Model) toggleCmd() tea.Cmd {
	if m.opts.Session == nil || m.selected >= len(m.page.Panels) {
		return nil
	}
	panel := m.page.Panels[m.selected]
	// the control is disabled while loading
	if panel.Loading {
		return nil
	}
	session, ctx, class := m.opts.Session, m.opts.Ctx, panel.Class
	return func() tea.Msg {
		return actionMsg{err: session.StartToggle(ctx, class)}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	if m.opts.Session == nil {
		return nil
	}
	session, ctx := m.opts.Session, m.opts.Ctx
	return func() tea.Msg {
		var errs error
		for _, class := range balances.AssetClasses {
			if !session.Ready(class) {
				continue
			}
			if err := session.Reload(ctx, class); err != nil {
				errs = errors.CombineErrors(errs, err)
			}
		}
		return actionMsg{err: errs}
	}
}

func (m *Model) sync() {
	var snaps view.Snapshotter
	account := ""
	if m.opts.Session != nil {
		snaps = m.opts.Session
		account = m.opts.Session.Account().Hex()
	}
	m.page = m.opts.Formatter.Build(m.opts.Title, m.opts.VoteURL, account, snaps)
	if m.selected >= len(m.page.Panels) {
		m.selected = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.page.Title))
	b.WriteString("\n")

	if !m.page.WalletFound {
		b.WriteString(view.WalletNotFound)
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(lineStyle.Render(m.page.Account))
	b.WriteString("\n")
	for i, p := range m.page.Panels {
		b.WriteString(RenderPanel(p, i == m.selected, m.spinner.View()))
		b.WriteString("\n")
	}
	b.WriteString(view.VoteLabel + ": " + linkStyle.Render(m.page.VoteURL))
	b.WriteString("\n")

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render(m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}
