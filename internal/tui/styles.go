package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/landvote/balance-register/internal/view"
)

var (
	accent = lipgloss.Color("205")
	muted  = lipgloss.Color("245")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 2).
			Width(60)

	selectedPanelStyle = panelStyle.BorderForeground(accent)

	headerStyle   = lipgloss.NewStyle().Bold(true)
	lineStyle     = lipgloss.NewStyle().Foreground(muted)
	emphasisStyle = lipgloss.NewStyle().Bold(true)
	linkStyle     = lipgloss.NewStyle().Underline(true).Foreground(accent)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RenderPanel draws one asset class. indicator replaces the checkbox while
// the class is loading.
func RenderPanel(p view.Panel, selected bool, indicator string) string {
	box := "[ ]"
	if p.Registered {
		box = "[x]"
	}
	if p.Loading {
		box = indicator
		if box == "" {
			box = "..."
		}
	}

	rows := []string{headerStyle.Render(p.Header) + "  " + box + " " + view.RegisteredLabel}
	for _, l := range p.Lines {
		if l.Emphasis {
			rows = append(rows, emphasisStyle.Render(l.Text))
			continue
		}
		rows = append(rows, lineStyle.Render(l.Text))
	}

	style := panelStyle
	if selected {
		style = selectedPanelStyle
	}
	return style.Render(strings.Join(rows, "\n"))
}

// RenderPage draws the whole page without selection or animation.
func RenderPage(page view.Page) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(page.Title))
	b.WriteString("\n")

	if !page.WalletFound {
		b.WriteString(view.WalletNotFound)
		b.WriteString("\n")
		return b.String()
	}

	for _, p := range page.Panels {
		b.WriteString(RenderPanel(p, false, ""))
		b.WriteString("\n")
	}
	b.WriteString(view.VoteLabel + ": " + linkStyle.Render(page.VoteURL))
	b.WriteString("\n")
	return b.String()
}
