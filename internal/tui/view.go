package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runger/marks/internal/render"
	"github.com/runger/marks/internal/sanitize"
)

// cardRows is the typical height of a rendered result card plus spacing,
// used to decide how many cards fit on screen.
const cardRows = 6

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteRune('\n')
	b.WriteString(m.viewStatus())

	if m.historyShown() {
		b.WriteRune('\n')
		b.WriteString(render.Terminal(
			render.Dropdown(m.history.List(), m.dropdown.highlighted, m.san),
			m.styles,
			render.TerminalOptions{Width: m.width, Selected: -1},
		))
	}

	if m.similarTo != nil {
		b.WriteString("\n\n")
		b.WriteString(render.Terminal(
			render.Banner(render.Title(*m.similarTo), m.san),
			m.styles,
			render.TerminalOptions{Width: m.width, Selected: -1},
		))
	}

	if body := m.viewResults(); body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// viewStatus renders the status line.
func (m Model) viewStatus() string {
	status := sanitize.StripControl(m.status)
	if m.width > 0 {
		status = sanitize.TruncateWidth(status, m.width)
	}
	if m.mode == modeError {
		return errorStyle.Render(status)
	}
	return statusStyle.Render(status)
}

// viewResults renders the window of result cards around the selection,
// or the empty-state marker.
func (m Model) viewResults() string {
	opts := render.TerminalOptions{Width: m.width, Selected: -1}

	if m.mode == modeEmpty {
		return render.Terminal(render.Empty(emptyResultsMessage, m.san), m.styles, opts)
	}
	if len(m.results) == 0 {
		return ""
	}

	start, end := m.visibleRange()
	if m.focus == focusResults {
		opts.Selected = m.selection - start
	}
	out := render.Terminal(render.Results(m.results[start:end], m.san), m.styles, opts)
	if m.focus == focusResults {
		out = paneStyle.Render("│") + " " + strings.ReplaceAll(out, "\n", "\n"+paneStyle.Render("│")+" ")
	}
	return out
}

// visibleRange returns the [start, end) slice of results that fits on
// screen with the selection inside it.
func (m Model) visibleRange() (int, int) {
	n := len(m.results)
	capacity := n
	if m.height > 0 {
		// 1 row input, 1 row status, blank rows and 1 row help.
		const chrome = 6
		capacity = (m.height - chrome) / cardRows
		if capacity < 1 {
			capacity = 1
		}
	}
	if capacity >= n {
		return 0, n
	}

	start := 0
	if m.selection >= capacity {
		start = m.selection - capacity + 1
	}
	end := start + capacity
	if end > n {
		end = n
		start = end - capacity
	}
	return start, end
}
