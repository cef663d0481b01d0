package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runger/marks/internal/sanitize"
)

// Styles are the lipgloss styles used by the terminal binding.
type Styles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Score       lipgloss.Style
	URL         lipgloss.Style
	Snippet     lipgloss.Style
	Highlight   lipgloss.Style
	Tag         lipgloss.Style
	Date        lipgloss.Style
	Empty       lipgloss.Style
	Banner      lipgloss.Style
	Control     lipgloss.Style
	History     lipgloss.Style
	HistoryMark lipgloss.Style
}

// DefaultStyles is the colored palette of the interactive view.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Score:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		URL:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Snippet:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Highlight:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Tag:         lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")),
		Date:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Banner:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		Control:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		History:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		HistoryMark: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("238")),
	}
}

// PlainStyles renders without any terminal attributes.
func PlainStyles() Styles {
	return Styles{}
}

// TerminalOptions tune the terminal binding.
type TerminalOptions struct {
	// Width is the available column count; 0 disables truncation.
	Width int
	// Selected is the index of the selected result card, or -1.
	Selected int
}

// Terminal renders n for a character terminal. The tree must have been
// built with sanitize.Terminal.
func Terminal(n *Node, st Styles, opts TerminalOptions) string {
	if n == nil {
		return ""
	}
	switch {
	case n.HasClass("results"):
		return terminalResults(n, st, opts)
	case n.HasClass("result-card"):
		return terminalCard(n, st, opts.Width, false)
	case n.HasClass("similar-banner"):
		return terminalBanner(n, st, opts.Width)
	case n.HasClass("history-dropdown"):
		return terminalDropdown(n, st, opts.Width)
	case n.HasClass("empty-state"):
		return st.Empty.Render(n.TextContent())
	default:
		return n.TextContent()
	}
}

func terminalResults(n *Node, st Styles, opts TerminalOptions) string {
	blocks := make([]string, 0, len(n.Children))
	card := 0
	for _, c := range n.Children {
		switch {
		case c.HasClass("result-card"):
			blocks = append(blocks, terminalCard(c, st, opts.Width, card == opts.Selected))
			card++
		case c.HasClass("empty-state"):
			blocks = append(blocks, "  "+st.Empty.Render(c.TextContent()))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func terminalCard(n *Node, st Styles, width int, selected bool) string {
	marker, titleStyle := "  ", st.Title
	if selected {
		marker, titleStyle = "> ", st.Selected
	}

	var lines []string

	score := textOf(n, "score-badge")
	title := textOf(n, "result-title")
	titleWidth := 0
	if width > 0 {
		titleWidth = width - len(marker) - runewidth.StringWidth(score) - 2
	}
	lines = append(lines, marker+titleStyle.Render(fit(title, titleWidth))+"  "+st.Score.Render(score))

	inner := 0
	if width > 0 {
		inner = width - 2
	}
	if u := textOf(n, "result-url"); u != "" {
		if inner > 0 {
			u = sanitize.MiddleTruncate(u, inner)
		}
		lines = append(lines, "  "+st.URL.Render(u))
	}
	if sn := textOf(n, "result-snippet"); sn != "" {
		lines = append(lines, "  "+st.Snippet.Render(fit(sn, inner)))
	}
	if hl := textOf(n, "result-highlights"); hl != "" {
		lines = append(lines, "  "+st.Highlight.Render(fit(hl, inner)))
	}

	var meta []string
	for _, tag := range n.FindAll("tag-pill") {
		meta = append(meta, st.Tag.Render(" "+tag.TextContent()+" "))
	}
	if d := textOf(n, "result-date"); d != "" {
		meta = append(meta, st.Date.Render(d))
	}
	if len(meta) > 0 {
		lines = append(lines, "  "+strings.Join(meta, " "))
	}

	return strings.Join(lines, "\n")
}

func terminalBanner(n *Node, st Styles, width int) string {
	label := textOf(n, "similar-label")
	if width > 0 {
		label = sanitize.TruncateWidth(label, width-24)
	}
	return st.Banner.Render(label) + "  " + st.Control.Render("[b] "+textOf(n, "back-btn"))
}

func terminalDropdown(n *Node, st Styles, width int) string {
	items := n.FindAll("history-item")
	lines := make([]string, 0, len(items))
	for _, item := range items {
		q := textOf(item, "history-text")
		if width > 0 {
			q = sanitize.TruncateWidth(q, width-4)
		}
		if item.HasClass("highlighted") {
			lines = append(lines, st.HistoryMark.Render("> "+q))
		} else {
			lines = append(lines, st.History.Render("  "+q))
		}
	}
	return strings.Join(lines, "\n")
}

// textOf returns the text content of the first descendant with class.
func textOf(n *Node, class string) string {
	if c := n.Find(class); c != nil {
		return c.TextContent()
	}
	return ""
}

// fit truncates s to width columns when width is positive.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return sanitize.TruncateWidth(s, width)
}
