package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runger/marks/internal/api"
	"github.com/runger/marks/internal/sanitize"
)

func TestTerminal_PlainCard(t *testing.T) {
	root := Results([]api.Result{rustBook()}, sanitize.Terminal{})
	out := Terminal(root, PlainStyles(), TerminalOptions{Selected: -1})

	want := "  Rust Book  91.0%\n" +
		"  a.com\n" +
		"   lang "
	assert.Equal(t, want, out)
}

func TestTerminal_SelectedMarker(t *testing.T) {
	root := Results([]api.Result{
		{ID: 1, URL: "https://a.com", Title: "A"},
		{ID: 2, URL: "https://b.com", Title: "B"},
	}, sanitize.Terminal{})

	out := Terminal(root, PlainStyles(), TerminalOptions{Selected: 1})
	lines := strings.Split(out, "\n")
	assert.Equal(t, "  A  0.0%", lines[0])
	assert.Equal(t, "> B  0.0%", lines[3])
}

func TestTerminal_StripsEscapes(t *testing.T) {
	r := api.Result{ID: 1, URL: "https://a.com", Title: "\x1b]0;pwned\x07Safe\x1b[31m title"}
	out := Terminal(Results([]api.Result{r}, sanitize.Terminal{}), PlainStyles(), TerminalOptions{Selected: -1})

	assert.NotContains(t, out, "\x1b")
	assert.Contains(t, out, "Safe title")
}

func TestTerminal_TruncatesToWidth(t *testing.T) {
	r := api.Result{ID: 1, URL: "https://a.com", Title: strings.Repeat("t", 100), Snippet: strings.Repeat("s", 100)}
	out := Terminal(Results([]api.Result{r}, sanitize.Terminal{}), PlainStyles(), TerminalOptions{Width: 40, Selected: -1})

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
}

func TestTerminal_Empty(t *testing.T) {
	out := Terminal(Empty("No matching bookmarks found", sanitize.Terminal{}), PlainStyles(), TerminalOptions{Selected: -1})
	assert.Equal(t, "  No matching bookmarks found", out)
}

func TestTerminal_Banner(t *testing.T) {
	out := Terminal(Banner("Rust Book", sanitize.Terminal{}), PlainStyles(), TerminalOptions{})
	assert.Equal(t, "Similar to: Rust Book  [b] Back to search", out)
}

func TestTerminal_Dropdown(t *testing.T) {
	out := Terminal(Dropdown([]string{"rust", "go"}, 0, sanitize.Terminal{}), PlainStyles(), TerminalOptions{})
	assert.Equal(t, "> rust\n  go", out)
}
