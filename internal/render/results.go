package render

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/runger/marks/internal/api"
	"github.com/runger/marks/internal/sanitize"
)

const (
	// maxHighlights is how many highlight fragments a card shows.
	maxHighlights = 2
	// highlightLen is the character limit per highlight fragment.
	highlightLen = 150
	// highlightSep joins the shown fragments.
	highlightSep = " ... "

	untitled = "Untitled"
)

// Stable identifiers of the view regions.
const (
	IDInput   = "search-input"
	IDResults = "results"
	IDStatus  = "status"
	IDHistory = "search-history"
)

// Results renders the result cards inside the results container.
func Results(results []api.Result, s sanitize.Sanitizer) *Node {
	root := el("div", "results")
	root.ID = IDResults
	root.Children = make([]*Node, 0, len(results))
	for _, r := range results {
		root.Children = append(root.Children, Card(r, s))
	}
	return root
}

// Card renders a single result.
func Card(r api.Result, s sanitize.Sanitizer) *Node {
	title := Title(r)

	link := el("a", "", text(s.Text(title))).
		withAttr("href", s.Attr(r.URL)).
		withAttr("target", "_blank").
		withAttr("rel", "noopener")

	header := el("div", "result-header",
		el("span", "result-title", link),
		el("span", "score-badge", text(FormatScore(r.Score))),
	)

	card := el("div", "result-card", header,
		el("div", "result-url", text(s.Text(Domain(r.URL)))),
	)
	card.withAttr("data-id", strconv.Itoa(r.ID))

	if r.Snippet != "" {
		card.Children = append(card.Children, el("div", "result-snippet", text(s.Text(r.Snippet))))
	}
	if hl := Highlights(r.Highlights, s); hl != "" {
		card.Children = append(card.Children, el("div", "result-highlights", text(hl)))
	}

	meta := el("div", "result-meta")
	for _, tag := range r.Tags {
		meta.Children = append(meta.Children, el("span", "tag-pill", text(s.Text(tag))))
	}
	if r.CreatedAt != "" {
		meta.Children = append(meta.Children, el("span", "result-date", text(s.Text(r.CreatedAt))))
	}
	meta.Children = append(meta.Children, SimilarControl(r, s))
	card.Children = append(card.Children, meta)

	return card
}

// SimilarControl is the "find similar" action of a card. It carries the
// result id and the escaped title of the source bookmark.
func SimilarControl(r api.Result, s sanitize.Sanitizer) *Node {
	return el("button", "similar-btn", text("Find similar")).
		withAttr("type", "button").
		withAttr("data-id", strconv.Itoa(r.ID)).
		withAttr("data-title", s.Attr(Title(r)))
}

// Empty renders the empty-state marker.
func Empty(message string, s sanitize.Sanitizer) *Node {
	root := el("div", "results", el("div", "empty-state", text(s.Text(message))))
	root.ID = IDResults
	return root
}

// Banner renders the "similar to" header with its back control.
func Banner(sourceTitle string, s sanitize.Sanitizer) *Node {
	if sourceTitle == "" {
		sourceTitle = untitled
	}
	return el("div", "similar-banner",
		el("span", "similar-label",
			text("Similar to: "),
			el("strong", "similar-source", text(s.Text(sourceTitle))),
		),
		el("button", "back-btn", text("Back to search")).withAttr("type", "button"),
	)
}

// Dropdown renders the search-history list. highlighted is the index of
// the highlighted entry, or -1.
func Dropdown(entries []string, highlighted int, s sanitize.Sanitizer) *Node {
	root := el("div", "history-dropdown")
	root.ID = IDHistory
	for i, q := range entries {
		class := "history-item"
		if i == highlighted {
			class += " highlighted"
		}
		item := el("div", class,
			el("span", "history-text", text(s.Text(q))),
			el("button", "history-remove", text("×")).
				withAttr("type", "button").
				withAttr("data-query", s.Attr(q)).
				withAttr("title", "Remove from history"),
		)
		item.withAttr("data-index", strconv.Itoa(i))
		root.Children = append(root.Children, item)
	}
	return root
}

// Title returns the display title, falling back to "Untitled".
func Title(r api.Result) string {
	if strings.TrimSpace(r.Title) == "" {
		return untitled
	}
	return r.Title
}

// Domain returns the host of rawURL, or rawURL itself when it does not
// parse as an absolute URL.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}

// FormatScore renders a [0,1] score as a percentage with one decimal.
// Ties round away from zero, so 0.0125 is "1.3%".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", math.Round(score*1000)/10)
}

// Highlights sanitizes and joins the first fragments, each cut to
// highlightLen characters.
func Highlights(fragments []string, s sanitize.Sanitizer) string {
	if len(fragments) > maxHighlights {
		fragments = fragments[:maxHighlights]
	}
	parts := make([]string, 0, len(fragments))
	for _, h := range fragments {
		parts = append(parts, s.Text(sanitize.Truncate(h, highlightLen)))
	}
	return strings.Join(parts, highlightSep)
}
