package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/marks/internal/api"
	"github.com/runger/marks/internal/sanitize"
)

func rustBook() api.Result {
	return api.Result{ID: 1, URL: "https://a.com", Title: "Rust Book", Score: 0.91, Tags: []string{"lang"}}
}

func TestResults_RustScenario(t *testing.T) {
	root := Results([]api.Result{rustBook()}, sanitize.HTML{})

	assert.Equal(t, IDResults, root.ID)
	cards := root.FindAll("result-card")
	require.Len(t, cards, 1)

	card := cards[0]
	assert.Equal(t, "91.0%", card.Find("score-badge").TextContent())
	assert.Equal(t, "a.com", card.Find("result-url").TextContent())
	assert.Equal(t, "Rust Book", card.Find("result-title").TextContent())

	pills := card.FindAll("tag-pill")
	require.Len(t, pills, 1)
	assert.Equal(t, "lang", pills[0].TextContent())

	btn := card.Find("similar-btn")
	require.NotNil(t, btn)
	id, _ := btn.Attr("data-id")
	title, _ := btn.Attr("data-title")
	assert.Equal(t, "1", id)
	assert.Equal(t, "Rust Book", title)

	assert.Nil(t, card.Find("result-snippet"))
	assert.Nil(t, card.Find("result-highlights"))
	assert.Nil(t, card.Find("result-date"))
}

func TestResults_PreservesOrder(t *testing.T) {
	root := Results([]api.Result{
		{ID: 3, URL: "https://c.com", Title: "C"},
		{ID: 1, URL: "https://a.com", Title: "A"},
	}, sanitize.HTML{})

	cards := root.FindAll("result-card")
	require.Len(t, cards, 2)
	first, _ := cards[0].Attr("data-id")
	second, _ := cards[1].Attr("data-id")
	assert.Equal(t, []string{"3", "1"}, []string{first, second})
}

func TestResults_Empty(t *testing.T) {
	root := Results(nil, sanitize.HTML{})
	assert.Empty(t, root.Children)
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.8675, "86.8%"},
		{0.91, "91.0%"},
		{1, "100.0%"},
		{0, "0.0%"},
		{0.123, "12.3%"},
		{0.0125, "1.3%"},
		{0.0625, "6.3%"},
		{0.5125, "51.3%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatScore(tt.score), "score %v", tt.score)
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"https", "https://a.com", "a.com"},
		{"path and port", "http://blog.example.org:8080/post?id=1", "blog.example.org"},
		{"no scheme", "a.com/page", "a.com/page"},
		{"garbage", "://bad url", "://bad url"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Domain(tt.raw))
		})
	}
}

func TestTitle_FallsBackToUntitled(t *testing.T) {
	card := Card(api.Result{ID: 2, URL: "https://b.com"}, sanitize.HTML{})
	assert.Equal(t, "Untitled", card.Find("result-title").TextContent())

	title, _ := card.Find("similar-btn").Attr("data-title")
	assert.Equal(t, "Untitled", title)
}

func TestHighlights_FirstTwoTruncated(t *testing.T) {
	long := strings.Repeat("a", 160)
	got := Highlights([]string{long, "second", "third"}, sanitize.HTML{})
	assert.Equal(t, strings.Repeat("a", 150)+"..."+" ... "+"second", got)
}

func TestHighlights_EscapesAfterTruncating(t *testing.T) {
	got := Highlights([]string{"<b>bold</b>"}, sanitize.HTML{})
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", got)
}

func TestCard_SnippetHighlightsDate(t *testing.T) {
	card := Card(api.Result{
		ID:         5,
		URL:        "https://go.dev",
		Title:      "Go",
		Score:      0.5,
		Snippet:    "The Go programming language",
		Highlights: []string{"simple", "fast"},
		CreatedAt:  "Jan 2, 2026",
	}, sanitize.HTML{})

	assert.Equal(t, "The Go programming language", card.Find("result-snippet").TextContent())
	assert.Equal(t, "simple ... fast", card.Find("result-highlights").TextContent())
	assert.Equal(t, "Jan 2, 2026", card.Find("result-date").TextContent())
}

func TestScriptTitle_NeverLiveMarkup(t *testing.T) {
	r := api.Result{ID: 9, URL: `https://evil.com/"onmouseover="x`, Title: "<script>alert(1)</script>", Tags: []string{"<img src=x>"}}
	out := HTML(Results([]api.Result{r}, sanitize.HTML{}))

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, `href="https://evil.com/&quot;onmouseover=&quot;x"`)
	assert.Contains(t, out, `data-title="&lt;script&gt;alert(1)&lt;/script&gt;"`)
}

func TestEmpty(t *testing.T) {
	root := Empty("No matching bookmarks found", sanitize.HTML{})
	assert.Equal(t, IDResults, root.ID)
	assert.Equal(t, "No matching bookmarks found", root.Find("empty-state").TextContent())
}

func TestBanner(t *testing.T) {
	b := Banner("Rust <Book>", sanitize.HTML{})
	assert.Equal(t, "Rust &lt;Book&gt;", b.Find("similar-source").TextContent())
	assert.NotNil(t, b.Find("back-btn"))

	assert.Equal(t, "Untitled", Banner("", sanitize.HTML{}).Find("similar-source").TextContent())
}

func TestDropdown(t *testing.T) {
	d := Dropdown([]string{"rust", "go"}, 1, sanitize.HTML{})
	assert.Equal(t, IDHistory, d.ID)

	items := d.FindAll("history-item")
	require.Len(t, items, 2)
	assert.False(t, items[0].HasClass("highlighted"))
	assert.True(t, items[1].HasClass("highlighted"))
	assert.Equal(t, "go", items[1].Find("history-text").TextContent())

	q, _ := items[0].Find("history-remove").Attr("data-query")
	assert.Equal(t, "rust", q)
}

func TestDropdown_NoneHighlighted(t *testing.T) {
	d := Dropdown([]string{"rust"}, -1, sanitize.HTML{})
	assert.Empty(t, d.FindAll("highlighted"))
}
