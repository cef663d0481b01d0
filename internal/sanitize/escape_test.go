package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML_Text(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Rust Book", "Rust Book"},
		{"script tag", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"quotes", `say "hi"`, "say &#34;hi&#34;"},
		{"empty", "", ""},
		{"invalid utf8", "bad\x80byte", "bad�byte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTML{}.Text(tt.input))
		})
	}
}

func TestHTML_Attr(t *testing.T) {
	got := HTML{}.Attr(`https://a.com/?q="x"&y='z'<>`)
	assert.Equal(t, "https://a.com/?q=&quot;x&quot;&amp;y=&#39;z&#39;&lt;&gt;", got)
	assert.NotContains(t, got, `"`)
	assert.NotContains(t, got, "'")
}

func TestHTML_ScriptNeverLive(t *testing.T) {
	got := HTML{}.Text("<script>")
	assert.NotContains(t, got, "<script>")
	assert.Equal(t, "&lt;script&gt;", got)
}

func TestTerminal_Text(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"sgr", "\x1b[31mred\x1b[0m", "red"},
		{"osc title", "\x1b]0;pwned\x07title", "title"},
		{"newlines", "line one\nline two", "line one line two"},
		{"crlf run", "a\r\n\tb", "a b"},
		{"leading newline", "\nstart", "start"},
		{"bell and nul", "a\x07b\x00c", "abc"},
		{"markup untouched", "<b>x</b>", "<b>x</b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Terminal{}.Text(tt.input))
		})
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"multiple SGR", "\x1b[1;31;42mfancy\x1b[0m", "fancy"},
		{"OSC with ST", "\x1b]0;title\x1b\\text", "text"},
		{"OSC hyperlink", "\x1b]8;;https://example.com\x07link\x1b]8;;\x07", "link"},
		{"charset", "\x1b(Bhello", "hello"},
		{"cursor hide", "\x1b[?25lhidden", "hidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripANSI(tt.input))
		})
	}
}

func TestValidateUTF8(t *testing.T) {
	assert.Equal(t, "hello", ValidateUTF8("hello"))
	assert.Equal(t, "hello�world", ValidateUTF8("hello\x80world"))
	assert.Equal(t, "��ok", ValidateUTF8("\x80\x81ok"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdef", 5, "abcde..."},
		{"multibyte", "ééééé", 3, "ééé..."},
		{"zero", "abc", 0, "..."},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.n))
		})
	}
}

func TestTruncate_HighlightLimit(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := Truncate(long, 150)
	assert.Equal(t, strings.Repeat("x", 150)+"...", got)
}

func TestMiddleTruncate(t *testing.T) {
	assert.Equal(t, "short", MiddleTruncate("short", 10))
	assert.Equal(t, "abcd…789", MiddleTruncate("abcdefghi123456789", 8))
	assert.Equal(t, "ab", MiddleTruncate("abcdef", 2))
	assert.Equal(t, "", MiddleTruncate("abc", 0))
}

func TestTruncateWidth(t *testing.T) {
	assert.Equal(t, "hello", TruncateWidth("hello", 5))
	assert.Equal(t, "hel…", TruncateWidth("hello world", 4))
	// CJK runes are two columns wide.
	assert.Equal(t, "日…", TruncateWidth("日本語", 4))
}
