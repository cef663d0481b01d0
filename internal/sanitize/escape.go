// Package sanitize makes untrusted strings from the search backend safe to
// embed in rendered output.
//
// Two renditions exist: HTML, which escapes text and attribute values for
// markup, and Terminal, which removes escape sequences and control
// characters so a bookmark title cannot repaint or retitle the user's
// terminal.
package sanitize

import (
	"html"
	"strings"
)

// Sanitizer escapes interpolated text for one output medium.
type Sanitizer interface {
	// Text escapes s for use as element text content.
	Text(s string) string
	// Attr escapes s for use inside a quoted attribute value.
	Attr(s string) string
}

// HTML escapes for markup output.
type HTML struct{}

// Compile-time check that HTML implements Sanitizer.
var _ Sanitizer = HTML{}

// Text escapes &, <, >, " and '.
func (HTML) Text(s string) string {
	return html.EscapeString(ValidateUTF8(s))
}

// attrReplacer mirrors the escaping rules for double- and single-quoted
// attribute values.
var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
)

// Attr escapes a quoted attribute value.
func (HTML) Attr(s string) string {
	return attrReplacer.Replace(ValidateUTF8(s))
}

// Terminal strips everything a terminal would interpret.
type Terminal struct{}

// Compile-time check that Terminal implements Sanitizer.
var _ Sanitizer = Terminal{}

// Text removes ANSI escape sequences and control characters and repairs
// invalid UTF-8. Newlines and tabs collapse to a single space.
func (Terminal) Text(s string) string {
	return StripControl(ValidateUTF8(StripANSI(s)))
}

// Attr is identical to Text; terminals have no attribute context.
func (t Terminal) Attr(s string) string {
	return t.Text(s)
}
