// Package htmlsanitize cleans upstream-supplied rich text before display.
//
// Complaint descriptions arrive from the CyVox API and may contain markup;
// wherever they are rendered as HTML they pass through a UGC policy that
// keeps basic formatting and tables and strips scripts, event handlers, and
// unsafe URLs.
package htmlsanitize

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	p.AllowAttrs("class", "style").OnElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
	return p
}

// tagRE matches anything that looks like an HTML tag. Stray '<' and '>'
// characters in ordinary text (e.g. "5 < 10") do not match.
var tagRE = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// Sanitize returns the input with unsafe HTML removed. Basic formatting,
// links, images, lists, headings, code blocks, and tables (including
// class/style/colspan/rowspan attributes) survive; scripts, iframes, forms,
// event handlers, and javascript:/data: URLs do not.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes and marks the result as safe for direct template
// interpolation. Use only for fields that are intentionally rendered as
// HTML; everything else should go through normal template escaping.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(policy.Sanitize(s))
}

// IsPlainText reports whether the input contains no HTML tags.
func IsPlainText(s string) bool {
	return !tagRE.MatchString(s)
}

// PlainTextToHTML escapes plain text and wraps it in a paragraph, turning
// newlines into <br>. Empty input stays empty.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay handles both plain text and HTML input: plain text is
// escaped and paragraph-wrapped, HTML is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
