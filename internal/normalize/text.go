// Package normalize maps backend records onto storefront view models.
// Every function here is pure and never fails: missing or malformed optional
// input degrades to a zero value or nil.
package normalize

import (
	"html"
	"strings"
	"unicode"

	xhtml "golang.org/x/net/html"
)

// typographic folds the punctuation WordPress emits for smart quotes, dashes,
// and friends onto plain ASCII.
var typographic = strings.NewReplacer(
	"‘", "'", // left single quote (&#8216; &lsquo;)
	"’", "'", // right single quote (&#8217; &rsquo;)
	"‚", "'",
	"“", `"`, // left double quote (&#8220; &ldquo;)
	"”", `"`, // right double quote (&#8221; &rdquo;)
	"„", `"`,
	"–", "-", // en dash (&#8211; &ndash;)
	"—", "-", // em dash (&#8212; &mdash;)
	"…", "...", // &hellip;
	"\u00a0", " ", // &nbsp;
)

// blockTags end a run of text; a space is emitted so adjacent blocks don't run together.
var blockTags = map[string]bool{
	"p": true, "br": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "blockquote": true, "section": true,
}

// DecodeEntities decodes numeric and named HTML character entities and folds
// typographic punctuation to ASCII.
//
//	DecodeEntities("Kids&#8217; Speech &amp; Language") == "Kids' Speech & Language"
func DecodeEntities(s string) string {
	if s == "" {
		return ""
	}
	return typographic.Replace(html.UnescapeString(s))
}

// StripHTML removes markup, drops script and style bodies, decodes entities,
// and collapses whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(s))
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			return collapseSpace(typographic.Replace(b.String()))
		case xhtml.TextToken:
			if skip == 0 {
				// Text() is already entity-decoded.
				b.Write(z.Text())
			}
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style") && tt == xhtml.StartTagToken {
				skip++
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

// Text is the plain-text form of a rendered backend field.
func Text(s string) string {
	return StripHTML(s)
}

// Truncate cuts s to at most n runes, appending "..." when anything was cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
