// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"strings"
)

// shortTitleWords is how many leading words of the title seed the alias
// list when no citation key is available.
const shortTitleWords = 5

// Render assembles extracted fields and parsed extra-metadata into a
// note document: a frontmatter header followed by a title heading.
// Citation-key-derived entries come first (citation_key, then aliases
// seeded with the citation key or a short title), then the extracted
// fields in table order. Output is deterministic: the same inputs yield
// byte-identical text.
func Render(fields Fields, extra *ExtraFields) string {
	var b strings.Builder
	b.WriteString("---\n")

	citationKey := ""
	if extra != nil {
		citationKey = extra.CitationKey()
	}
	if citationKey != "" {
		writeScalar(&b, "citation_key", citationKey)
	}

	alias := citationKey
	if alias == "" {
		alias = shortTitle(fields.Title())
	}
	if alias != "" {
		writeList(&b, "aliases", []string{alias})
	}

	for _, fld := range fields.All() {
		if fld.IsList {
			writeList(&b, fld.Key, fld.List)
		} else {
			writeScalar(&b, fld.Key, fld.Value)
		}
	}

	b.WriteString("---\n\n# ")
	b.WriteString(fields.Title())
	b.WriteString("\n")
	return b.String()
}

// shortTitle returns the first few whitespace-separated words of title.
func shortTitle(title string) string {
	words := strings.Fields(title)
	if len(words) > shortTitleWords {
		words = words[:shortTitleWords]
	}
	return strings.Join(words, " ")
}

// writeScalar emits one quoted header value. Backslashes are stripped
// and newlines folded to spaces so the header always parses; values
// containing a double quote switch to single-quoted form.
func writeScalar(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(quote(clean(value)))
	b.WriteString("\n")
}

// writeList emits a flow-sequence header value with single-quoted items.
func writeList(b *strings.Builder, key string, items []string) {
	b.WriteString(key)
	b.WriteString(": [")
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(singleQuote(clean(item)))
	}
	b.WriteString("]\n")
}

func clean(s string) string {
	s = strings.ReplaceAll(s, `\`, "")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func quote(s string) string {
	if strings.Contains(s, `"`) {
		return singleQuote(s)
	}
	return `"` + s + `"`
}

func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
