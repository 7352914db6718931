// Package term turns user supplied words into the canonical Wikipedia title
// used both for the article URL and as the cache key.
package term

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords are Portuguese connectors that Wikipedia keeps lowercase in titles.
var stopWords = map[string]struct{}{
	"de":   {},
	"da":   {},
	"do":   {},
	"das":  {},
	"dos":  {},
	"e":    {},
	"em":   {},
	"para": {},
	"por":  {},
	"com":  {},
}

// Normalize returns the Wikipedia title form of raw, e.g. "casa de papel" becomes "Casa_de_Papel".
// Whitespace-only input yields an empty string.
func Normalize(raw string) string {
	tokens := strings.Fields(raw)
	normalized := make([]string, 0, len(tokens))
	for _, token := range tokens {
		lower := strings.ToLower(token)
		if _, ok := stopWords[lower]; ok {
			normalized = append(normalized, lower)
			continue
		}
		normalized = append(normalized, capitalize(lower))
	}
	return strings.Join(normalized, "_")
}

// Slug returns the storage key of a normalized title.
func Slug(normalized string) string {
	return strings.ToLower(strings.TrimSpace(normalized))
}

// URL builds the article URL of raw under baseURL (e.g. https://pt.wikipedia.org).
func URL(baseURL, raw string) string {
	return strings.TrimRight(baseURL, "/") + "/wiki/" + escape(Normalize(raw))
}

func capitalize(lower string) string {
	first, size := utf8.DecodeRuneInString(lower)
	if first == utf8.RuneError {
		return lower
	}
	return string(unicode.ToTitle(first)) + lower[size:]
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes every byte except unreserved characters and ':', '(' and ')'.
// url.PathEscape keeps a different reserved set, so the encoding is done here.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepUnescaped(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func keepUnescaped(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '_', '.', '-', '~', ':', '(', ')':
		return true
	}
	return false
}
