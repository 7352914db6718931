package wikipedia

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const removedSelector = "script, style, noscript, svg, img, figure, table, " +
	"div.navbox, div.infobox, div.metadata, div.reflist, " +
	"ol.references, sup.reference, span.mw-editsection"

// paragraphElements are separated from their surroundings by a blank line.
var paragraphElements = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "dl": true, "hr": true,
}

// lineElements start and end on their own line.
var lineElements = map[string]bool{
	"div": true, "section": true, "article": true, "header": true, "footer": true,
	"main": true, "nav": true, "aside": true, "ul": true, "ol": true,
	"li": true, "dt": true, "dd": true, "br": true, "tr": true, "caption": true,
	"center": true, "address": true,
	"html": true, "head": true, "title": true, "body": true,
}

// HTMLCleaner implements Cleaner for MediaWiki article pages.
type HTMLCleaner struct{}

func NewHTMLCleaner() *HTMLCleaner {
	return &HTMLCleaner{}
}

func (c *HTMLCleaner) Clean(raw []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("goquery.NewDocumentFromReader > %w", err)
	}
	if doc.Find("div.noarticletext").Length() > 0 {
		return "", ErrPageNotFound
	}

	content := doc.Find("div#mw-content-text").First()
	if content.Length() == 0 {
		content = doc.Selection
	}
	content.Find(removedSelector).Remove()

	w := &textWriter{}
	for _, node := range content.Nodes {
		w.walk(node, false)
	}
	text := w.String()
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}

// textWriter accumulates trimmed lines and never emits two blank lines in a row.
type textWriter struct {
	lines []string
	line  strings.Builder
}

func (w *textWriter) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if !pre {
			w.line.WriteString(n.Data)
			return
		}
		for i, part := range strings.Split(n.Data, "\n") {
			if i > 0 {
				w.breakLine()
			}
			w.line.WriteString(part)
		}
		return
	case html.ElementNode:
	case html.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			w.walk(child, pre)
		}
		return
	default:
		return
	}

	tag := n.Data
	w.open(tag)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		w.walk(child, pre || tag == "pre")
	}
	w.open(tag)
}

func (w *textWriter) open(tag string) {
	switch {
	case paragraphElements[tag]:
		w.breakParagraph()
	case lineElements[tag]:
		w.breakLine()
	}
}

func (w *textWriter) breakLine() {
	line := strings.Join(strings.Fields(w.line.String()), " ")
	w.line.Reset()
	if line != "" {
		w.lines = append(w.lines, line)
	}
}

func (w *textWriter) breakParagraph() {
	w.breakLine()
	if n := len(w.lines); n > 0 && w.lines[n-1] != "" {
		w.lines = append(w.lines, "")
	}
}

func (w *textWriter) String() string {
	w.breakLine()
	lines := w.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
