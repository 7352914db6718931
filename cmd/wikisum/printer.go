package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/extraction"
)

type printer struct {
	w     io.Writer
	bold  *color.Color
	faint *color.Color
	warn  *color.Color
	ok    *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:     w,
		bold:  color.New(color.Bold),
		faint: color.New(color.Faint),
		warn:  color.New(color.FgYellow),
		ok:    color.New(color.FgGreen),
	}
}

func (p *printer) result(result extraction.Result) {
	_, _ = p.bold.Fprintln(p.w, result.Word)
	_, _ = p.faint.Fprintln(p.w, result.URL)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, result.Summary)
}

func (p *printer) notFound(result extraction.Result) {
	_, _ = p.warn.Fprintln(p.w, extraction.NotFoundMessage)
	_, _ = p.faint.Fprintln(p.w, result.URL)
}

func (p *printer) listings(listings []article.SummaryListing, withText bool) {
	if len(listings) == 0 {
		_, _ = p.warn.Fprintln(p.w, "No summaries cached.")
		return
	}
	for _, l := range listings {
		_, _ = p.bold.Fprintf(p.w, "%s", strings.ReplaceAll(l.Word, "_", " "))
		_, _ = p.faint.Fprintf(p.w, " (%d words, %s)\n", l.WordCount, l.CreatedAt.Format("2006-01-02 15:04"))
		if withText {
			fmt.Fprintf(p.w, "%s\n\n", l.SummaryText)
		}
	}
}

func (p *printer) success(format string, args ...any) {
	_, _ = p.ok.Fprintf(p.w, format+"\n", args...)
}
