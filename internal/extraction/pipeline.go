// Package extraction turns a user term into a cached summary of its Wikipedia article.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/inference"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/term"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/wikipedia"
)

// Result is the outcome of a successful extraction.
type Result struct {
	Word    string
	URL     string
	Summary string
}

// Pipeline looks up the cache and otherwise fetches, cleans, summarizes and persists.
// Articles and summaries are committed separately, so an article left without summaries
// is picked up again and only summarization runs.
type Pipeline struct {
	store      article.Store
	fetcher    wikipedia.Fetcher
	cleaner    wikipedia.Cleaner
	summarizer inference.Summarizer
	baseURL    string

	group singleflight.Group
}

// NewPipeline creates a new Pipeline. baseURL is the Wikipedia origin, e.g. https://pt.wikipedia.org.
func NewPipeline(
	store article.Store,
	fetcher wikipedia.Fetcher,
	cleaner wikipedia.Cleaner,
	summarizer inference.Summarizer,
	baseURL string,
) *Pipeline {
	return &Pipeline{
		store:      store,
		fetcher:    fetcher,
		cleaner:    cleaner,
		summarizer: summarizer,
		baseURL:    baseURL,
	}
}

// state is passed by value between stages; each stage returns an updated copy.
type state struct {
	word       string
	normalized string
	slug       string
	url        string
	wordCount  int

	raw       []byte
	cleanText string
	article   *article.Article
	summary   *article.Summary
	generated string
}

type stage func(ctx context.Context, s state) (state, error)

// Extract returns the summary of the article for rawWord bounded by wordCount words.
// Concurrent calls for the same term and word count share one execution, which keeps
// running when the caller's context is canceled so the cache still gets filled.
// A canceled caller stops waiting and gets ctx.Err() wrapped.
func (p *Pipeline) Extract(ctx context.Context, rawWord string, wordCount int) (Result, error) {
	s, err := p.normalize(rawWord, wordCount)
	if err != nil {
		return Result{Word: s.word, URL: s.url}, err
	}

	key := s.slug + "#" + strconv.Itoa(wordCount)
	ch := p.group.DoChan(key, func() (any, error) {
		done, err := p.run(context.WithoutCancel(ctx), s)
		if err != nil {
			return nil, err
		}
		return done.summaryText(), nil
	})

	select {
	case <-ctx.Done():
		slog.Default().Info("caller gave up waiting, extraction continues", "key", key, "error", ctx.Err())
		return Result{Word: s.word, URL: s.url}, fmt.Errorf("wait for extraction of %q: %w", s.word, ctx.Err())
	case res := <-ch:
		if res.Shared {
			slog.Default().Debug("shared in-flight extraction", "key", key)
		}
		if res.Err != nil {
			return Result{Word: s.word, URL: s.url}, s.rebind(res.Err)
		}
		return Result{Word: s.word, URL: s.url, Summary: res.Val.(string)}, nil
	}
}

func (p *Pipeline) normalize(rawWord string, wordCount int) (state, error) {
	s := state{
		word:      strings.TrimSpace(rawWord),
		wordCount: wordCount,
	}
	s.normalized = term.Normalize(rawWord)
	if s.normalized == "" {
		return s, s.fail(KindInvalidTerm, ErrInvalidTerm)
	}
	s.slug = term.Slug(s.normalized)
	s.url = term.URL(p.baseURL, rawWord)
	if wordCount < 1 {
		return s, s.fail(KindInvalidTerm, fmt.Errorf("%w: %d", ErrInvalidWordCount, wordCount))
	}
	return s, nil
}

func (p *Pipeline) run(ctx context.Context, s state) (state, error) {
	s, err := p.lookup(ctx, s)
	if err != nil {
		return s, err
	}

	logger := slog.Default().With("word", s.normalized, "wordCount", s.wordCount)
	switch {
	case s.summary != nil:
		logger.Info("load from database")
		return s, nil
	case s.article != nil:
		logger.Info("generate new summary", "articleID", s.article.ID)
	default:
		logger.Info("load from wikipedia", "url", s.url)
		for _, next := range []stage{p.fetch, p.clean, p.persistArticle} {
			if s, err = next(ctx, s); err != nil {
				return s, err
			}
		}
	}

	for _, next := range []stage{p.summarize, p.persistSummary} {
		if s, err = next(ctx, s); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (p *Pipeline) lookup(ctx context.Context, s state) (state, error) {
	a, err := p.store.FindArticleBySlug(ctx, s.slug)
	if err != nil {
		return s, s.fail(KindStore, fmt.Errorf("store.FindArticleBySlug > %w", err))
	}
	if a == nil {
		return s, nil
	}
	s.article = a

	summary, err := p.store.FindSummary(ctx, a.ID, s.wordCount)
	if err != nil {
		return s, s.fail(KindStore, fmt.Errorf("store.FindSummary > %w", err))
	}
	s.summary = summary
	return s, nil
}

func (p *Pipeline) fetch(ctx context.Context, s state) (state, error) {
	raw, err := p.fetcher.Fetch(ctx, s.url)
	if err != nil {
		if errors.Is(err, wikipedia.ErrNotFound) {
			return s, s.fail(KindPageNotFound, err)
		}
		return s, s.fail(KindFetchFailed, fmt.Errorf("fetcher.Fetch > %w", err))
	}
	s.raw = raw
	return s, nil
}

func (p *Pipeline) clean(_ context.Context, s state) (state, error) {
	text, err := p.cleaner.Clean(s.raw)
	switch {
	case errors.Is(err, wikipedia.ErrPageNotFound):
		return s, s.fail(KindPageNotFound, err)
	case errors.Is(err, wikipedia.ErrNoExtractableText):
		return s, s.fail(KindNoExtractableText, err)
	case err != nil:
		slog.Default().Error("Failed to parse wikipedia page",
			"url", s.url,
			"size", len(s.raw),
			"error", err)
		return s, s.fail(KindNoExtractableText, fmt.Errorf("cleaner.Clean > %w", err))
	}
	s.raw = nil
	s.cleanText = text
	return s, nil
}

func (p *Pipeline) persistArticle(ctx context.Context, s state) (state, error) {
	a, err := p.store.CreateArticle(ctx, s.normalized, s.slug, s.cleanText)
	if errors.Is(err, article.ErrConflict) {
		winner, findErr := p.store.FindArticleBySlug(ctx, s.slug)
		if findErr != nil || winner == nil {
			return s, s.fail(KindStoreConflict, errors.Join(err, findErr))
		}
		slog.Default().Info("article created concurrently, reusing it", "slug", s.slug, "articleID", winner.ID)
		a, err = winner, nil
	}
	if err != nil {
		return s, s.fail(KindStore, fmt.Errorf("store.CreateArticle > %w", err))
	}
	s.article = a
	return s, nil
}

func (p *Pipeline) summarize(ctx context.Context, s state) (state, error) {
	response, err := p.summarizer.Summarize(ctx, inference.SummarizeRequest{
		Text:      s.article.CleanText,
		WordCount: s.wordCount,
	})
	if err != nil {
		return s, s.fail(KindSummarizationFailed, fmt.Errorf("summarizer.Summarize > %w", err))
	}
	s.generated = response.Summary
	return s, nil
}

func (p *Pipeline) persistSummary(ctx context.Context, s state) (state, error) {
	summary, err := p.store.CreateSummary(ctx, s.article.ID, s.wordCount, s.generated)
	if errors.Is(err, article.ErrConflict) {
		winner, findErr := p.store.FindSummary(ctx, s.article.ID, s.wordCount)
		if findErr != nil || winner == nil {
			return s, s.fail(KindStoreConflict, errors.Join(err, findErr))
		}
		summary, err = winner, nil
	}
	if err != nil {
		return s, s.fail(KindStore, fmt.Errorf("store.CreateSummary > %w", err))
	}
	s.summary = summary
	return s, nil
}

func (s state) summaryText() string {
	if s.summary == nil {
		return s.generated
	}
	return s.summary.SummaryText
}

func (s state) fail(kind Kind, err error) *Error {
	return &Error{Kind: kind, Term: s.word, URL: s.url, Err: err}
}

// rebind reports a shared failure under this caller's own term and URL.
func (s state) rebind(err error) error {
	var extractionErr *Error
	if !errors.As(err, &extractionErr) {
		return s.fail(KindStore, err)
	}
	rebound := *extractionErr
	rebound.Term = s.word
	rebound.URL = s.url
	return &rebound
}
