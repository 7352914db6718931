package extraction

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/inference"
)

// memoryStore is an in-memory article.Store with the same unique keys as the schema.
type memoryStore struct {
	mu        sync.Mutex
	nextID    int64
	articles  map[string]*article.Article
	summaries map[string]*article.Summary
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		articles:  map[string]*article.Article{},
		summaries: map[string]*article.Summary{},
	}
}

func summaryKey(articleID int64, wordCount int) string {
	return fmt.Sprintf("%d#%d", articleID, wordCount)
}

func (m *memoryStore) FindArticleBySlug(_ context.Context, slug string) (*article.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[slug]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *memoryStore) FindSummary(_ context.Context, articleID int64, wordCount int) (*article.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.summaries[summaryKey(articleID, wordCount)]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (m *memoryStore) CreateArticle(_ context.Context, word, slug, cleanText string) (*article.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[slug]; ok {
		return nil, article.ErrConflict
	}
	m.nextID++
	a := &article.Article{ID: m.nextID, Word: word, WordSlug: slug, CleanText: cleanText, CreatedAt: time.Now()}
	m.articles[slug] = a
	copied := *a
	return &copied, nil
}

func (m *memoryStore) CreateSummary(_ context.Context, articleID int64, wordCount int, text string) (*article.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := summaryKey(articleID, wordCount)
	if _, ok := m.summaries[key]; ok {
		return nil, article.ErrConflict
	}
	m.nextID++
	s := &article.Summary{ID: m.nextID, ArticleID: articleID, WordCount: wordCount, SummaryText: text, CreatedAt: time.Now()}
	m.summaries[key] = s
	copied := *s
	return &copied, nil
}

func (m *memoryStore) ListSummaries(_ context.Context, filterSlug string) ([]article.SummaryListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	listings := []article.SummaryListing{}
	for _, a := range m.articles {
		if filterSlug != "" && a.WordSlug != filterSlug {
			continue
		}
		for _, s := range m.summaries {
			if s.ArticleID != a.ID {
				continue
			}
			listings = append(listings, article.SummaryListing{
				Word:        a.Word,
				WordSlug:    a.WordSlug,
				WordCount:   s.WordCount,
				SummaryText: s.SummaryText,
				CreatedAt:   s.CreatedAt,
			})
		}
	}
	sort.Slice(listings, func(i, j int) bool {
		if listings[i].Word != listings[j].Word {
			return listings[i].Word < listings[j].Word
		}
		return listings[i].WordCount < listings[j].WordCount
	})
	return listings, nil
}

func (m *memoryStore) counts() (articles, summaries int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.articles), len(m.summaries)
}

// stubFetcher serves a fixed page and counts calls. When release is set, every call waits on it.
type stubFetcher struct {
	calls   atomic.Int32
	page    string
	release chan struct{}
}

func (f *stubFetcher) Fetch(ctx context.Context, _ string) ([]byte, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []byte(f.page), nil
}

type stubSummarizer struct {
	calls atomic.Int32
}

func (s *stubSummarizer) Summarize(_ context.Context, params inference.SummarizeRequest) (inference.SummarizeResponse, error) {
	s.calls.Add(1)
	return inference.SummarizeResponse{
		Summary: fmt.Sprintf("resumo em %d palavras", params.WordCount),
	}, nil
}
