// Package article provides the cached article and summary models and their store.
package article

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=article.go -destination=../mocks/article/mock_article.go -package=mock_article

// ErrConflict is returned when an insert collides with a row created concurrently.
var ErrConflict = errors.New("article store conflict")

// Article is the cleaned text of one Wikipedia page, keyed by its lowercased normalized term.
type Article struct {
	ID        int64     `db:"id" yaml:"id"`
	Word      string    `db:"word" yaml:"word"`
	WordSlug  string    `db:"word_slug" yaml:"word_slug"`
	CleanText string    `db:"clean_text" yaml:"-"`
	CreatedAt time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at"`
}

// Summary is a generated summary of an article for one requested word count.
type Summary struct {
	ID          int64     `db:"id" yaml:"id"`
	ArticleID   int64     `db:"article_id" yaml:"article_id"`
	WordCount   int       `db:"word_count" yaml:"word_count"`
	SummaryText string    `db:"summary_text" yaml:"summary_text"`
	CreatedAt   time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" yaml:"updated_at"`
}

// SummaryListing is a summary joined with the word of its article.
type SummaryListing struct {
	Word        string    `db:"word" yaml:"word"`
	WordSlug    string    `db:"word_slug" yaml:"word_slug"`
	WordCount   int       `db:"word_count" yaml:"word_count"`
	SummaryText string    `db:"summary_text" yaml:"summary"`
	CreatedAt   time.Time `db:"created_at" yaml:"created_at"`
}

// Store persists articles and summaries.
// Finders return (nil, nil) when nothing matches. Creators return ErrConflict on a unique key collision.
type Store interface {
	FindArticleBySlug(ctx context.Context, slug string) (*Article, error)
	FindSummary(ctx context.Context, articleID int64, wordCount int) (*Summary, error)
	CreateArticle(ctx context.Context, word, slug, cleanText string) (*Article, error)
	CreateSummary(ctx context.Context, articleID int64, wordCount int, text string) (*Summary, error)
	// ListSummaries returns summaries ordered by word. An empty filterSlug lists all of them.
	ListSummaries(ctx context.Context, filterSlug string) ([]SummaryListing, error)
}
