package article

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const mysqlDuplicateEntry = 1062

// DBStore implements Store using MySQL.
type DBStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBStore creates a new DBStore.
func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db, now: time.Now}
}

func (s *DBStore) FindArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	var a Article
	err := s.db.GetContext(ctx, &a, "SELECT * FROM wiki_article WHERE word_slug = ?", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(wiki_article) > %w", err)
	}
	return &a, nil
}

func (s *DBStore) FindSummary(ctx context.Context, articleID int64, wordCount int) (*Summary, error) {
	var summary Summary
	err := s.db.GetContext(ctx, &summary,
		"SELECT * FROM wiki_summary WHERE article_id = ? AND word_count = ? ORDER BY id LIMIT 1",
		articleID, wordCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(wiki_summary) > %w", err)
	}
	return &summary, nil
}

func (s *DBStore) CreateArticle(ctx context.Context, word, slug, cleanText string) (*Article, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO wiki_article (word, word_slug, clean_text) VALUES (?, ?, ?)",
		word, slug, cleanText)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, fmt.Errorf("insert wiki_article %q: %w", slug, ErrConflict)
		}
		return nil, fmt.Errorf("db.ExecContext(insert wiki_article) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId(wiki_article) > %w", err)
	}

	now := s.now()
	return &Article{
		ID:        id,
		Word:      word,
		WordSlug:  slug,
		CleanText: cleanText,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *DBStore) CreateSummary(ctx context.Context, articleID int64, wordCount int, text string) (*Summary, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO wiki_summary (article_id, word_count, summary_text) VALUES (?, ?, ?)",
		articleID, wordCount, text)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, fmt.Errorf("insert wiki_summary (%d, %d): %w", articleID, wordCount, ErrConflict)
		}
		return nil, fmt.Errorf("db.ExecContext(insert wiki_summary) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId(wiki_summary) > %w", err)
	}

	now := s.now()
	return &Summary{
		ID:          id,
		ArticleID:   articleID,
		WordCount:   wordCount,
		SummaryText: text,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *DBStore) ListSummaries(ctx context.Context, filterSlug string) ([]SummaryListing, error) {
	query := `SELECT a.word, a.word_slug, s.word_count, s.summary_text, s.created_at
		FROM wiki_summary s
		JOIN wiki_article a ON a.id = s.article_id`
	var args []any
	if filterSlug != "" {
		query += " WHERE a.word_slug = ?"
		args = append(args, filterSlug)
	}
	query += " ORDER BY a.word, s.word_count"

	listings := []SummaryListing{}
	if err := s.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(wiki_summary listings) > %w", err)
	}
	return listings, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
