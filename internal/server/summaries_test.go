package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/config"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/extraction"
	mock_article "github.com/sekirofabio/desafio-tecnico-itau/internal/mocks/article"
	mock_inference "github.com/sekirofabio/desafio-tecnico-itau/internal/mocks/inference"
	mock_wikipedia "github.com/sekirofabio/desafio-tecnico-itau/internal/mocks/wikipedia"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/wikipedia"
)

var testSummariesConfig = config.SummariesConfig{DefaultWordCount: 150, MaxWordCount: 500}

type extractorFunc func(ctx context.Context, rawWord string, wordCount int) (extraction.Result, error)

func (f extractorFunc) Extract(ctx context.Context, rawWord string, wordCount int) (extraction.Result, error) {
	return f(ctx, rawWord, wordCount)
}

func serve(t *testing.T, handler *Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestHandler_Health(t *testing.T) {
	handler, err := NewHandler(nil, nil, testSummariesConfig)
	require.NoError(t, err)

	rec, body := serve(t, handler, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, body)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestHandler_Summarize(t *testing.T) {
	result := extraction.Result{Word: "Python", URL: "https://pt.wikipedia.org/wiki/Python"}

	tests := []struct {
		name          string
		target        string
		extractErr    error
		summary       *string
		wantWordCount int
		wantExtract   bool

		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:          "summary with default word count",
			target:        "/summarize?word=Python",
			wantExtract:   true,
			wantWordCount: 150,
			wantStatus:    http.StatusOK,
			wantBody: map[string]any{
				"word":    "Python",
				"url":     "https://pt.wikipedia.org/wiki/Python",
				"summary": "Resumo.",
			},
		},
		{
			name:          "explicit word count",
			target:        "/summarize?word=Python&word_count=20",
			wantExtract:   true,
			wantWordCount: 20,
			wantStatus:    http.StatusOK,
			wantBody: map[string]any{
				"word":    "Python",
				"url":     "https://pt.wikipedia.org/wiki/Python",
				"summary": "Resumo.",
			},
		},
		{
			name:          "empty summary keeps the summary field",
			target:        "/summarize?word=Python",
			summary:       new(string),
			wantExtract:   true,
			wantWordCount: 150,
			wantStatus:    http.StatusOK,
			wantBody: map[string]any{
				"word":    "Python",
				"url":     "https://pt.wikipedia.org/wiki/Python",
				"summary": "",
			},
		},
		{
			name:       "missing word",
			target:     "/summarize",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"message": "word is a required field"},
		},
		{
			name:       "non numeric word count",
			target:     "/summarize?word=Python&word_count=abc",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"message": "word_count must be an integer"},
		},
		{
			name:       "zero word count",
			target:     "/summarize?word=Python&word_count=0",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"message": "word_count must be 1 or greater"},
		},
		{
			name:       "word count above the maximum",
			target:     "/summarize?word=Python&word_count=501",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"message": "word_count must be 500 or less"},
		},
		{
			name:          "blank word",
			target:        "/summarize?word=%20%20",
			wantExtract:   true,
			wantWordCount: 150,
			extractErr:    &extraction.Error{Kind: extraction.KindInvalidTerm, Err: extraction.ErrInvalidTerm},
			wantStatus:    http.StatusBadRequest,
			wantBody:      map[string]any{"message": "word must contain at least one non-space character"},
		},
		{
			name:          "no extractable text is reported as not found",
			target:        "/summarize?word=Python",
			wantExtract:   true,
			wantWordCount: 150,
			extractErr:    &extraction.Error{Kind: extraction.KindNoExtractableText, Err: wikipedia.ErrNoExtractableText},
			wantStatus:    http.StatusOK,
			wantBody: map[string]any{
				"word":    "Python",
				"url":     "https://pt.wikipedia.org/wiki/Python",
				"message": extraction.NotFoundMessage,
			},
		},
		{
			name:          "fetch failure",
			target:        "/summarize?word=Python",
			wantExtract:   true,
			wantWordCount: 150,
			extractErr:    &extraction.Error{Kind: extraction.KindFetchFailed, Err: errors.New("timeout")},
			wantStatus:    http.StatusBadGateway,
			wantBody: map[string]any{
				"word":    "Python",
				"url":     "https://pt.wikipedia.org/wiki/Python",
				"message": "Failed to fetch the Wikipedia page.",
			},
		},
		{
			name:          "summarization failure",
			target:        "/summarize?word=Python",
			wantExtract:   true,
			wantWordCount: 150,
			extractErr:    &extraction.Error{Kind: extraction.KindSummarizationFailed, Err: errors.New("response error 500")},
			wantStatus:    http.StatusBadGateway,
			wantBody: map[string]any{
				"word":    "Python",
				"url":     "https://pt.wikipedia.org/wiki/Python",
				"message": "Failed to summarize the Wikipedia article.",
			},
		},
		{
			name:          "store failure",
			target:        "/summarize?word=Python",
			wantExtract:   true,
			wantWordCount: 150,
			extractErr:    &extraction.Error{Kind: extraction.KindStore, Err: errors.New("connection refused")},
			wantStatus:    http.StatusInternalServerError,
			wantBody:      map[string]any{"message": "Internal server error."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			extractor := extractorFunc(func(ctx context.Context, rawWord string, wordCount int) (extraction.Result, error) {
				called = true
				assert.Equal(t, tt.wantWordCount, wordCount)
				if tt.extractErr != nil {
					return result, tt.extractErr
				}
				summary := "Resumo."
				if tt.summary != nil {
					summary = *tt.summary
				}
				return extraction.Result{Word: result.Word, URL: result.URL, Summary: summary}, nil
			})
			handler, err := NewHandler(extractor, nil, testSummariesConfig)
			require.NoError(t, err)

			rec, body := serve(t, handler, tt.target)
			assert.Equal(t, tt.wantExtract, called)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestHandler_Summarize_PageNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_article.NewMockStore(ctrl)
	fetcher := mock_wikipedia.NewMockFetcher(ctrl)
	store.EXPECT().FindArticleBySlug(gomock.Any(), "nosuchterm123").Return(nil, nil)
	fetcher.EXPECT().Fetch(gomock.Any(), "https://pt.wikipedia.org/wiki/Nosuchterm123").Return(nil, wikipedia.ErrNotFound)

	pipeline := extraction.NewPipeline(store, fetcher,
		mock_wikipedia.NewMockCleaner(ctrl), mock_inference.NewMockSummarizer(ctrl),
		"https://pt.wikipedia.org")
	handler, err := NewHandler(pipeline, store, testSummariesConfig)
	require.NoError(t, err)

	rec, body := serve(t, handler, "/summarize?word=NoSuchTerm123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{
		"word":    "NoSuchTerm123",
		"url":     "https://pt.wikipedia.org/wiki/Nosuchterm123",
		"message": "Wikipedia page not found for the given word.",
	}, body)
}

func TestHandler_ListSummaries(t *testing.T) {
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	listings := []article.SummaryListing{
		{Word: "Python", WordSlug: "python", WordCount: 20, SummaryText: "Curto.", CreatedAt: createdAt},
		{Word: "Python", WordSlug: "python", WordCount: 100, SummaryText: "Longo.", CreatedAt: createdAt},
	}

	tests := []struct {
		name      string
		target    string
		setupMock func(store *mock_article.MockStore)

		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:   "all summaries without text",
			target: "/summary/database",
			setupMock: func(store *mock_article.MockStore) {
				store.EXPECT().ListSummaries(gomock.Any(), "").Return(listings, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"summaries": []any{
					map[string]any{"word": "Python", "word_count": float64(20), "created_at": "2025-01-02T03:04:05Z"},
					map[string]any{"word": "Python", "word_count": float64(100), "created_at": "2025-01-02T03:04:05Z"},
				},
			},
		},
		{
			name:   "summaries of one word with text",
			target: "/summary/database/PYTHON",
			setupMock: func(store *mock_article.MockStore) {
				store.EXPECT().ListSummaries(gomock.Any(), "python").Return(listings[:1], nil)
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"summaries": []any{
					map[string]any{"word": "Python", "word_count": float64(20), "summary": "Curto.", "created_at": "2025-01-02T03:04:05Z"},
				},
			},
		},
		{
			name:   "empty summary text is still reported",
			target: "/summary/database/python",
			setupMock: func(store *mock_article.MockStore) {
				store.EXPECT().ListSummaries(gomock.Any(), "python").Return([]article.SummaryListing{
					{Word: "Python", WordSlug: "python", WordCount: 5, CreatedAt: createdAt},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"summaries": []any{
					map[string]any{"word": "Python", "word_count": float64(5), "summary": "", "created_at": "2025-01-02T03:04:05Z"},
				},
			},
		},
		{
			name:   "multi word term uses the canonical key",
			target: "/summary/database/casa%20de%20papel",
			setupMock: func(store *mock_article.MockStore) {
				store.EXPECT().ListSummaries(gomock.Any(), "casa_de_papel").Return([]article.SummaryListing{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"summaries": []any{}},
		},
		{
			name:       "blank word lists nothing",
			target:     "/summary/database/%20",
			setupMock:  func(store *mock_article.MockStore) {},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"summaries": []any{}},
		},
		{
			name:   "store failure",
			target: "/summary/database",
			setupMock: func(store *mock_article.MockStore) {
				store.EXPECT().ListSummaries(gomock.Any(), "").Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"message": "Internal server error."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mock_article.NewMockStore(ctrl)
			tt.setupMock(store)

			handler, err := NewHandler(nil, store, testSummariesConfig)
			require.NoError(t, err)

			rec, body := serve(t, handler, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
