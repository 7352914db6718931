// Package server provides the JSON HTTP API over the extraction pipeline.
package server

import (
	"context"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/config"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/extraction"
)

// Extractor produces the summary for a term.
type Extractor interface {
	Extract(ctx context.Context, rawWord string, wordCount int) (extraction.Result, error)
}

// SummaryLister lists cached summaries.
type SummaryLister interface {
	ListSummaries(ctx context.Context, filterSlug string) ([]article.SummaryListing, error)
}

// Handler serves the summarization API.
type Handler struct {
	extractor        Extractor
	lister           SummaryLister
	validate         *validator.Validate
	translator       ut.Translator
	defaultWordCount int
	maxWordCount     int
}

// NewHandler creates a new Handler.
func NewHandler(extractor Extractor, lister SummaryLister, cfg config.SummariesConfig) (*Handler, error) {
	validate, trans, err := config.NewValidator("query")
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator > %w", err)
	}
	return &Handler{
		extractor:        extractor,
		lister:           lister,
		validate:         validate,
		translator:       trans,
		defaultWordCount: cfg.DefaultWordCount,
		maxWordCount:     cfg.MaxWordCount,
	}, nil
}

// Routes returns the API routes.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /summarize", h.summarize)
	mux.HandleFunc("GET /summary/database", h.listSummaries)
	mux.HandleFunc("GET /summary/database/{word}", h.listSummariesByWord)
	return mux
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
