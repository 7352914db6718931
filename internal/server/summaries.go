package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/config"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/extraction"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/term"
)

type summarizeQuery struct {
	Word      string `query:"word" validate:"required"`
	WordCount int    `query:"word_count" validate:"min=1"`
}

type summarizeResponse struct {
	Word    string `json:"word"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// articleMessageResponse reports a failure tied to a known article URL.
type articleMessageResponse struct {
	Word    string `json:"word"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

type summaryItem struct {
	Word      string    `json:"word"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

type summaryDetail struct {
	Word      string    `json:"word"`
	WordCount int       `json:"word_count"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

type summariesResponse[T summaryItem | summaryDetail] struct {
	Summaries []T `json:"summaries"`
}

func (h *Handler) summarize(w http.ResponseWriter, r *http.Request) {
	query := summarizeQuery{
		Word:      r.URL.Query().Get("word"),
		WordCount: h.defaultWordCount,
	}
	if raw := r.URL.Query().Get("word_count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "word_count must be an integer")
			return
		}
		query.WordCount = n
	}
	if err := h.validate.Struct(query); err != nil {
		writeMessage(w, http.StatusBadRequest, config.TranslateError(err, h.translator))
		return
	}
	if h.maxWordCount > 0 && query.WordCount > h.maxWordCount {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("word_count must be %d or less", h.maxWordCount))
		return
	}

	result, err := h.extractor.Extract(r.Context(), query.Word, query.WordCount)
	if err == nil {
		writeJSON(w, http.StatusOK, summarizeResponse{
			Word:    result.Word,
			URL:     result.URL,
			Summary: result.Summary,
		})
		return
	}

	kind := extraction.KindOf(err)
	switch {
	case kind.NotFound():
		writeJSON(w, http.StatusOK, articleMessageResponse{
			Word:    result.Word,
			URL:     result.URL,
			Message: extraction.NotFoundMessage,
		})
	case kind == extraction.KindInvalidTerm:
		message := "word must contain at least one non-space character"
		if errors.Is(err, extraction.ErrInvalidWordCount) {
			message = "word_count must be 1 or greater"
		}
		writeMessage(w, http.StatusBadRequest, message)
	case kind == extraction.KindFetchFailed:
		slog.Default().Error("Failed to fetch wikipedia page", "word", result.Word, "url", result.URL, "error", err)
		writeJSON(w, http.StatusBadGateway, articleMessageResponse{
			Word:    result.Word,
			URL:     result.URL,
			Message: "Failed to fetch the Wikipedia page.",
		})
	case kind == extraction.KindSummarizationFailed:
		slog.Default().Error("Failed to summarize article", "word", result.Word, "url", result.URL, "error", err)
		writeJSON(w, http.StatusBadGateway, articleMessageResponse{
			Word:    result.Word,
			URL:     result.URL,
			Message: "Failed to summarize the Wikipedia article.",
		})
	default:
		slog.Default().Error("Failed to extract summary", "word", result.Word, "kind", kind, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func (h *Handler) listSummaries(w http.ResponseWriter, r *http.Request) {
	listings, ok := h.fetchListings(w, r, "")
	if !ok {
		return
	}
	items := make([]summaryItem, 0, len(listings))
	for _, l := range listings {
		items = append(items, summaryItem{
			Word:      l.Word,
			WordCount: l.WordCount,
			CreatedAt: l.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, summariesResponse[summaryItem]{Summaries: items})
}

func (h *Handler) listSummariesByWord(w http.ResponseWriter, r *http.Request) {
	slug := term.Slug(term.Normalize(r.PathValue("word")))
	if slug == "" {
		writeJSON(w, http.StatusOK, summariesResponse[summaryDetail]{Summaries: []summaryDetail{}})
		return
	}
	listings, ok := h.fetchListings(w, r, slug)
	if !ok {
		return
	}
	items := make([]summaryDetail, 0, len(listings))
	for _, l := range listings {
		items = append(items, summaryDetail{
			Word:      l.Word,
			WordCount: l.WordCount,
			Summary:   l.SummaryText,
			CreatedAt: l.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, summariesResponse[summaryDetail]{Summaries: items})
}

func (h *Handler) fetchListings(w http.ResponseWriter, r *http.Request, slug string) ([]article.SummaryListing, bool) {
	listings, err := h.lister.ListSummaries(r.Context(), slug)
	if err != nil {
		slog.Default().Error("Failed to list summaries", "slug", slug, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
		return nil, false
	}
	return listings, true
}
