package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_summarizer.go -package=mock_inference

// Summarizer condenses article text with a language model.
type Summarizer interface {
	Summarize(ctx context.Context, params SummarizeRequest) (SummarizeResponse, error)
}

// SummarizeRequest holds the article text and the upper bound of words for its summary
type SummarizeRequest struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

const (
	DefaultMaxRetryAttempts = 2
)
