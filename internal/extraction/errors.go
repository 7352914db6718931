package extraction

import (
	"errors"
	"fmt"
)

// NotFoundMessage is shown to callers for every error of the not-found class.
const NotFoundMessage = "Wikipedia page not found for the given word."

var (
	ErrInvalidTerm      = errors.New("term is empty after normalization")
	ErrInvalidWordCount = errors.New("word count must be at least 1")
)

// Kind classifies pipeline failures.
type Kind int

const (
	KindInvalidTerm Kind = iota + 1
	KindPageNotFound
	KindNoExtractableText
	KindFetchFailed
	KindSummarizationFailed
	KindStoreConflict
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindInvalidTerm:
		return "invalid term"
	case KindPageNotFound:
		return "page not found"
	case KindNoExtractableText:
		return "no extractable text"
	case KindFetchFailed:
		return "fetch failed"
	case KindSummarizationFailed:
		return "summarization failed"
	case KindStoreConflict:
		return "store conflict"
	case KindStore:
		return "store failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NotFound reports whether the kind means there is no article to summarize.
func (k Kind) NotFound() bool {
	return k == KindPageNotFound || k == KindNoExtractableText
}

// Error is returned by Pipeline.Extract for every failure.
type Error struct {
	Kind Kind
	// Term is the trimmed input word.
	Term string
	// URL is the canonical article URL, empty when the term is invalid.
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %q: %s: %v", e.Term, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or zero if err is not an *Error.
func KindOf(err error) Kind {
	var extractionErr *Error
	if errors.As(err, &extractionErr) {
		return extractionErr.Kind
	}
	return 0
}
