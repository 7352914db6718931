// Package wikipedia fetches article pages and reduces them to plain prose.
package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

//go:generate mockgen -source=wikipedia.go -destination=../mocks/wikipedia/mock_wikipedia.go -package=mock_wikipedia

// Fetcher retrieves the raw markup of an article page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Cleaner reduces raw article markup to plain text.
type Cleaner interface {
	Clean(raw []byte) (string, error)
}

var (
	// ErrNotFound is returned by a Fetcher when the page responds with 404.
	ErrNotFound = errors.New("wikipedia page not found")
	// ErrPageNotFound is returned by a Cleaner when the page is Wikipedia's "no article" page.
	ErrPageNotFound = errors.New("wikipedia page has no article")
	// ErrNoExtractableText is returned by a Cleaner when nothing is left after cleaning.
	ErrNoExtractableText = errors.New("no extractable text")
)

// TransportError is any fetch failure other than a 404: network errors and non-2xx responses.
// StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status code %d: %v", e.URL, e.StatusCode, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the request may succeed.
func (e *TransportError) Temporary() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}
