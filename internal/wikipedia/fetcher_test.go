package wikipedia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPFetcher(t *testing.T) {
	fetcher := NewHTTPFetcher(FetcherConfig{MaxRetries: 2})
	require.NotNil(t, fetcher)
	assert.Equal(t, uint(2), fetcher.maxRetries)
	assert.Equal(t, DefaultTimeout, fetcher.httpClient.GetClient().Timeout)
	assert.Equal(t, DefaultUserAgent, fetcher.httpClient.Header.Get("User-Agent"))
	assert.Equal(t, DefaultAcceptLanguage, fetcher.httpClient.Header.Get("Accept-Language"))
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name        string
		maxRetries  uint
		statusCodes []int

		wantBody       string
		wantRequests   int32
		wantNotFound   bool
		wantStatusCode int
	}{
		{
			name:         "success",
			statusCodes:  []int{http.StatusOK},
			wantBody:     "<html>ok</html>",
			wantRequests: 1,
		},
		{
			name:         "404 is not found and never retried",
			maxRetries:   3,
			statusCodes:  []int{http.StatusNotFound},
			wantNotFound: true,
			wantRequests: 1,
		},
		{
			name:         "5xx is retried until success",
			maxRetries:   2,
			statusCodes:  []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusOK},
			wantBody:     "<html>ok</html>",
			wantRequests: 3,
		},
		{
			name:           "429 exhausts retries",
			maxRetries:     1,
			statusCodes:    []int{http.StatusTooManyRequests, http.StatusTooManyRequests},
			wantRequests:   2,
			wantStatusCode: http.StatusTooManyRequests,
		},
		{
			name:           "other 4xx is not retried",
			maxRetries:     3,
			statusCodes:    []int{http.StatusForbidden},
			wantRequests:   1,
			wantStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := requests.Add(1)
				assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
				assert.Equal(t, DefaultAcceptLanguage, r.Header.Get("Accept-Language"))

				status := tt.statusCodes[len(tt.statusCodes)-1]
				if int(n) <= len(tt.statusCodes) {
					status = tt.statusCodes[n-1]
				}
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte("<html>ok</html>"))
				}
			}))
			defer server.Close()

			fetcher := NewHTTPFetcher(FetcherConfig{
				MaxRetries: tt.maxRetries,
				RetryDelay: time.Millisecond,
			})
			got, err := fetcher.Fetch(context.Background(), server.URL+"/wiki/Python")
			assert.Equal(t, tt.wantRequests, requests.Load())

			switch {
			case tt.wantNotFound:
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNotFound)
			case tt.wantStatusCode != 0:
				require.Error(t, err)
				var transportErr *TransportError
				require.True(t, errors.As(err, &transportErr))
				assert.Equal(t, tt.wantStatusCode, transportErr.StatusCode)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(got))
			}
		})
	}
}

func TestHTTPFetcher_Fetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/Brasil", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/wiki/Brazil", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/wiki/Brazil", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("redirected"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	got, err := NewHTTPFetcher(FetcherConfig{}).Fetch(context.Background(), server.URL+"/wiki/Brasil")
	require.NoError(t, err)
	assert.Equal(t, "redirected", string(got))
}

func TestHTTPFetcher_Fetch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPFetcher(FetcherConfig{RetryDelay: time.Millisecond}).Fetch(context.Background(), url)
	require.Error(t, err)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
	assert.True(t, transportErr.Temporary())
}

func TestTransportError_Temporary(t *testing.T) {
	tests := []struct {
		statusCode int
		want       bool
	}{
		{statusCode: 0, want: true},
		{statusCode: http.StatusTooManyRequests, want: true},
		{statusCode: http.StatusInternalServerError, want: true},
		{statusCode: http.StatusBadRequest, want: false},
		{statusCode: http.StatusGone, want: false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			err := &TransportError{StatusCode: tt.statusCode, Err: errors.New("boom")}
			assert.Equal(t, tt.want, err.Temporary())
		})
	}
}
