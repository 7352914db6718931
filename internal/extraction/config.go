package extraction

import (
	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/config"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/inference/openai"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/wikipedia"
)

// NewPipelineFromConfig builds a Pipeline over the Wikipedia HTTP fetcher, the HTML cleaner and
// the OpenAI summarizer. The caller closes the returned client.
func NewPipelineFromConfig(cfg *config.Config, store article.Store) (*Pipeline, *openai.Client) {
	fetcher := wikipedia.NewHTTPFetcher(wikipedia.FetcherConfig{
		UserAgent:      cfg.Wikipedia.UserAgent,
		AcceptLanguage: cfg.Wikipedia.AcceptLanguage,
		Timeout:        cfg.Wikipedia.Timeout(),
		MaxRedirects:   cfg.Wikipedia.MaxRedirects,
		MaxRetries:     cfg.Wikipedia.MaxRetries,
	})
	client := openai.NewClient(openai.Config{
		APIKey:        cfg.OpenAI.APIKey,
		Model:         cfg.OpenAI.Model,
		BaseURL:       cfg.OpenAI.BaseURL,
		Timeout:       cfg.OpenAI.Timeout(),
		MaxRetries:    cfg.OpenAI.MaxRetries,
		MaxInputChars: cfg.OpenAI.MaxInputChars,
	})
	return NewPipeline(store, fetcher, wikipedia.NewHTMLCleaner(), client, cfg.Wikipedia.BaseURL), client
}
