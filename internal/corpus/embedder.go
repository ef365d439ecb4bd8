package corpus

import (
	"context"
	"time"

	"job-proposal-be/pkg/embedding"

	gocache "github.com/patrickmn/go-cache"
)

// Embedder wraps an embedding provider with a short-lived cache for
// query vectors, so the three corpus lookups for one requirement hit
// the provider once.
type Embedder struct {
	provider embedding.Provider
	queries  *gocache.Cache
}

func NewEmbedder(provider embedding.Provider) *Embedder {
	return &Embedder{
		provider: provider,
		queries:  gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (e *Embedder) Dim() int {
	return e.provider.Dim()
}

// Query embeds a single search query, serving repeats from cache.
func (e *Embedder) Query(ctx context.Context, text string) ([]float32, error) {
	if cached, found := e.queries.Get(text); found {
		return cached.([]float32), nil
	}
	vecs, err := e.provider.Embed(ctx, []string{text}, embedding.TaskQuery)
	if err != nil {
		return nil, err
	}
	e.queries.SetDefault(text, vecs[0])
	return vecs[0], nil
}

// Documents embeds corpus texts for indexing. Never cached: document
// embedding happens on ingest paths where staleness would corrupt the
// index.
func (e *Embedder) Documents(ctx context.Context, texts []string) ([][]float32, error) {
	return e.provider.Embed(ctx, texts, embedding.TaskDocument)
}
