package embedding

import "context"

// Embedding task types, following the Gemini API naming. Providers that
// do not distinguish tasks ignore the hint.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// Provider generates text embeddings. Implementations return
// L2-normalized vectors so inner-product search reads as cosine
// similarity.
type Provider interface {
	Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error)
	Dim() int
}
