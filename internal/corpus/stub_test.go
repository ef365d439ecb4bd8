package corpus

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync/atomic"

	"job-proposal-be/pkg/vectorindex"
)

// stubProvider returns fixed vectors for registered texts and a
// deterministic hash-derived vector otherwise. All outputs are
// L2-normalized, matching the real providers.
type stubProvider struct {
	dim   int
	fixed map[string][]float32
	calls atomic.Int64
}

func newStubProvider(dim int) *stubProvider {
	return &stubProvider{dim: dim, fixed: map[string][]float32{}}
}

func (p *stubProvider) register(text string, vec []float32) {
	if len(vec) != p.dim {
		panic(fmt.Sprintf("stub vector dim %d, want %d", len(vec), p.dim))
	}
	p.fixed[text] = vectorindex.NormalizeL2(vec)
}

func (p *stubProvider) Dim() int { return p.dim }

func (p *stubProvider) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	p.calls.Add(1)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := p.fixed[t]; ok {
			out[i] = v
			continue
		}
		out[i] = p.hashVector(t)
	}
	return out, nil
}

func (p *stubProvider) hashVector(text string) []float32 {
	v := make([]float32, p.dim)
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum32()
	for i := range v {
		seed = seed*1664525 + 1013904223
		v[i] = float32(seed%1000)/500.0 - 1.0
	}
	return vectorindex.NormalizeL2(v)
}
