package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-proposal-be/internal/corpus"
	"job-proposal-be/internal/exception"
	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/vectorindex"
)

// fixedProvider embeds registered texts to fixed normalized vectors and
// everything else to a constant fallback vector.
type fixedProvider struct {
	dim      int
	fixed    map[string][]float32
	fallback []float32
}

func newFixedProvider(dim int) *fixedProvider {
	fallback := make([]float32, dim)
	fallback[dim-1] = 1
	return &fixedProvider{dim: dim, fixed: map[string][]float32{}, fallback: fallback}
}

func (p *fixedProvider) register(text string, vec []float32) {
	p.fixed[text] = vectorindex.NormalizeL2(vec)
}

func (p *fixedProvider) Dim() int { return p.dim }

func (p *fixedProvider) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := p.fixed[t]; ok {
			out[i] = v
			continue
		}
		out[i] = p.fallback
	}
	return out, nil
}

func newRetrievalFixture(t *testing.T, provider *fixedProvider, threshold float32) (IRetrievalService, *corpus.ResumeStore) {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNopLogger()
	embedder := corpus.NewEmbedder(provider)

	projects := corpus.NewProjectStore(dir, embedder, log)
	reviews := corpus.NewReviewStore(dir, embedder, log)
	resumes := corpus.NewResumeStore(dir, embedder, log)

	projectIx := vectorindex.New(provider.dim)
	require.NoError(t, projectIx.Add(
		vectorindex.Document{Text: "Project: marketplace API in Go"},
		provider.fallback,
	))
	projects.Replace(projectIx)

	reviewIx := vectorindex.New(provider.dim)
	require.NoError(t, reviewIx.Add(
		vectorindex.Document{Text: "Review: delivered on time"},
		provider.fallback,
	))
	reviews.Replace(reviewIx)

	svc := NewRetrievalService(projects, reviews, resumes, 3, 2, threshold, log)
	return svc, resumes
}

func TestRetrieveLowConfidenceResumeMatch(t *testing.T) {
	provider := newFixedProvider(4)
	requirement := "Build a mobile game in Unity"
	// orthogonal-ish vectors give a similarity well under 0.50
	provider.register(requirement, []float32{1, 0.2, 0, 0})
	provider.register("Jane Doe, Go developer.", []float32{0.2, 1, 0, 0})

	svc, resumes := newRetrievalFixture(t, provider, 0.50)
	require.NoError(t, resumes.Add(context.Background(), "Jane Doe", "Jane Doe, Go developer."))

	_, err := svc.Retrieve(context.Background(), requirement, "")
	require.Error(t, err)

	var ambiguous *exception.AmbiguousResumeError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, "Jane Doe", ambiguous.BestMatchName)
	assert.Less(t, ambiguous.Score, float32(0.50))
	assert.Equal(t, float32(0.50), ambiguous.Threshold)
}

func TestRetrieveConfidentResumeMatch(t *testing.T) {
	provider := newFixedProvider(4)
	requirement := "Build a marketplace API in Go"
	provider.register(requirement, []float32{1, 0.1, 0, 0})
	provider.register("Jane Doe, Go developer.", []float32{1, 0.2, 0, 0})

	svc, resumes := newRetrievalFixture(t, provider, 0.50)
	require.NoError(t, resumes.Add(context.Background(), "Jane Doe", "Jane Doe, Go developer."))

	bundle, err := svc.Retrieve(context.Background(), requirement, "")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", bundle.ResumeName)
	assert.Equal(t, "Jane Doe, Go developer.", bundle.ResumeText)
	assert.Contains(t, bundle.ProjectsText, "marketplace API")
	assert.Contains(t, bundle.ReviewsText, "delivered on time")
	assert.NotEmpty(t, bundle.CombinedContext)
}

func TestRetrieveExplicitResumeNameSkipsThreshold(t *testing.T) {
	provider := newFixedProvider(4)
	svc, resumes := newRetrievalFixture(t, provider, 0.50)
	require.NoError(t, resumes.Add(context.Background(), "Jane Doe", "Jane Doe, Go developer."))

	bundle, err := svc.Retrieve(context.Background(), "Anything at all", "jane doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", bundle.ResumeName)

	_, err = svc.Retrieve(context.Background(), "Anything at all", "nobody")
	require.Error(t, err)
	var appErr *exception.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestRetrieveEmptyResumeCorpus(t *testing.T) {
	provider := newFixedProvider(4)
	svc, _ := newRetrievalFixture(t, provider, 0.50)

	_, err := svc.Retrieve(context.Background(), "Build a thing", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, vectorindex.ErrEmptyIndex))
}
