package corpus

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"job-proposal-be/internal/exception"
	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResumeStore(t *testing.T) (*ResumeStore, *stubProvider) {
	t.Helper()
	provider := newStubProvider(4)
	store := NewResumeStore(t.TempDir(), NewEmbedder(provider), logger.NewNopLogger())
	return store, provider
}

func TestResumeAddAndGetByName(t *testing.T) {
	store, _ := newTestResumeStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "JohnDoe", "John Doe. Flutter developer, 6 years."))
	require.NoError(t, store.Add(ctx, "JaneRoe", "Jane Roe. PHP and Laravel specialist."))

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"JohnDoe", "JaneRoe"}, store.Names())

	match, ok := store.GetByName("johndoe") // lookup is case-insensitive
	require.True(t, ok)
	assert.Equal(t, "JohnDoe", match.Name)
	assert.Contains(t, match.Text, "Flutter")

	_, ok = store.GetByName("nobody")
	assert.False(t, ok)
}

func TestResumeDuplicateNameRejected(t *testing.T) {
	store, _ := newTestResumeStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "JohnDoe", "original text"))

	err := store.Add(ctx, "JOHNDOE", "different text")
	require.Error(t, err)
	var appErr *exception.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	// Corpus unchanged after the failed call.
	assert.Equal(t, 1, store.Len())
	match, ok := store.GetByName("JohnDoe")
	require.True(t, ok)
	assert.Equal(t, "original text", match.Text)
}

func TestResumeDeleteRebuildsIndex(t *testing.T) {
	store, _ := newTestResumeStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "A", "resume a"))
	require.NoError(t, store.Add(ctx, "B", "resume b"))
	require.NoError(t, store.Add(ctx, "C", "resume c"))

	deleted, err := store.Delete(ctx, "b")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, ok := store.GetByName("B")
	assert.False(t, ok)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"A", "C"}, store.Names())

	// Unknown name leaves the corpus untouched.
	deleted, err = store.Delete(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 2, store.Len())
}

func TestResumeDeleteLastEntryEmptiesStore(t *testing.T) {
	store, _ := newTestResumeStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "Solo", "only resume"))
	deleted, err := store.Delete(ctx, "Solo")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 0, store.Len())

	_, err = store.BestMatch(ctx, "anything")
	assert.ErrorIs(t, err, vectorindex.ErrEmptyIndex)
}

func TestResumeBestMatchScores(t *testing.T) {
	store, provider := newTestResumeStore(t)
	ctx := context.Background()

	provider.register("flutter resume", []float32{1, 0, 0, 0})
	provider.register("php resume", []float32{0, 1, 0, 0})
	provider.register("need a flutter app", []float32{0.9, 0.1, 0, 0})

	require.NoError(t, store.Add(ctx, "FlutterDev", "flutter resume"))
	require.NoError(t, store.Add(ctx, "PhpDev", "php resume"))

	match, err := store.BestMatch(ctx, "need a flutter app")
	require.NoError(t, err)
	assert.Equal(t, "FlutterDev", match.Name)
	assert.Greater(t, match.Score, float32(0.9))
	assert.LessOrEqual(t, match.Score, float32(1.0001))
}

func TestResumeSaveLoadRoundTrip(t *testing.T) {
	provider := newStubProvider(4)
	embedder := NewEmbedder(provider)
	dir := t.TempDir()
	ctx := context.Background()

	store := NewResumeStore(dir, embedder, logger.NewNopLogger())
	require.NoError(t, store.Load()) // missing index is an empty store
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Add(ctx, "JohnDoe", "john's resume"))
	require.NoError(t, store.Save())

	reloaded := NewResumeStore(dir, embedder, logger.NewNopLogger())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 1, reloaded.Len())
	match, ok := reloaded.GetByName("JohnDoe")
	require.True(t, ok)
	assert.Equal(t, "john's resume", match.Text)
}

// Exercises concurrent Add and BestMatch; meaningful under -race, where
// a search reading the index outside the store lock would be flagged.
func TestResumeConcurrentAddAndBestMatch(t *testing.T) {
	store, _ := newTestResumeStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "Seed", "seed resume text"))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			name := fmt.Sprintf("Dev%d", i)
			assert.NoError(t, store.Add(ctx, name, name+" resume text"))
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			match, err := store.BestMatch(ctx, "some requirement")
			if assert.NoError(t, err) {
				assert.NotEmpty(t, match.Name)
			}
		}
	}()

	wg.Wait()
	assert.Equal(t, 51, store.Len())
}
