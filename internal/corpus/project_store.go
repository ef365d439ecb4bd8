package corpus

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/vectorindex"
)

// ProjectStore serves semantic search over the past-project corpus.
// The index is replaced wholesale by bulk ingestion; the lock keeps a
// concurrent search from observing a torn swap.
type ProjectStore struct {
	mu       sync.RWMutex
	dir      string
	embedder *Embedder
	index    *vectorindex.Index
	log      logger.ILogger
}

func NewProjectStore(dataDir string, embedder *Embedder, log logger.ILogger) *ProjectStore {
	return &ProjectStore{
		dir:      filepath.Join(dataDir, "projects"),
		embedder: embedder,
		log:      log,
	}
}

// Load reads the persisted index. A missing index leaves the store
// empty; searches then fail fast with ErrEmptyIndex until a sync runs.
func (s *ProjectStore) Load() error {
	ix, err := vectorindex.Load(s.dir)
	if err != nil {
		if err == vectorindex.ErrNotFound {
			s.log.Warn("corpus", "project index not found, starting empty", map[string]interface{}{"dir": s.dir})
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()

	s.log.Info("corpus", "project index loaded", map[string]interface{}{"count": ix.Len()})
	return nil
}

func (s *ProjectStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil
	}
	return vectorindex.Save(s.dir, s.index)
}

// Replace swaps in a freshly built index (bulk ingestion).
func (s *ProjectStore) Replace(ix *vectorindex.Index) {
	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()
}

func (s *ProjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Len()
}

// Search returns the topK matched project texts joined into one
// prompt-ready block.
func (s *ProjectStore) Search(ctx context.Context, query string, topK int) (string, error) {
	hits, err := s.SearchDebug(ctx, query, topK)
	if err != nil {
		return "", err
	}
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	return strings.Join(texts, "\n\n"), nil
}

// SearchDebug returns scored hits for inspection, sorted by descending
// similarity.
func (s *ProjectStore) SearchDebug(ctx context.Context, query string, topK int) ([]vectorindex.Hit, error) {
	s.mu.RLock()
	ix := s.index
	s.mu.RUnlock()

	if ix == nil || ix.Len() == 0 {
		return nil, vectorindex.ErrEmptyIndex
	}

	queryVec, err := s.embedder.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return ix.Search(queryVec, topK)
}
