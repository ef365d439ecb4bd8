package corpus

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/vectorindex"
)

// ReviewStore serves semantic search over client feedback snippets.
type ReviewStore struct {
	mu       sync.RWMutex
	dir      string
	embedder *Embedder
	index    *vectorindex.Index
	log      logger.ILogger
}

func NewReviewStore(dataDir string, embedder *Embedder, log logger.ILogger) *ReviewStore {
	return &ReviewStore{
		dir:      filepath.Join(dataDir, "reviews"),
		embedder: embedder,
		log:      log,
	}
}

func (s *ReviewStore) Load() error {
	ix, err := vectorindex.Load(s.dir)
	if err != nil {
		if err == vectorindex.ErrNotFound {
			s.log.Warn("corpus", "review index not found, starting empty", map[string]interface{}{"dir": s.dir})
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()

	s.log.Info("corpus", "review index loaded", map[string]interface{}{"count": ix.Len()})
	return nil
}

func (s *ReviewStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil
	}
	return vectorindex.Save(s.dir, s.index)
}

func (s *ReviewStore) Replace(ix *vectorindex.Index) {
	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()
}

func (s *ReviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Len()
}

// Search returns the topK matched review texts, one per line block.
func (s *ReviewStore) Search(ctx context.Context, query string, topK int) (string, error) {
	hits, err := s.SearchDebug(ctx, query, topK)
	if err != nil {
		return "", err
	}
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	return strings.Join(texts, "\n"), nil
}

func (s *ReviewStore) SearchDebug(ctx context.Context, query string, topK int) ([]vectorindex.Hit, error) {
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
