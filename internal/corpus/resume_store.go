package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"job-proposal-be/internal/exception"
	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/vectorindex"
)

// ResumeMatch is a resume lookup result.
type ResumeMatch struct {
	Name  string  `json:"name"`
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

// ResumeStore manages the resume corpus. Unlike projects and reviews it
// is mutated through the API: adds append to the index, deletes rebuild
// it from the surviving entries (the flat index has no delete-by-
// position operation).
type ResumeStore struct {
	mu       sync.RWMutex
	dir      string
	embedder *Embedder
	index    *vectorindex.Index
	log      logger.ILogger
}

func NewResumeStore(dataDir string, embedder *Embedder, log logger.ILogger) *ResumeStore {
	return &ResumeStore{
		dir:      filepath.Join(dataDir, "resumes"),
		embedder: embedder,
		log:      log,
	}
}

// Load reads the persisted index; a missing index means an empty store.
func (s *ResumeStore) Load() error {
	ix, err := vectorindex.Load(s.dir)
	if err != nil {
		if err == vectorindex.ErrNotFound {
			s.log.Warn("corpus", "resume index not found, creating empty store", map[string]interface{}{"dir": s.dir})
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()

	s.log.Info("corpus", "resume index loaded", map[string]interface{}{"count": ix.Len()})
	return nil
}

// Save persists the current state. An uninitialized store removes any
// stale on-disk index so the next Load reconstructs the same emptiness.
func (s *ResumeStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return os.RemoveAll(s.dir)
	}
	return vectorindex.Save(s.dir, s.index)
}

func (s *ResumeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Len()
}

// Names lists stored resume names in insertion order.
func (s *ResumeStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil {
		return []string{}
	}
	names := make([]string, 0, s.index.Len())
	for _, d := range s.index.Docs() {
		names = append(names, metaName(d.Metadata))
	}
	return names
}

// GetByName returns the resume whose name matches case-insensitively.
func (s *ResumeStore) GetByName(name string) (*ResumeMatch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil {
		return nil, false
	}
	for _, d := range s.index.Docs() {
		if strings.EqualFold(metaName(d.Metadata), name) {
			return &ResumeMatch{Name: metaName(d.Metadata), Text: d.Text, Score: 1}, true
		}
	}
	return nil, false
}

// BestMatch returns the single closest resume for a requirement, with
// its cosine score. The caller applies the match threshold.
func (s *ResumeStore) BestMatch(ctx context.Context, query string) (*ResumeMatch, error) {
	// Embed before locking; Add appends to the live index in place, so
	// the read lock must span the search itself.
	queryVec, err := s.embedder.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil || s.index.Len() == 0 {
		return nil, vectorindex.ErrEmptyIndex
	}
	hits, err := s.index.Search(queryVec, 1)
	if err != nil {
		return nil, err
	}

	best := hits[0]
	return &ResumeMatch{
		Name:  metaName(best.Metadata),
		Text:  best.Text,
		Score: best.Score,
	}, nil
}

// Add embeds and appends a resume. Duplicate names collide
// case-insensitively; the corpus is unchanged after a failed call.
func (s *ResumeStore) Add(ctx context.Context, name, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		for _, d := range s.index.Docs() {
			if strings.EqualFold(metaName(d.Metadata), name) {
				return exception.Conflict(fmt.Sprintf("resume with name %q already exists", name))
			}
		}
	}

	vecs, err := s.embedder.Documents(ctx, []string{text})
	if err != nil {
		return err
	}

	if s.index == nil {
		s.index = vectorindex.New(len(vecs[0]))
	}
	return s.index.Add(vectorindex.Document{
		Text:     text,
		Metadata: map[string]interface{}{"name": name},
	}, vecs[0])
}

// Delete removes the named resume and rebuilds the index from the
// remaining entries by re-embedding the whole corpus. Returns false if
// no entry matched.
func (s *ResumeStore) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return false, nil
	}

	var kept []vectorindex.Document
	for _, d := range s.index.Docs() {
		if !strings.EqualFold(metaName(d.Metadata), name) {
			kept = append(kept, d)
		}
	}
	if len(kept) == s.index.Len() {
		return false, nil
	}

	if len(kept) == 0 {
		s.index = nil
		return true, nil
	}

	texts := make([]string, len(kept))
	for i, d := range kept {
		texts[i] = d.Text
	}
	vecs, err := s.embedder.Documents(ctx, texts)
	if err != nil {
		return false, err
	}

	rebuilt := vectorindex.New(len(vecs[0]))
	for i, d := range kept {
		if err := rebuilt.Add(d, vecs[i]); err != nil {
			return false, err
		}
	}
	s.index = rebuilt
	return true, nil
}

func metaName(metadata map[string]interface{}) string {
	if metadata == nil {
		return ""
	}
	if v, ok := metadata["name"].(string); ok {
		return v
	}
	return ""
}
