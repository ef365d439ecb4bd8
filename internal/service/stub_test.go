package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"job-proposal-be/internal/entity"
	"job-proposal-be/internal/repository/specification"
	"job-proposal-be/pkg/llm"
	"job-proposal-be/pkg/vectorindex"
)

// scriptedLLM replays queued responses in order and records every call.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	calls     []llmCall
}

type llmCall struct {
	history []llm.Message
	opts    llm.Options
}

func (s *scriptedLLM) queue(responses ...string) {
	s.responses = append(s.responses, responses...)
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var opts llm.Options
	for _, o := range options {
		o(&opts)
	}
	s.calls = append(s.calls, llmCall{history: history, opts: opts})

	if len(s.responses) == 0 {
		return "", errors.New("scripted llm: no responses queued")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// memorySessionRepo is an in-memory ApplicationSessionRepository.
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.ApplicationSession
	order    []uuid.UUID
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: map[uuid.UUID]*entity.ApplicationSession{}}
}

func (r *memorySessionRepo) Create(ctx context.Context, session *entity.ApplicationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	clone := *session
	r.sessions[session.Id] = &clone
	r.order = append(r.order, session.Id)
	return nil
}

func (r *memorySessionRepo) Update(ctx context.Context, session *entity.ApplicationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.Id]; !ok {
		return errors.New("session not found")
	}
	clone := *session
	r.sessions[session.Id] = &clone
	return nil
}

func (r *memorySessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ApplicationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if s, found := r.sessions[byID.ID]; found {
				clone := *s
				return &clone, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *memorySessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ApplicationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ApplicationSession, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.sessions[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memorySessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.sessions)), nil
}

func byIDSpec(id uuid.UUID) specification.Specification {
	return specification.ByID{ID: id}
}

// stubRetrieval returns a canned bundle and records the queries it saw.
type stubRetrieval struct {
	bundle  *RetrievalBundle
	err     error
	queries []string
}

func (s *stubRetrieval) Retrieve(ctx context.Context, requirement string, resumeName string) (*RetrievalBundle, error) {
	s.queries = append(s.queries, requirement)
	if s.err != nil {
		return nil, s.err
	}
	return s.bundle, nil
}

func (s *stubRetrieval) RetrieveWithResume(ctx context.Context, requirement string, resumeText string) (*RetrievalBundle, error) {
	s.queries = append(s.queries, requirement)
	if s.err != nil {
		return nil, s.err
	}
	bundle := *s.bundle
	bundle.ResumeText = resumeText
	return &bundle, nil
}

func (s *stubRetrieval) SearchProjects(ctx context.Context, query string, topK int) ([]vectorindex.Hit, error) {
	return nil, nil
}

func (s *stubRetrieval) SearchReviews(ctx context.Context, query string, topK int) ([]vectorindex.Hit, error) {
	return nil, nil
}
