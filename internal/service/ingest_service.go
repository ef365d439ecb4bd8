package service

import (
	"context"
	"encoding/json"

	"job-proposal-be/internal/config"
	"job-proposal-be/internal/corpus"
	"job-proposal-be/internal/dto"
	"job-proposal-be/internal/pkg/logger"
)

type IIngestService interface {
	SyncProjects(ctx context.Context) (*dto.SyncCorpusResponse, error)
	SyncReviews(ctx context.Context) (*dto.SyncCorpusResponse, error)
	SyncAll(ctx context.Context) (*dto.SyncCorpusResponse, error)
}

// ingestService rebuilds the project and review indexes from the CSV
// source files and swaps them into the live stores.
type ingestService struct {
	embedder  *corpus.Embedder
	projects  *corpus.ProjectStore
	reviews   *corpus.ReviewStore
	sourceDir string
	publisher IPublisherService
	log       logger.ILogger
}

func NewIngestService(
	embedder *corpus.Embedder,
	projects *corpus.ProjectStore,
	reviews *corpus.ReviewStore,
	cfg *config.RetrievalConfig,
	publisher IPublisherService,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		embedder:  embedder,
		projects:  projects,
		reviews:   reviews,
		sourceDir: cfg.SourceDir,
		publisher: publisher,
		log:       log,
	}
}

func (s *ingestService) SyncProjects(ctx context.Context) (*dto.SyncCorpusResponse, error) {
	ix, count, err := corpus.BuildProjectIndex(ctx, s.embedder, corpus.DefaultProjectSources(s.sourceDir))
	if err != nil {
		return nil, err
	}
	s.projects.Replace(ix)
	s.requestPersist(ctx, dto.CorpusProjects)

	s.log.Info("ingest_service", "project index rebuilt", map[string]interface{}{
		"documents": count,
	})
	return &dto.SyncCorpusResponse{ProjectCount: count}, nil
}

func (s *ingestService) SyncReviews(ctx context.Context) (*dto.SyncCorpusResponse, error) {
	ix, count, err := corpus.BuildReviewIndex(ctx, s.embedder, corpus.DefaultReviewSource(s.sourceDir))
	if err != nil {
		return nil, err
	}
	s.reviews.Replace(ix)
	s.requestPersist(ctx, dto.CorpusReviews)

	s.log.Info("ingest_service", "review index rebuilt", map[string]interface{}{
		"documents": count,
	})
	return &dto.SyncCorpusResponse{ReviewCount: count}, nil
}

func (s *ingestService) SyncAll(ctx context.Context) (*dto.SyncCorpusResponse, error) {
	projects, err := s.SyncProjects(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.SyncReviews(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SyncCorpusResponse{
		ProjectCount: projects.ProjectCount,
		ReviewCount:  reviews.ReviewCount,
	}, nil
}

func (s *ingestService) requestPersist(ctx context.Context, corpusName string) {
	payload, err := json.Marshal(dto.PersistCorpusMessage{Corpus: corpusName})
	if err != nil {
		s.log.Error("ingest_service", "marshal persist message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Error("ingest_service", "publish persist message", map[string]interface{}{"error": err.Error()})
	}
}
