package service

import (
	"context"
	"encoding/json"
	"fmt"

	"job-proposal-be/internal/corpus"
	"job-proposal-be/internal/dto"
	"job-proposal-be/internal/exception"
	"job-proposal-be/internal/pkg/logger"
)

type IResumeService interface {
	List(ctx context.Context) (*dto.ResumeListResponse, error)
	Show(ctx context.Context, name string) (*dto.ResumeResponse, error)
	Add(ctx context.Context, request *dto.AddResumeRequest) (*dto.ResumeResponse, error)
	Delete(ctx context.Context, name string) error
}

type resumeService struct {
	resumes   *corpus.ResumeStore
	publisher IPublisherService
	log       logger.ILogger
}

func NewResumeService(resumes *corpus.ResumeStore, publisher IPublisherService, log logger.ILogger) IResumeService {
	return &resumeService{
		resumes:   resumes,
		publisher: publisher,
		log:       log,
	}
}

func (s *resumeService) List(ctx context.Context) (*dto.ResumeListResponse, error) {
	names := s.resumes.Names()
	return &dto.ResumeListResponse{
		Names: names,
		Count: len(names),
	}, nil
}

func (s *resumeService) Show(ctx context.Context, name string) (*dto.ResumeResponse, error) {
	resume, ok := s.resumes.GetByName(name)
	if !ok {
		return nil, exception.NotFound(fmt.Sprintf("resume '%s' not found", name))
	}
	return &dto.ResumeResponse{Name: resume.Name, Text: resume.Text}, nil
}

func (s *resumeService) Add(ctx context.Context, request *dto.AddResumeRequest) (*dto.ResumeResponse, error) {
	if err := s.resumes.Add(ctx, request.Name, request.Text); err != nil {
		return nil, err
	}

	s.requestPersist(ctx)
	s.log.Info("resume_service", "resume added", map[string]interface{}{
		"name": request.Name,
	})

	return &dto.ResumeResponse{Name: request.Name, Text: request.Text}, nil
}

func (s *resumeService) Delete(ctx context.Context, name string) error {
	removed, err := s.resumes.Delete(ctx, name)
	if err != nil {
		return err
	}
	if !removed {
		return exception.NotFound(fmt.Sprintf("resume '%s' not found", name))
	}

	s.requestPersist(ctx)
	s.log.Info("resume_service", "resume deleted", map[string]interface{}{
		"name": name,
	})
	return nil
}

func (s *resumeService) requestPersist(ctx context.Context) {
	payload, err := json.Marshal(dto.PersistCorpusMessage{Corpus: dto.CorpusResumes})
	if err != nil {
		s.log.Error("resume_service", "marshal persist message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Error("resume_service", "publish persist message", map[string]interface{}{"error": err.Error()})
	}
}
