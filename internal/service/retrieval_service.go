package service

import (
	"context"
	"fmt"

	"job-proposal-be/internal/corpus"
	"job-proposal-be/internal/exception"
	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/proposal/prompt"
	"job-proposal-be/pkg/vectorindex"
)

// RetrievalBundle carries everything the proposal prompt needs for one requirement.
type RetrievalBundle struct {
	ResumeName      string
	ResumeText      string
	ProjectsText    string
	ReviewsText     string
	CombinedContext string
}

type IRetrievalService interface {
	Retrieve(ctx context.Context, requirement string, resumeName string) (*RetrievalBundle, error)
	RetrieveWithResume(ctx context.Context, requirement string, resumeText string) (*RetrievalBundle, error)
	SearchProjects(ctx context.Context, query string, topK int) ([]vectorindex.Hit, error)
	SearchReviews(ctx context.Context, query string, topK int) ([]vectorindex.Hit, error)
}

type retrievalService struct {
	projects    *corpus.ProjectStore
	reviews     *corpus.ReviewStore
	resumes     *corpus.ResumeStore
	projectTopK int
	reviewTopK  int
	threshold   float32
	log         logger.ILogger
}

func NewRetrievalService(
	projects *corpus.ProjectStore,
	reviews *corpus.ReviewStore,
	resumes *corpus.ResumeStore,
	projectTopK int,
	reviewTopK int,
	resumeMatchThreshold float32,
	log logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		projects:    projects,
		reviews:     reviews,
		resumes:     resumes,
		projectTopK: projectTopK,
		reviewTopK:  reviewTopK,
		threshold:   resumeMatchThreshold,
		log:         log,
	}
}

func (s *retrievalService) Retrieve(ctx context.Context, requirement string, resumeName string) (*RetrievalBundle, error) {
	resumeNameResolved, resumeText, err := s.resolveResume(ctx, requirement, resumeName)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, requirement, resumeNameResolved, resumeText)
}

// RetrieveWithResume skips resume resolution entirely, reusing resume
// text already pinned to a session.
func (s *retrievalService) RetrieveWithResume(ctx context.Context, requirement string, resumeText string) (*RetrievalBundle, error) {
	return s.assemble(ctx, requirement, "", resumeText)
}

func (s *retrievalService) assemble(ctx context.Context, requirement, resumeName, resumeText string) (*RetrievalBundle, error) {
	projectsText, err := s.projects.Search(ctx, requirement, s.projectTopK)
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}

	reviewsText, err := s.reviews.Search(ctx, requirement, s.reviewTopK)
	if err != nil {
		return nil, fmt.Errorf("search reviews: %w", err)
	}

	s.log.Debug("retrieval_service", "context assembled", map[string]interface{}{
		"resume_name":  resumeName,
		"project_topk": s.projectTopK,
		"review_topk":  s.reviewTopK,
	})

	return &RetrievalBundle{
		ResumeName:      resumeName,
		ResumeText:      resumeText,
		ProjectsText:    projectsText,
		ReviewsText:     reviewsText,
		CombinedContext: prompt.CombinedContext(resumeText, projectsText, reviewsText),
	}, nil
}

// resolveResume prefers an explicit name; otherwise the best semantic match wins,
// but only above the confidence threshold.
func (s *retrievalService) resolveResume(ctx context.Context, requirement string, resumeName string) (string, string, error) {
	if resumeName != "" {
		resume, ok := s.resumes.GetByName(resumeName)
		if !ok {
			return "", "", exception.NotFound(fmt.Sprintf("resume '%s' not found", resumeName))
		}
		return resume.Name, resume.Text, nil
	}

	match, err := s.resumes.BestMatch(ctx, requirement)
	if err != nil {
		return "", "", fmt.Errorf("match resume: %w", err)
	}
	if match.Score < s.threshold {
		s.log.Warn("retrieval_service", "resume match below threshold", map[string]interface{}{
			"best_match": match.Name,
			"score":      match.Score,
			"threshold":  s.threshold,
		})
		return "", "", &exception.AmbiguousResumeError{
			BestMatchName: match.Name,
			Score:         match.Score,
			Threshold:     s.threshold,
		}
	}
	return match.Name, match.Text, nil
}

func (s *retrievalService) SearchProjects(ctx context.Context, query string, topK int) ([]vectorindex.Hit, error) {
	if topK <= 0 {
		topK = s.projectTopK
	}
	return s.projects.SearchDebug(ctx, query, topK)
}

func (s *retrievalService) SearchReviews(ctx context.Context, query string, topK int) ([]vectorindex.Hit, error) {
	if topK <= 0 {
		topK = s.reviewTopK
	}
	return s.reviews.SearchDebug(ctx, query, topK)
}
