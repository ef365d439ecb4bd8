package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"job-proposal-be/internal/dto"
	"job-proposal-be/internal/entity"
	"job-proposal-be/internal/exception"
	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/internal/repository/contract"
	"job-proposal-be/internal/repository/specification"
	"job-proposal-be/pkg/llm"
	"job-proposal-be/pkg/proposal/intent"
	"job-proposal-be/pkg/proposal/prompt"
	"job-proposal-be/pkg/vectorindex"
)

// recentTurnWindow is how many trailing conversation turns are replayed
// to the model on a follow-up.
const recentTurnWindow = 5

type IProposalService interface {
	Generate(ctx context.Context, request *dto.GenerateProposalRequest) (*dto.GenerateProposalResponse, error)
	Followup(ctx context.Context, request *dto.FollowupRequest) (*dto.FollowupResponse, error)
	ListSessions(ctx context.Context, limit, offset int) ([]*dto.SessionSummaryResponse, error)
	ShowSession(ctx context.Context, id uuid.UUID) (*dto.SessionDetailResponse, error)
	SearchDebug(ctx context.Context, request *dto.SearchDebugRequest) (*dto.SearchDebugResponse, error)
}

type proposalService struct {
	sessionRepo contract.ApplicationSessionRepository
	retrieval   IRetrievalService
	classifier  *intent.Classifier
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewProposalService(
	sessionRepo contract.ApplicationSessionRepository,
	retrieval IRetrievalService,
	classifier *intent.Classifier,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IProposalService {
	return &proposalService{
		sessionRepo: sessionRepo,
		retrieval:   retrieval,
		classifier:  classifier,
		llmProvider: llmProvider,
		log:         log,
	}
}

func (s *proposalService) Generate(ctx context.Context, request *dto.GenerateProposalRequest) (*dto.GenerateProposalResponse, error) {
	jobRelated, err := s.classifier.ClassifyJobRelated(ctx, request.Requirement)
	if err != nil {
		return nil, exception.Upstream("llm", err)
	}
	if !jobRelated {
		return nil, exception.Validation(prompt.RefusalMessage)
	}

	bundle, err := s.retrieval.Retrieve(ctx, request.Requirement, request.ResumeName)
	if err != nil {
		return nil, err
	}

	proposalText, err := s.composeProposal(ctx, request.Requirement, bundle.CombinedContext)
	if err != nil {
		return nil, err
	}

	session := &entity.ApplicationSession{
		Requirement:  request.Requirement,
		ResumeText:   bundle.ResumeText,
		ProposalText: proposalText,
		Conversation: []entity.ConversationTurn{
			{Role: entity.RoleUser, Content: request.Requirement},
			{Role: entity.RoleAssistant, Content: proposalText},
		},
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.log.Info("proposal_service", "proposal generated", map[string]interface{}{
		"session_id":  session.Id.String(),
		"resume_name": bundle.ResumeName,
	})

	return &dto.GenerateProposalResponse{
		SessionId: session.Id,
		Proposal:  proposalText,
		Resume:    bundle.ResumeName,
	}, nil
}

func (s *proposalService) Followup(ctx context.Context, request *dto.FollowupRequest) (*dto.FollowupResponse, error) {
	session, err := s.sessionRepo.FindOne(ctx, specification.ByID{ID: request.SessionId})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, exception.NotFound("session not found")
	}

	recent := recentTurns(session.Conversation, recentTurnWindow)
	label, err := s.classifier.ClassifyConversation(ctx, session.Requirement, session.ProposalText, recent, request.Question)
	if err != nil {
		return nil, exception.Upstream("llm", err)
	}

	switch label {
	case intent.NewJobRequirement:
		return s.regenerate(ctx, session, request.Question)
	case intent.FollowupQuestion:
		return s.answerFollowup(ctx, session, recent, request.Question)
	default:
		return &dto.FollowupResponse{
			SessionId: session.Id,
			Intent:    string(intent.NotJobRelated),
			Answer:    prompt.RefusalMessage,
		}, nil
	}
}

// regenerate treats the new input as a fresh requirement: the proposal
// and the conversation are rebuilt around it, reusing the session's
// resume so the applicant identity stays stable.
func (s *proposalService) regenerate(ctx context.Context, session *entity.ApplicationSession, requirement string) (*dto.FollowupResponse, error) {
	bundle, err := s.retrieval.RetrieveWithResume(ctx, requirement, session.ResumeText)
	if err != nil {
		return nil, err
	}

	proposalText, err := s.composeProposal(ctx, requirement, bundle.CombinedContext)
	if err != nil {
		return nil, err
	}

	session.Requirement = requirement
	session.ProposalText = proposalText
	session.Conversation = []entity.ConversationTurn{
		{Role: entity.RoleUser, Content: requirement},
		{Role: entity.RoleAssistant, Content: proposalText},
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &dto.FollowupResponse{
		SessionId: session.Id,
		Intent:    string(intent.NewJobRequirement),
		Proposal:  proposalText,
	}, nil
}

func (s *proposalService) answerFollowup(ctx context.Context, session *entity.ApplicationSession, recent []llm.Message, question string) (*dto.FollowupResponse, error) {
	history := make([]llm.Message, 0, len(recent)+2)
	history = append(history, llm.Message{
		Role:    "system",
		Content: prompt.BuildFollowupSystem(session.Requirement, session.ProposalText, session.ResumeText),
	})
	history = append(history, recent...)
	history = append(history, llm.Message{Role: "user", Content: question})

	answer, err := s.llmProvider.Chat(ctx, history,
		llm.WithTemperature(0.4),
		llm.WithMaxTokens(400),
	)
	if err != nil {
		return nil, exception.Upstream("llm", err)
	}

	session.Conversation = append(session.Conversation,
		entity.ConversationTurn{Role: entity.RoleUser, Content: question},
		entity.ConversationTurn{Role: entity.RoleAssistant, Content: answer},
	)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &dto.FollowupResponse{
		SessionId: session.Id,
		Intent:    string(intent.FollowupQuestion),
		Answer:    answer,
	}, nil
}

func (s *proposalService) composeProposal(ctx context.Context, requirement, combinedContext string) (string, error) {
	history := []llm.Message{
		{Role: "system", Content: prompt.GlobalScope},
		{Role: "system", Content: "You are an expert freelance software developer."},
		{Role: "user", Content: prompt.BuildProposal(requirement, combinedContext)},
	}
	text, err := s.llmProvider.Chat(ctx, history,
		llm.WithTemperature(0.45),
		llm.WithMaxTokens(800),
	)
	if err != nil {
		return "", exception.Upstream("llm", err)
	}
	return text, nil
}

func (s *proposalService) ListSessions(ctx context.Context, limit, offset int) ([]*dto.SessionSummaryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	sessions, err := s.sessionRepo.FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	responses := make([]*dto.SessionSummaryResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = &dto.SessionSummaryResponse{
			Id:          session.Id,
			Requirement: session.Requirement,
			CreatedAt:   session.CreatedAt,
			UpdatedAt:   session.UpdatedAt,
		}
	}
	return responses, nil
}

func (s *proposalService) ShowSession(ctx context.Context, id uuid.UUID) (*dto.SessionDetailResponse, error) {
	session, err := s.sessionRepo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, exception.NotFound("session not found")
	}

	return &dto.SessionDetailResponse{
		Id:           session.Id,
		Requirement:  session.Requirement,
		ResumeText:   session.ResumeText,
		ProposalText: session.ProposalText,
		Conversation: session.Conversation,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}, nil
}

func (s *proposalService) SearchDebug(ctx context.Context, request *dto.SearchDebugRequest) (*dto.SearchDebugResponse, error) {
	projects, err := s.retrieval.SearchProjects(ctx, request.Query, request.TopK)
	if err != nil {
		return nil, err
	}
	reviews, err := s.retrieval.SearchReviews(ctx, request.Query, request.TopK)
	if err != nil {
		return nil, err
	}
	return &dto.SearchDebugResponse{
		Projects: toDebugHits(projects),
		Reviews:  toDebugHits(reviews),
	}, nil
}

func toDebugHits(hits []vectorindex.Hit) []dto.SearchDebugHit {
	out := make([]dto.SearchDebugHit, len(hits))
	for i, h := range hits {
		out[i] = dto.SearchDebugHit{
			Position: h.Position,
			Score:    h.Score,
			Text:     h.Text,
			Metadata: h.Metadata,
		}
	}
	return out
}

func recentTurns(conversation []entity.ConversationTurn, window int) []llm.Message {
	start := 0
	if len(conversation) > window {
		start = len(conversation) - window
	}
	messages := make([]llm.Message, 0, len(conversation)-start)
	for _, turn := range conversation[start:] {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return messages
}
