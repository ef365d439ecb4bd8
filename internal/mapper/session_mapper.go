package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"job-proposal-be/internal/entity"
	"job-proposal-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.ApplicationSession) (*entity.ApplicationSession, error) {
	if s == nil {
		return nil, nil
	}

	var conversation []entity.ConversationTurn
	if len(s.Conversation) > 0 {
		if err := json.Unmarshal(s.Conversation, &conversation); err != nil {
			return nil, fmt.Errorf("decode conversation for session %s: %w", s.Id, err)
		}
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ApplicationSession{
		Id:           s.Id,
		Requirement:  s.Requirement,
		ResumeText:   s.ResumeText,
		ProposalText: s.ProposalText,
		Conversation: conversation,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func (m *SessionMapper) ToModel(s *entity.ApplicationSession) (*model.ApplicationSession, error) {
	if s == nil {
		return nil, nil
	}

	conversation, err := json.Marshal(s.Conversation)
	if err != nil {
		return nil, fmt.Errorf("encode conversation for session %s: %w", s.Id, err)
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ApplicationSession{
		Id:           s.Id,
		Requirement:  s.Requirement,
		ResumeText:   s.ResumeText,
		ProposalText: s.ProposalText,
		Conversation: conversation,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}, nil
}
