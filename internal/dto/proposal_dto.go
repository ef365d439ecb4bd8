package dto

import (
	"time"

	"github.com/google/uuid"

	"job-proposal-be/internal/entity"
)

type GenerateProposalRequest struct {
	Requirement string `json:"requirement" validate:"required,min=10"`
	ResumeName  string `json:"resume_name,omitempty"`
}

type GenerateProposalResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Proposal  string    `json:"proposal"`
	Resume    string    `json:"resume"`
}

type FollowupRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Question  string    `json:"question" validate:"required"`
}

// FollowupResponse carries the answer for a follow-up or refusal turn;
// a NEW_JOB_REQUIREMENT turn populates Proposal instead.
type FollowupResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Intent    string    `json:"intent"`
	Answer    string    `json:"answer,omitempty"`
	Proposal  string    `json:"proposal,omitempty"`
}

type SessionSummaryResponse struct {
	Id          uuid.UUID  `json:"id"`
	Requirement string     `json:"requirement"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type SessionDetailResponse struct {
	Id           uuid.UUID                 `json:"id"`
	Requirement  string                    `json:"requirement"`
	ResumeText   string                    `json:"resume_text"`
	ProposalText string                    `json:"proposal_text"`
	Conversation []entity.ConversationTurn `json:"conversation"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    *time.Time                `json:"updated_at,omitempty"`
}

type SearchDebugRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k,omitempty" validate:"omitempty,min=1,max=50"`
}

type SearchDebugHit struct {
	Position int                    `json:"position"`
	Score    float32                `json:"score"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type SearchDebugResponse struct {
	Projects []SearchDebugHit `json:"projects"`
	Reviews  []SearchDebugHit `json:"reviews"`
}

type SyncCorpusResponse struct {
	ProjectCount int `json:"project_count"`
	ReviewCount  int `json:"review_count"`
}
