package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ApplicationSession ties one job requirement to its generated proposal
// and the follow-up exchange log. The first two turns are always the
// initial requirement/proposal pair.
type ApplicationSession struct {
	Id           uuid.UUID
	Requirement  string
	ResumeText   string
	ProposalText string
	Conversation []ConversationTurn
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
