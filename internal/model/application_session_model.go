package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ApplicationSession struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Requirement  string         `gorm:"type:text;not null"`
	ResumeText   string         `gorm:"type:text;not null"`
	ProposalText string         `gorm:"type:text;not null"`
	Conversation datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (ApplicationSession) TableName() string {
	return "application_sessions"
}
