package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-proposal-be/internal/entity"
	"job-proposal-be/internal/repository/implementation"
	"job-proposal-be/internal/repository/specification"
	"job-proposal-be/pkg/database"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	repo := implementation.NewApplicationSessionRepository(gormDB)
	ctx := context.Background()

	t.Run("Check Session Table Access", func(t *testing.T) {
		count, err := repo.Count(ctx)
		assert.NoError(t, err)
		t.Logf("Session count: %d", count)
	})

	t.Run("Session Round Trip", func(t *testing.T) {
		session := &entity.ApplicationSession{
			Requirement:  "Integration test requirement " + uuid.New().String(),
			ResumeText:   "Integration test resume",
			ProposalText: "Integration test proposal",
			Conversation: []entity.ConversationTurn{
				{Role: entity.RoleUser, Content: "req"},
				{Role: entity.RoleAssistant, Content: "proposal"},
			},
		}
		require.NoError(t, repo.Create(ctx, session))
		require.NotEqual(t, uuid.Nil, session.Id)

		loaded, err := repo.FindOne(ctx, specification.ByID{ID: session.Id})
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, session.Requirement, loaded.Requirement)
		require.Len(t, loaded.Conversation, 2)
		assert.Equal(t, entity.RoleAssistant, loaded.Conversation[1].Role)

		loaded.Conversation = append(loaded.Conversation,
			entity.ConversationTurn{Role: entity.RoleUser, Content: "followup"},
			entity.ConversationTurn{Role: entity.RoleAssistant, Content: "answer"},
		)
		require.NoError(t, repo.Update(ctx, loaded))

		reloaded, err := repo.FindOne(ctx, specification.ByID{ID: session.Id})
		require.NoError(t, err)
		require.NotNil(t, reloaded)
		assert.Len(t, reloaded.Conversation, 4)
	})
}
