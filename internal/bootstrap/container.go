package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"job-proposal-be/internal/config"
	"job-proposal-be/internal/controller"
	"job-proposal-be/internal/corpus"
	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/internal/repository/implementation"
	"job-proposal-be/internal/service"
	"job-proposal-be/pkg/embedding"
	"job-proposal-be/pkg/llm/factory"
	"job-proposal-be/pkg/proposal/intent"
)

type Container struct {
	// Controllers
	ProposalController controller.IProposalController
	ResumeController   controller.IResumeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
			cfg.Ai.OllamaEmbedDim,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GroqAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Corpus Stores
	embedder := corpus.NewEmbedder(embeddingProvider)
	projectStore := corpus.NewProjectStore(cfg.Retrieval.DataDir, embedder, sysLogger)
	reviewStore := corpus.NewReviewStore(cfg.Retrieval.DataDir, embedder, sysLogger)
	resumeStore := corpus.NewResumeStore(cfg.Retrieval.DataDir, embedder, sysLogger)

	for name, load := range map[string]func() error{
		"projects": projectStore.Load,
		"reviews":  reviewStore.Load,
		"resumes":  resumeStore.Load,
	} {
		if err := load(); err != nil {
			log.Fatalf("[FATAL] Failed to load %s index: %v", name, err)
		}
	}

	// 5. Repositories
	sessionRepo := implementation.NewApplicationSessionRepository(db)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Retrieval.PersistTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Retrieval.PersistTopic,
		projectStore,
		reviewStore,
		resumeStore,
		sysLogger,
	)

	retrievalService := service.NewRetrievalService(
		projectStore,
		reviewStore,
		resumeStore,
		cfg.Retrieval.ProjectTopK,
		cfg.Retrieval.ReviewTopK,
		float32(cfg.Retrieval.ResumeMatchThreshold),
		sysLogger,
	)
	classifier := intent.NewClassifier(llmProvider, sysLogger)
	proposalService := service.NewProposalService(sessionRepo, retrievalService, classifier, llmProvider, sysLogger)
	resumeService := service.NewResumeService(resumeStore, publisherService, sysLogger)
	ingestService := service.NewIngestService(embedder, projectStore, reviewStore, &cfg.Retrieval, publisherService, sysLogger)

	// 7. Controllers
	proposalController := controller.NewProposalController(proposalService, ingestService)
	resumeController := controller.NewResumeController(resumeService, ingestService)

	return &Container{
		ProposalController: proposalController,
		ResumeController:   resumeController,
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
