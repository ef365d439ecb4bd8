package main

import (
	"context"
	"log"

	"job-proposal-be/internal/config"
	"job-proposal-be/internal/corpus"
	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/embedding"
)

// reindex rebuilds the project and review indexes from the CSV source
// files and writes them to the data directory, without starting the
// HTTP server. Run it once before first boot, or after editing the CSVs.
func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var provider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel, cfg.Ai.OllamaEmbedDim)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
	}
	embedder := corpus.NewEmbedder(provider)

	ctx := context.Background()

	projectStore := corpus.NewProjectStore(cfg.Retrieval.DataDir, embedder, sysLogger)
	projectIx, projectCount, err := corpus.BuildProjectIndex(ctx, embedder, corpus.DefaultProjectSources(cfg.Retrieval.SourceDir))
	if err != nil {
		log.Fatalf("Error: Failed to build project index: %v", err)
	}
	projectStore.Replace(projectIx)
	if err := projectStore.Save(); err != nil {
		log.Fatalf("Error: Failed to save project index: %v", err)
	}
	log.Printf("✅ Project index built (%d documents)", projectCount)

	reviewStore := corpus.NewReviewStore(cfg.Retrieval.DataDir, embedder, sysLogger)
	reviewIx, reviewCount, err := corpus.BuildReviewIndex(ctx, embedder, corpus.DefaultReviewSource(cfg.Retrieval.SourceDir))
	if err != nil {
		log.Fatalf("Error: Failed to build review index: %v", err)
	}
	reviewStore.Replace(reviewIx)
	if err := reviewStore.Save(); err != nil {
		log.Fatalf("Error: Failed to save review index: %v", err)
	}
	log.Printf("✅ Review index built (%d documents)", reviewCount)
}
