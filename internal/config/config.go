package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "groq" or "ollama"
	LLMModel          string // e.g. "llama-3.1-8b-instant"
	GroqAPIKey        string
	OllamaBaseURL     string
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaEmbedModel  string
	OllamaEmbedDim    int
	GeminiAPIKey      string
}

type RetrievalConfig struct {
	DataDir              string  // persisted index directories live here
	SourceDir            string  // CSV exports for bulk ingestion
	ProjectTopK          int
	ReviewTopK           int
	ResumeMatchThreshold float64 // minimum cosine score for a semantic resume match
	PersistTopic         string  // pub/sub topic for background index persistence
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			LLMModel:          getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OllamaEmbedDim:    getEnvAsInt("OLLAMA_EMBEDDING_DIM", 768),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Retrieval: RetrievalConfig{
			DataDir:              getEnv("DATA_DIR", "data"),
			SourceDir:            getEnv("SOURCE_DIR", "source"),
			ProjectTopK:          getEnvAsInt("PROJECT_TOP_K", 3),
			ReviewTopK:           getEnvAsInt("REVIEW_TOP_K", 2),
			ResumeMatchThreshold: getEnvAsFloat("RESUME_MATCH_THRESHOLD", 0.50),
			PersistTopic:         getEnv("CORPUS_PERSIST_TOPIC_NAME", "CORPUS_PERSIST"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
