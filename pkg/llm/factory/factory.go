package factory

import (
	"fmt"

	"job-proposal-be/pkg/llm"
	"job-proposal-be/pkg/llm/groq"
	"job-proposal-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, groqAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq":
		return groq.NewGroqProvider(groqAPIKey, modelName)
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
