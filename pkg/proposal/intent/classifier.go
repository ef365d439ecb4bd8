package intent

import (
	"context"
	"fmt"
	"strings"

	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/llm"
)

// Label is a resolved conversation-turn classification.
type Label string

const (
	NewJobRequirement Label = "NEW_JOB_REQUIREMENT"
	FollowupQuestion  Label = "FOLLOWUP_QUESTION"
	NotJobRelated     Label = "NOT_JOB_RELATED"
)

// Classifier performs pure LLM-based intent classification. The model
// output is treated as untrusted: labels are extracted defensively and
// unmatched output fails closed to NotJobRelated.
type Classifier struct {
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		log:         log,
	}
}

// ClassifyJobRelated reports whether raw text is job-related at all.
// Transport failures from the LLM propagate; there is no retry.
func (c *Classifier) ClassifyJobRelated(ctx context.Context, text string) (bool, error) {
	prompt := buildJobRelatedPrompt(text)

	history := []llm.Message{
		{Role: "system", Content: "You are a strict intent classifier."},
		{Role: "user", Content: prompt},
	}
	raw, err := c.llmProvider.Chat(ctx, history,
		llm.WithTemperature(0.0),
		llm.WithMaxTokens(5),
	)
	if err != nil {
		return false, fmt.Errorf("job-related classification failed: %w", err)
	}

	return strings.TrimSpace(raw) == "JOB_RELATED", nil
}

// ClassifyConversation classifies a follow-up turn against the stored
// requirement, proposal and a short window of recent conversation.
func (c *Classifier) ClassifyConversation(
	ctx context.Context,
	requirement string,
	proposalText string,
	recent []llm.Message,
	newInput string,
) (Label, error) {
	prompt := buildConversationPrompt(requirement, proposalText, recent, newInput)

	history := []llm.Message{
		{Role: "system", Content: "You are a strict classifier."},
		{Role: "user", Content: prompt},
	}
	raw, err := c.llmProvider.Chat(ctx, history,
		llm.WithTemperature(0.0),
		llm.WithMaxTokens(10),
	)
	if err != nil {
		return "", fmt.Errorf("conversation classification failed: %w", err)
	}

	label := ExtractLabel(raw)
	c.log.Debug("intent", "conversation turn classified", map[string]interface{}{
		"label": string(label),
		"raw":   raw,
	})
	return label, nil
}

// ExtractLabel maps raw model output to a label. NEW_JOB_REQUIREMENT
// wins over FOLLOWUP_QUESTION when both appear; anything else defaults
// to NOT_JOB_RELATED.
func ExtractLabel(raw string) Label {
	switch {
	case strings.Contains(raw, string(NewJobRequirement)):
		return NewJobRequirement
	case strings.Contains(raw, string(FollowupQuestion)):
		return FollowupQuestion
	default:
		return NotJobRelated
	}
}

func buildJobRelatedPrompt(text string) string {
	var b strings.Builder

	b.WriteString("You are an intent classifier.\n\n")
	b.WriteString("Classify the following input strictly as one of:\n\n")
	b.WriteString("- JOB_RELATED\n- NOT_JOB_RELATED\n\n")

	b.WriteString("Definition of JOB_RELATED:\n")
	b.WriteString("- A real job requirement\n")
	b.WriteString("- Hiring discussion\n")
	b.WriteString("- Freelance project description\n")
	b.WriteString("- Technical work inquiry\n")
	b.WriteString("- Resume discussion\n")
	b.WriteString("- Screening question\n\n")

	b.WriteString("Definition of NOT_JOB_RELATED:\n")
	b.WriteString("- Greetings (hi, hello, hey)\n")
	b.WriteString("- Casual talk\n")
	b.WriteString("- Random statements\n")
	b.WriteString("- Personal questions\n")
	b.WriteString("- Jokes\n")
	b.WriteString("- Weather, politics, etc.\n\n")

	b.WriteString("Respond with ONLY:\nJOB_RELATED\nor\nNOT_JOB_RELATED\n\n")
	b.WriteString("Input:\n")
	b.WriteString(text)

	return b.String()
}

func buildConversationPrompt(requirement, proposalText string, recent []llm.Message, newInput string) string {
	var b strings.Builder

	b.WriteString("You are a strict intent classifier.\n\n")

	b.WriteString("ORIGINAL JOB REQUIREMENT:\n")
	b.WriteString(requirement)
	b.WriteString("\n\n")

	b.WriteString("ORIGINAL PROPOSAL:\n")
	b.WriteString(proposalText)
	b.WriteString("\n\n")

	b.WriteString("CONVERSATION HISTORY:\n")
	for _, m := range recent {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("NEW USER INPUT:\n")
	b.WriteString(newInput)
	b.WriteString("\n\n")

	b.WriteString("Classify the NEW USER INPUT strictly as one of:\n\n")
	b.WriteString("- NEW_JOB_REQUIREMENT\n- FOLLOWUP_QUESTION\n- NOT_JOB_RELATED\n\n")

	b.WriteString("Definitions:\n\n")
	b.WriteString("NEW_JOB_REQUIREMENT:\n")
	b.WriteString("- A full job description\n")
	b.WriteString("- A hiring post\n")
	b.WriteString("- A project requirement\n")
	b.WriteString("- Even if it is identical or similar to the previous requirement\n")
	b.WriteString("- Long structured content describing a project\n\n")

	b.WriteString("FOLLOWUP_QUESTION:\n")
	b.WriteString("- A short screening question\n")
	b.WriteString("- Clarification about earlier proposal\n")
	b.WriteString("- A technical question about implementation\n")
	b.WriteString("- Usually 1-3 sentences\n\n")

	b.WriteString("NOT_JOB_RELATED:\n")
	b.WriteString("- Greetings\n")
	b.WriteString("- Casual talk\n")
	b.WriteString("- Random unrelated discussion\n\n")

	b.WriteString("Important:\n")
	b.WriteString("If the input looks like a job description, ALWAYS classify it as NEW_JOB_REQUIREMENT.")

	return b.String()
}
