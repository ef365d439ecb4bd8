package intent

import (
	"context"
	"strings"
	"testing"

	"job-proposal-be/internal/pkg/logger"
	"job-proposal-be/pkg/llm"
)

// stubLLM returns a canned response for every call.
type stubLLM struct {
	response string
	err      error
	lastOpts llm.Options
	lastMsgs []llm.Message
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	o := llm.Options{}
	for _, opt := range opts {
		opt(&o)
	}
	s.lastOpts = o
	s.lastMsgs = history
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestExtractLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Label
	}{
		{"exact new requirement", "NEW_JOB_REQUIREMENT", NewJobRequirement},
		{"exact followup", "FOLLOWUP_QUESTION", FollowupQuestion},
		{"exact not related", "NOT_JOB_RELATED", NotJobRelated},
		{"wrapped in prose", "The answer is: NEW_JOB_REQUIREMENT.", NewJobRequirement},
		{"both labels, requirement wins", "FOLLOWUP_QUESTION or NEW_JOB_REQUIREMENT", NewJobRequirement},
		{"garbage fails closed", "I cannot classify this input", NotJobRelated},
		{"empty fails closed", "", NotJobRelated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLabel(tt.raw); got != tt.want {
				t.Errorf("ExtractLabel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyConversationTiebreak(t *testing.T) {
	// A long structured posting must classify as NEW_JOB_REQUIREMENT even
	// when near-identical to the stored requirement. The prompt carries the
	// rule; here we verify the plumbing honors a model that follows it.
	stub := &stubLLM{response: "NEW_JOB_REQUIREMENT"}
	c := NewClassifier(stub, logger.NewNopLogger())

	posting := strings.Repeat("Build a Flutter app with Firebase auth, push notifications and offline sync. ", 15)
	label, err := c.ClassifyConversation(context.Background(), posting, "old proposal", nil, posting)
	if err != nil {
		t.Fatalf("ClassifyConversation: %v", err)
	}
	if label != NewJobRequirement {
		t.Errorf("label = %v, want NewJobRequirement", label)
	}

	// Classification must run at zero temperature with a tiny budget.
	if stub.lastOpts.Temperature != 0 {
		t.Errorf("temperature = %f, want 0", stub.lastOpts.Temperature)
	}
	if stub.lastOpts.MaxTokens != 10 {
		t.Errorf("max tokens = %d, want 10", stub.lastOpts.MaxTokens)
	}

	// Tie-break rule must be present in the prompt itself.
	userPrompt := stub.lastMsgs[len(stub.lastMsgs)-1].Content
	if !strings.Contains(userPrompt, "ALWAYS classify it as NEW_JOB_REQUIREMENT") {
		t.Error("conversation prompt is missing the job-description tie-break rule")
	}
}

func TestClassifyConversationFailsClosed(t *testing.T) {
	stub := &stubLLM{response: "Sure! This seems like friendly chatter to me."}
	c := NewClassifier(stub, logger.NewNopLogger())

	label, err := c.ClassifyConversation(context.Background(), "req", "prop", nil, "nice weather today")
	if err != nil {
		t.Fatalf("ClassifyConversation: %v", err)
	}
	if label != NotJobRelated {
		t.Errorf("label = %v, want NotJobRelated", label)
	}
}

func TestClassifyJobRelated(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"job related", "JOB_RELATED", true},
		{"not job related", "NOT_JOB_RELATED", false},
		{"unexpected output", "maybe?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubLLM{response: tt.response}
			c := NewClassifier(stub, logger.NewNopLogger())
			got, err := c.ClassifyJobRelated(context.Background(), "Need a PHP developer")
			if err != nil {
				t.Fatalf("ClassifyJobRelated: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
