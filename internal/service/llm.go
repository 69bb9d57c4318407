package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

const descriptionSystemPrompt = "You are a professional food writer who creates compelling recipe descriptions."

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// ChatResponse is the subset of the chat completions response we read.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// DescriptionService writes recipe descriptions with a chat model.
type DescriptionService struct {
	api   *openAIClient
	url   string
	model string
}

// NewDescriptionService creates a DescriptionService. An empty url or model
// falls back to the OpenAI defaults; a nil client gets a 60 second timeout.
func NewDescriptionService(apiKey, url, model string, client *http.Client) *DescriptionService {
	if url == "" {
		url = defaultChatURL
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &DescriptionService{
		api:   newOpenAIClient(apiKey, client),
		url:   url,
		model: model,
	}
}

// GenerateDescription asks the model for a short description of the recipe.
// The call is made once; failures surface as ErrUpstream.
func (s *DescriptionService) GenerateDescription(ctx context.Context, name string, ingredients []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("Recipe name is required")
	}

	prompt := buildDescriptionPrompt(name, cleanLines(ingredients))
	logrus.WithFields(logrus.Fields{
		"model":  s.model,
		"prompt": truncate(prompt, 120),
	}).Debug("requesting recipe description")

	reqBody := ChatRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: descriptionSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	}

	var result ChatResponse
	if err := s.api.post(ctx, s.url, reqBody, &result); err != nil {
		logrus.WithError(err).Error("description generation failed")
		return "", upstreamError(clientMessage(err, "Failed to generate description"), err)
	}
	if len(result.Choices) == 0 {
		return "", upstreamError("Failed to generate description", fmt.Errorf("no response from API"))
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func buildDescriptionPrompt(name string, ingredients []string) string {
	var b strings.Builder
	if len(ingredients) > 0 {
		fmt.Fprintf(&b, "Create a mouthwatering, engaging description for a recipe called %q with the following ingredients: %s.\n\n",
			name, strings.Join(ingredients, ", "))
		b.WriteString("The description should:\n")
		b.WriteString("- Be approximately 2-3 sentences long\n")
		b.WriteString("- Highlight the key flavors and textures\n")
		b.WriteString("- Mention a key cooking technique or special ingredient if applicable\n")
		b.WriteString("- Make the reader want to cook this dish immediately\n")
		b.WriteString("- Have a warm, inviting tone\n")
		b.WriteString("- Avoid clichés and generic phrases\n")
		b.WriteString("- Not include \"This recipe for X...\"\n")
		b.WriteString("- Avoid fluffy language\n\n")
	} else {
		fmt.Fprintf(&b, "Create a concise description for a recipe called %q.\n\n", name)
		b.WriteString("The description should:\n")
		b.WriteString("- Be approximately 2-3 sentences long\n")
		b.WriteString("- Highlight what this dish might taste like based on its name\n")
		b.WriteString("- Make the reader want to cook this dish immediately\n")
		b.WriteString("- Have a warm, inviting tone\n")
		b.WriteString("- Avoid clichés and generic phrases\n")
		b.WriteString("- Not include \"This recipe for X...\"\n\n")
	}
	b.WriteString("Return just the description text with no additional formatting or commentary.")
	return b.String()
}
