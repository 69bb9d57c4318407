package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"
)

const (
	defaultChatURL   = "https://api.openai.com/v1/chat/completions"
	defaultImagesURL = "https://api.openai.com/v1/images/generations"
	upstreamTimeout  = 60 * time.Second
)

// errMissingAPIKey is reported when an AI endpoint is called without a key.
var errMissingAPIKey = errors.New("OpenAI API key is not configured")

// apiError is the error envelope returned by the OpenAI API.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// openAIClient posts JSON to the OpenAI REST API.
type openAIClient struct {
	apiKey string
	client *http.Client
}

func newOpenAIClient(apiKey string, client *http.Client) *openAIClient {
	if client == nil {
		client = &http.Client{Timeout: upstreamTimeout}
	}
	return &openAIClient{apiKey: apiKey, client: client}
}

// upstreamMessage carries the provider's own error text.
type upstreamMessage struct {
	status  int
	message string
}

func (e *upstreamMessage) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.status, e.message)
}

// post sends payload to url and decodes a 200 response into out. Non-200
// responses return an *upstreamMessage.
func (c *openAIClient) post(ctx context.Context, url string, payload, out interface{}) error {
	if c.apiKey == "" {
		return errMissingAPIKey
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		msg := string(body)
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return &upstreamMessage{status: resp.StatusCode, message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// clientMessage picks the text shown to API clients for an upstream failure:
// the provider's message when there is one, fallback otherwise.
func clientMessage(err error, fallback string) string {
	var um *upstreamMessage
	if errors.As(err, &um) && um.message != "" {
		return um.message
	}
	if errors.Is(err, errMissingAPIKey) {
		return errMissingAPIKey.Error()
	}
	return fallback
}

// truncate shortens s to at most n runes for log output.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
