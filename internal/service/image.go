package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pageza/cookbook/backend/internal/storage"
)

// ImageGenerationRequest represents a request to the DALL-E API
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	Style          string `json:"style"`
	ResponseFormat string `json:"response_format"`
}

// ImageGenerationResponse represents the response from DALL-E API
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// ImageService generates recipe photos and optionally keeps a copy.
type ImageService struct {
	api   *openAIClient
	url   string
	model string
	store storage.Storage
}

// NewImageService creates a new ImageService instance. store may be nil, in
// which case the provider's URL is returned as is.
func NewImageService(apiKey, url, model string, store storage.Storage, client *http.Client) *ImageService {
	if url == "" {
		url = defaultImagesURL
	}
	if model == "" {
		model = "dall-e-3"
	}
	return &ImageService{
		api:   newOpenAIClient(apiKey, client),
		url:   url,
		model: model,
		store: store,
	}
}

// GenerateImage turns a short dish description into a square food photo and
// returns its URL. The provider is called once.
func (s *ImageService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", validationError("A valid prompt is required")
	}

	enhanced := buildImagePrompt(prompt)
	logrus.WithFields(logrus.Fields{
		"model":  s.model,
		"prompt": truncate(prompt, 120),
	}).Info("generating recipe image")

	reqBody := ImageGenerationRequest{
		Model:          s.model,
		Prompt:         enhanced,
		N:              1,
		Size:           "1024x1024",
		Quality:        "hd",
		Style:          "natural",
		ResponseFormat: "url",
	}

	var result ImageGenerationResponse
	if err := s.api.post(ctx, s.url, reqBody, &result); err != nil {
		logrus.WithError(err).Error("image generation failed")
		return "", upstreamError(clientMessage(err, "Failed to generate image"), err)
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", upstreamError("Failed to generate image", fmt.Errorf("no image data in API response"))
	}

	imageURL := result.Data[0].URL
	if s.store == nil {
		return imageURL, nil
	}

	stored, err := s.persist(ctx, imageURL)
	if err != nil {
		logrus.WithError(err).Warn("failed to store generated image, returning provider URL")
		return imageURL, nil
	}
	return stored, nil
}

// persist downloads the generated image and hands it to the store. Objects
// are named by content hash, so an identical image is stored once.
func (s *ImageService) persist(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	resp, err := s.api.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	sum := sha256.Sum256(data)
	return s.store.Save(ctx, data, storage.SaveOptions{
		Category:     "generated",
		BaseName:     hex.EncodeToString(sum[:]),
		Extension:    "png",
		ContentType:  "image/png",
		SkipIfExists: true,
	})
}

var imageRequirements = []string{
	"Perfectly lit",
	"Close up on the food",
	"Ultra high resolution with sharp details",
	"Photorealistic, as if taken by a professional food photographer",
	"Featuring beautifully plated food with garnishes",
	"Shot with a shallow depth of field",
	"Using a high-end camera with bokeh effect in background",
	"Composed as a square format image with the food as the central focus",
	"Shot from a 3/4 angle to show volume and dimension",
	"Placed on an elegant plate or wooden board",
	"In a sophisticated setting with minimal props",
	"Vibrant and appetizing with rich colors",
	"Without any text, watermarks, or human hands",
	"Suitable for a high-end cookbook or food magazine",
}

func buildImagePrompt(prompt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a professional, photorealistic food photography image of %s.\n\n", prompt)
	b.WriteString("The image should be:\n")
	for _, req := range imageRequirements {
		b.WriteString("- ")
		b.WriteString(req)
		b.WriteString("\n")
	}
	b.WriteString("\nMake sure the dish looks delicious and mouth-watering, and the composition works well in a square format.")
	return b.String()
}
