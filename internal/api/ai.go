package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

// AIHandler proxies the description and image generators.
type AIHandler struct {
	descriptions service.IDescriptionService
	images       service.IImageService
	limiter      *middleware.RateLimiter
}

func NewAIHandler(descriptions service.IDescriptionService, images service.IImageService, limiter *middleware.RateLimiter) *AIHandler {
	return &AIHandler{descriptions: descriptions, images: images, limiter: limiter}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	limit := h.limiter.RateLimitMiddleware()
	router.POST("/generate-description", limit, h.GenerateDescription)
	router.POST("/generate-image", limit, h.GenerateImage)
}

type generateDescriptionRequest struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

func (h *AIHandler) GenerateDescription(c *gin.Context) {
	var req generateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Recipe name is required")
		return
	}
	description, err := h.descriptions.GenerateDescription(c.Request.Context(), req.Name, req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description})
}

func (h *AIHandler) GenerateImage(c *gin.Context) {
	var req generateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "A valid prompt is required")
		return
	}
	imageURL, err := h.images.GenerateImage(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
}
