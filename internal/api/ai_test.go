package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/mocks"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func TestGenerateDescription(t *testing.T) {
	stack := SetupTestRouter(t)
	stack.Descriptions.On("GenerateDescription", mock.Anything, "Toast", []string{"bread"}).
		Return("Golden and crisp.", nil)

	w := PerformRequest(stack.Router, http.MethodPost, "/api/v1/generate-description", map[string]interface{}{
		"name":        "Toast",
		"ingredients": []string{"bread"},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"description":"Golden and crisp."}`, w.Body.String())
	stack.Descriptions.AssertExpectations(t)
}

func TestGenerateDescriptionMissingName(t *testing.T) {
	stack := SetupTestRouter(t)
	stack.Descriptions.On("GenerateDescription", mock.Anything, "", []string(nil)).
		Return("", &service.Error{Kind: service.ErrValidation, Message: "Recipe name is required"})

	w := PerformRequest(stack.Router, http.MethodPost, "/api/v1/generate-description", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Recipe name is required", decode(t, w)["error"])
}

func TestGenerateDescriptionUpstreamFailure(t *testing.T) {
	stack := SetupTestRouter(t)
	stack.Descriptions.On("GenerateDescription", mock.Anything, "Toast", []string(nil)).
		Return("", &service.Error{Kind: service.ErrUpstream, Message: "Incorrect API key provided"})

	w := PerformRequest(stack.Router, http.MethodPost, "/api/v1/generate-description", map[string]interface{}{"name": "Toast"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Incorrect API key provided","code":"UPSTREAM_ERROR"}`, w.Body.String())
}

func TestGenerateImage(t *testing.T) {
	stack := SetupTestRouter(t)
	stack.Images.On("GenerateImage", mock.Anything, "lemon tart").Return("https://img.example/1.png", nil)

	w := PerformRequest(stack.Router, http.MethodPost, "/api/v1/generate-image", map[string]interface{}{"prompt": "lemon tart"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imageUrl":"https://img.example/1.png"}`, w.Body.String())
}

func TestGenerateImageBadBody(t *testing.T) {
	stack := SetupTestRouter(t)

	w := PerformRequest(stack.Router, http.MethodPost, "/api/v1/generate-image", map[string]interface{}{"prompt": 42})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A valid prompt is required", decode(t, w)["error"])
	stack.Images.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything)
}

func TestAIEndpointsAreRateLimited(t *testing.T) {
	client := testhelpers.SetupRedis(t)

	images := new(mocks.MockImageService)
	images.On("GenerateImage", mock.Anything, "soup").Return("https://img.example/soup.png", nil)

	router := gin.New()
	RegisterRoutes(router, Services{
		Recipes:      new(mocks.MockRecipeService),
		Descriptions: new(mocks.MockDescriptionService),
		Images:       images,
		Dashboard:    new(mocks.MockDashboardService),
		AILimiter:    middleware.NewAIRateLimiter(client, 1, time.Hour),
	})

	w := PerformRequest(router, http.MethodPost, "/api/v1/generate-image", map[string]interface{}{"prompt": "soup"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(router, http.MethodPost, "/api/v1/generate-image", map[string]interface{}{"prompt": "soup"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	images.AssertNumberOfCalls(t, "GenerateImage", 1)
}
