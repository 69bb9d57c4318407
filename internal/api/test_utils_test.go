package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/mocks"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testStack is a router over a real SQLite-backed service layer with the AI
// services mocked.
type testStack struct {
	Router       *gin.Engine
	Descriptions *mocks.MockDescriptionService
	Images       *mocks.MockImageService
}

// SetupTestRouter wires the full API over an in-memory database.
func SetupTestRouter(t *testing.T) *testStack {
	t.Helper()

	db := testhelpers.SetupSQLite(t)
	stats, err := repository.NewStatsRepositoryFromGorm(db)
	require.NoError(t, err)

	stack := &testStack{
		Router:       gin.New(),
		Descriptions: new(mocks.MockDescriptionService),
		Images:       new(mocks.MockImageService),
	}
	stack.Router.Use(middleware.Recovery())
	RegisterRoutes(stack.Router, Services{
		Recipes:      service.NewRecipeService(repository.NewGormRepository(db, service.GenerateEmbedding)),
		Descriptions: stack.Descriptions,
		Images:       stack.Images,
		Dashboard:    service.NewDashboardService(stats),
	})
	return stack
}

// SetupMockRouter wires the API over mocked services only.
func SetupMockRouter(t *testing.T) (*gin.Engine, *mocks.MockRecipeService) {
	t.Helper()
	recipes := new(mocks.MockRecipeService)
	router := gin.New()
	RegisterRoutes(router, Services{
		Recipes:      recipes,
		Descriptions: new(mocks.MockDescriptionService),
		Images:       new(mocks.MockImageService),
		Dashboard:    new(mocks.MockDashboardService),
	})
	return router, recipes
}

// PerformRequest sends body as JSON when it is not nil.
func PerformRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
