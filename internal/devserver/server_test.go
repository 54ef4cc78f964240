package devserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pocbuilder/internal/config"
	"pocbuilder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Models: config.ModelsConfig{
			Available: []string{"gemini-2.5-flash", "gemini-2.5-pro"},
			Defaults: map[string]string{
				model.RoleCodeGenerator: "gemini-2.5-pro",
			},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestListModelsEndpoint(t *testing.T) {
	router := NewRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var catalog model.ModelCatalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.5-pro"}, catalog.AvailableModels)
	assert.Equal(t, "gemini-2.5-pro", catalog.DefaultConfig[model.RoleCodeGenerator])
	assert.Equal(t, "gemini-2.5-flash", catalog.DefaultConfig[model.RoleQueryRefiner])
}

func TestBuildPOCEndpoint(t *testing.T) {
	router := NewRouter(testConfig())

	body := `{"requirement": "Build a todo app", "model_config": {"code_generator_model": "gemini-2.5-pro"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/build-poc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.BuildResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ProjectID)
	assert.Equal(t, "success", resp.Status)
	assert.Len(t, resp.AgentResponses, 6)
	assert.Contains(t, resp.BackendCode, "Build a todo app")
	assert.Contains(t, resp.FrontendCode, "Build a todo app")

	require.NotNil(t, resp.Review)
	require.NotNil(t, resp.Review.BackendScore)
	require.NotNil(t, resp.Review.FrontendScore)
	require.NotNil(t, resp.Review.OverallScore)
	assert.Equal(t, 90.0, *resp.Review.BackendScore)
}

func TestBuildPOCRequiresRequirement(t *testing.T) {
	router := NewRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/build-poc", strings.NewReader(`{"requirement": ""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildPOCAgentOrder(t *testing.T) {
	router := NewRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/build-poc", strings.NewReader(`{"requirement": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.BuildResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.AgentResponses, 6)

	var first struct {
		Agent string `json:"agent"`
	}
	require.NoError(t, json.Unmarshal(resp.AgentResponses[0], &first))
	assert.Equal(t, "Query Refiner", first.Agent)

	var last struct {
		Agent string `json:"agent"`
	}
	require.NoError(t, json.Unmarshal(resp.AgentResponses[5], &last))
	assert.Equal(t, "Code Deployment", last.Agent)
}
