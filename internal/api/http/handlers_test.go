package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/api/middleware"
	domain "github.com/GriffinCanCode/AgentOS/fsops/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/providers/filesystem"
	registryprovider "github.com/GriffinCanCode/AgentOS/fsops/internal/providers/registry"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testComponents = []domain.Component{
	{Name: "Weather Server", Description: "A weather component", URI: "oci://example.com/weather"},
	{Name: "Time Server", Description: "A time component", URI: "oci://example.com/time"},
}

type testEnv struct {
	router  *gin.Engine
	catalog *domain.Catalog
	metrics *monitoring.Metrics
}

func newTestEnv(t *testing.T, source string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	catalog := domain.NewCatalog(domain.NewLoader(domain.DefaultLoaderConfig()), source)
	catalog.Replace(testComponents)

	registry := service.NewRegistryWithMetrics(metrics)
	require.NoError(t, registry.Register(filesystem.NewProvider(nil, nil)))
	require.NoError(t, registry.Register(registryprovider.NewProvider(catalog, nil)))

	h := NewHandlers(registry, catalog, metrics)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)
	router.GET("/registry/components", h.ListComponents)
	router.GET("/registry/lookup", h.LookupComponent)
	router.POST("/registry/reload", h.ReloadRegistry)
	router.GET("/metrics/json", h.MetricsJSON)

	return &testEnv{router: router, catalog: catalog, metrics: metrics}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(w.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func execute(toolID string, params map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"tool_id": toolID, "params": params}
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t, "")
	w, body := env.do(t, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "")
	w, body := env.do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])

	services := body["service_registry"].(map[string]interface{})
	assert.Equal(t, float64(2), services["total_services"])

	components := body["component_registry"].(map[string]interface{})
	assert.Equal(t, float64(2), components["components"])
	assert.NotNil(t, components["loaded_at"])
	assert.Equal(t, "closed", components["breaker"])
	assert.Contains(t, body, "metrics")
}

func TestListServices(t *testing.T) {
	env := newTestEnv(t, "")

	w, body := env.do(t, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["services"], 2)

	w, body = env.do(t, http.MethodGet, "/services?category=registry", nil)
	require.Equal(t, http.StatusOK, w.Code)
	services := body["services"].([]interface{})
	require.Len(t, services, 1)
	assert.Equal(t, "registry", services[0].(map[string]interface{})["id"])

	w, _ = env.do(t, http.MethodGet, "/services?category=Bad%20Category", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscoverServices(t *testing.T) {
	env := newTestEnv(t, "")

	w, body := env.do(t, http.MethodPost, "/services/discover", map[string]interface{}{"intent": "search the component registry"})
	require.Equal(t, http.StatusOK, w.Code)
	services := body["services"].([]interface{})
	require.NotEmpty(t, services)
	assert.Equal(t, "registry", services[0].(map[string]interface{})["id"])

	w, _ = env.do(t, http.MethodPost, "/services/discover", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodPost, "/services/discover", map[string]interface{}{"intent": "files", "limit": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteFilesystemRoundTrip(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(t.TempDir(), "nested", "note.txt")

	w, body := env.do(t, http.MethodPost, "/services/execute", execute("filesystem.write", map[string]interface{}{
		"path":    path,
		"content": "hello",
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Successfully wrote to file '"+path+"'", body["data"].(map[string]interface{})["result"])

	w, body = env.do(t, http.MethodPost, "/services/execute", execute("filesystem.read", map[string]interface{}{"path": path}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", body["data"].(map[string]interface{})["result"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestExecuteToolFailureIsOK(t *testing.T) {
	env := newTestEnv(t, "")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	w, body := env.do(t, http.MethodPost, "/services/execute", execute("filesystem.delete_file", map[string]interface{}{"path": missing}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "File '"+missing+"' does not exist", body["error"])
	assert.Equal(t, int64(1), env.metrics.Snapshot().ToolFailures)
}

func TestExecuteBadRequests(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name string
		body interface{}
	}{
		{"malformed json", "{not json"},
		{"missing tool id", map[string]interface{}{"params": map[string]interface{}{}}},
		{"invalid tool id", execute("filesystem/read", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := env.do(t, http.MethodPost, "/services/execute", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestExecuteUnknownService(t *testing.T) {
	env := newTestEnv(t, "")
	w, body := env.do(t, http.MethodPost, "/services/execute", execute("nope.tool", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "service not found: nope", body["error"])
}

func TestExecuteRegistryTools(t *testing.T) {
	env := newTestEnv(t, "")

	w, body := env.do(t, http.MethodPost, "/services/execute", execute("registry.get", map[string]interface{}{"id": "time server"}))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["success"])
	component := body["data"].(map[string]interface{})["result"].(map[string]interface{})
	assert.Equal(t, "oci://example.com/time", component["uri"])
}

func TestListComponents(t *testing.T) {
	env := newTestEnv(t, "")

	w, body := env.do(t, http.MethodGet, "/registry/components", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])

	w, body = env.do(t, http.MethodGet, "/registry/components?q=weather+rust", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	w, body = env.do(t, http.MethodGet, "/registry/components?q=%20%20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])

	w, body = env.do(t, http.MethodGet, "/registry/components?q=nothing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []interface{}{}, body["components"])
}

func TestLookupComponent(t *testing.T) {
	env := newTestEnv(t, "")

	w, body := env.do(t, http.MethodGet, "/registry/lookup?id=WEATHER%20SERVER", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "oci://example.com/weather", body["uri"])

	w, body = env.do(t, http.MethodGet, "/registry/lookup?id=oci://example.com/time", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Time Server", body["name"])

	w, body = env.do(t, http.MethodGet, "/registry/lookup?id=ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Component 'ghost' not found in registry", body["error"])

	w, _ = env.do(t, http.MethodGet, "/registry/lookup", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReloadRegistry(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		env := newTestEnv(t, "")
		w, _ := env.do(t, http.MethodPost, "/registry/reload", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registry.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- name: Only\n  description: One\n  uri: oci://x/only\n"), 0o644))

		env := newTestEnv(t, path)
		w, body := env.do(t, http.MethodPost, "/registry/reload", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), body["components"])
		assert.Equal(t, path, body["source"])
		assert.Len(t, env.catalog.Components(), 1)
	})

	t.Run("broken source keeps snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registry.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

		env := newTestEnv(t, path)
		w, body := env.do(t, http.MethodPost, "/registry/reload", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, body["error"], "Failed to parse component registry")
		assert.Len(t, env.catalog.Components(), 2)
	})
}

func TestMetricsJSON(t *testing.T) {
	env := newTestEnv(t, "")
	env.do(t, http.MethodPost, "/services/execute", execute("registry.search", nil))

	w, body := env.do(t, http.MethodGet, "/metrics/json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["tool_calls"])

	h := NewHandlers(service.NewRegistry(), env.catalog, nil)
	router := gin.New()
	router.GET("/metrics/json", h.MetricsJSON)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
