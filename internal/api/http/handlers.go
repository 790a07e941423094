package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/api/middleware"
	domain "github.com/GriffinCanCode/AgentOS/fsops/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/service"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint
const Version = "0.1.0"

const (
	defaultDiscoverLimit = 5
	maxDiscoverLimit     = 50
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	catalog  *domain.Catalog
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(registry *service.Registry, catalog *domain.Catalog, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry: registry,
		catalog:  catalog,
		metrics:  metrics,
	}
}

// DiscoverRequest asks which services fit a free-text intent
type DiscoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit"`
}

// Root handles the liveness probe
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "fsops",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"component_registry": gin.H{
			"source":     h.catalog.Source(),
			"components": len(h.catalog.Components()),
			"loaded_at":  loadedAt(h.catalog.Snapshot()),
			"breaker":    h.catalog.BreakerState().String(),
		},
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListServices lists registered services, optionally filtered by category
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")
	if err := utils.ValidateCategory(categoryStr, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices ranks services against an intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateQuery(req.Intent, "intent", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	switch {
	case limit < 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be non-negative"})
		return
	case limit == 0:
		limit = defaultDiscoverLimit
	case limit > maxDiscoverLimit:
		limit = maxDiscoverLimit
	}

	c.JSON(http.StatusOK, gin.H{
		"intent":   req.Intent,
		"services": h.registry.Discover(req.Intent, limit),
	})
}

// ExecuteService executes a service tool. Tool failures are reported in
// the result body with status 200; only malformed requests and cancelled
// executions change the status code.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateParams(req.Params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appCtx := &types.Context{
		RequestID: middleware.GetRequestID(c),
		ClientIP:  c.ClientIP(),
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListComponents searches the component registry; without q it lists all
func (h *Handlers) ListComponents(c *gin.Context) {
	var query *string
	if q, ok := c.GetQuery("q"); ok {
		if err := utils.ValidateQuery(q, "q", false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = &q
	}

	components := h.catalog.Search(query)
	c.JSON(http.StatusOK, gin.H{
		"components": components,
		"count":      len(components),
		"source":     h.catalog.Source(),
	})
}

// LookupComponent finds one component by name or URI
func (h *Handlers) LookupComponent(c *gin.Context) {
	id := c.Query("id")
	if err := utils.ValidateQuery(id, "id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	component, ok := h.catalog.Find(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Component '%s' not found in registry", id),
		})
		return
	}
	c.JSON(http.StatusOK, component)
}

// ReloadRegistry reloads the component registry from its configured source
func (h *Handlers) ReloadRegistry(c *gin.Context) {
	snap, err := h.catalog.Reload(c.Request.Context())
	switch {
	case errors.Is(err, domain.ErrNoSource):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"components": len(snap.Components),
		"source":     snap.Source,
		"loaded_at":  loadedAt(snap),
	})
}

// MetricsJSON returns the metrics snapshot as JSON
func (h *Handlers) MetricsJSON(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

func loadedAt(snap *domain.Snapshot) interface{} {
	if snap == nil || snap.LoadedAt.IsZero() {
		return nil
	}
	return snap.LoadedAt.Format(time.RFC3339)
}
