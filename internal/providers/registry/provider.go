// Package registry exposes the component registry as tools.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/GriffinCanCode/AgentOS/fsops/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/types"
	"go.uber.org/zap"
)

// Provider serves registry search, lookup and reload
type Provider struct {
	catalog *domain.Catalog
	logger  *logging.Logger
}

// NewProvider creates a registry provider over catalog
func NewProvider(catalog *domain.Catalog, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{
		catalog: catalog,
		logger:  logger.Named("registry"),
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           "registry",
		Name:         "Component Registry",
		Description:  "Search and look up components by name, description or URI",
		Category:     types.CategoryRegistry,
		Capabilities: []string{"search", "lookup", "reload"},
		Tools: []types.Tool{
			{
				ID:          "registry.search",
				Name:        "Search Components",
				Description: "Find components matching any whitespace-separated term (case-insensitive)",
				Parameters: []types.Parameter{
					{Name: "query", Type: "string", Description: "Search terms; omit to list everything", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "registry.get",
				Name:        "Get Component",
				Description: "Look up a component by name (case-insensitive) or exact URI",
				Parameters: []types.Parameter{
					{Name: "id", Type: "string", Description: "Component name or URI", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "registry.reload",
				Name:        "Reload Registry",
				Description: "Reload the registry from its configured source",
				Returns:     "object",
			},
		},
	}
}

// Execute runs a registry tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "registry.search":
		return p.search(params)
	case "registry.get":
		return p.get(params)
	case "registry.reload":
		return p.reload(ctx, appCtx)
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

func (p *Provider) search(params map[string]interface{}) (*types.Result, error) {
	var query *string
	if raw, ok := params["query"]; ok && raw != nil {
		q, ok := raw.(string)
		if !ok {
			return types.Failure("query must be a string"), nil
		}
		query = &q
	}

	return types.Success(p.catalog.Search(query)), nil
}

func (p *Provider) get(params map[string]interface{}) (*types.Result, error) {
	id, ok := params["id"].(string)
	if !ok || id == "" {
		return types.Failure("id parameter required"), nil
	}

	component, found := p.catalog.Find(id)
	if !found {
		return types.Failure(fmt.Sprintf("Component '%s' not found in registry", id)), nil
	}
	return types.Success(component), nil
}

func (p *Provider) reload(ctx context.Context, appCtx *types.Context) (*types.Result, error) {
	snap, err := p.catalog.Reload(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		fields := []zap.Field{zap.String("source", p.catalog.Source()), zap.Error(err)}
		if appCtx != nil && appCtx.RequestID != "" {
			fields = append(fields, zap.String("request_id", appCtx.RequestID))
		}
		p.logger.Warn("registry reload failed", fields...)
		return types.Failure(err.Error()), nil
	}

	p.logger.Info("registry reloaded",
		zap.String("source", snap.Source),
		zap.Int("components", len(snap.Components)),
	)
	return types.SuccessData(map[string]interface{}{
		"components": len(snap.Components),
		"source":     snap.Source,
		"loaded_at":  snap.LoadedAt.Format(time.RFC3339),
	}), nil
}
