package filesystem

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/fsops/internal/shared/types"
	"go.uber.org/zap"
)

// Provider exposes filesystem operations as tools
type Provider struct {
	// Module instances
	basicOps      *BasicOps
	directoryOps  *DirectoryOps
	operationsOps *OperationsOps
	metadataOps   *MetadataOps
	searchOps     *SearchOps

	logger *logging.Logger
}

// NewProvider creates a filesystem provider over shared ops helpers
func NewProvider(ops *FilesystemOps, logger *logging.Logger) *Provider {
	if ops == nil {
		ops = NewFilesystemOps(DefaultTreeDepth)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Provider{
		basicOps:      &BasicOps{FilesystemOps: ops},
		directoryOps:  &DirectoryOps{FilesystemOps: ops},
		operationsOps: &OperationsOps{FilesystemOps: ops},
		metadataOps:   &MetadataOps{FilesystemOps: ops},
		searchOps:     &SearchOps{FilesystemOps: ops},
		logger:        logger.Named("filesystem"),
	}
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.basicOps.GetTools()...)
	tools = append(tools, p.directoryOps.GetTools()...)
	tools = append(tools, p.operationsOps.GetTools()...)
	tools = append(tools, p.metadataOps.GetTools()...)
	tools = append(tools, p.searchOps.GetTools()...)

	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "Local file and directory operations with ~ expansion",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"list", "read", "write", "mkdir", "move",
			"delete", "exists", "tree", "search", "glob", "info", "mime",
		},
		Tools: tools,
	}
}

// Execute routes to appropriate module. Operation failures are reported in
// the result; the returned error is reserved for cancellation.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "filesystem.list":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			return p.directoryOps.List(path)
		})
	case "filesystem.read":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			return p.basicOps.Read(path)
		})
	case "filesystem.write":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			content, err := contentParam(params, "content")
			if err != nil {
				return nil, err
			}
			return p.basicOps.Write(path, content)
		})
	case "filesystem.exists":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			return p.basicOps.Exists(path)
		})
	case "filesystem.create_directory":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			return p.directoryOps.CreateDirectory(path)
		})
	case "filesystem.delete_directory":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			return p.directoryOps.DeleteDirectory(path)
		})
	case "filesystem.tree":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			depth, err := depthParam(params, "max_depth", p.directoryOps.TreeDepth)
			if err != nil {
				return nil, err
			}
			return p.directoryOps.Tree(ctx, path, depth)
		})
	case "filesystem.move":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			source, err := stringParam(params, "source")
			if err != nil {
				return nil, err
			}
			destination, err := stringParam(params, "destination")
			if err != nil {
				return nil, err
			}
			return p.operationsOps.Move(source, destination)
		})
	case "filesystem.delete_file":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			return p.operationsOps.DeleteFile(path)
		})
	case "filesystem.info":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			return p.metadataOps.Info(path)
		})
	case "filesystem.mime_type":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			return p.metadataOps.MIMEType(path)
		})
	case "filesystem.search":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			pattern, err := contentParam(params, "pattern")
			if err != nil {
				return nil, err
			}
			return p.searchOps.Search(ctx, path, pattern)
		})
	case "filesystem.glob":
		return p.run(ctx, toolID, appCtx, params, func() (interface{}, error) {
			path, err := stringParam(params, "path")
			if err != nil {
				return nil, err
			}
			pattern, err := stringParam(params, "pattern")
			if err != nil {
				return nil, err
			}
			return p.searchOps.Glob(path, pattern)
		})
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

// run executes op and folds its outcome into a Result
func (p *Provider) run(ctx context.Context, toolID string, appCtx *types.Context, params map[string]interface{}, op func() (interface{}, error)) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, err := op()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		p.logFailure(toolID, appCtx, err)
		return types.Failure(err.Error()), nil
	}

	return types.Success(value), nil
}

func (p *Provider) logFailure(toolID string, appCtx *types.Context, err error) {
	fields := []zap.Field{zap.String("tool", toolID), zap.Error(err)}
	var fsErr *Error
	if errors.As(err, &fsErr) {
		fields = append(fields,
			zap.String("kind", fsErr.Kind.String()),
			zap.String("path", fsErr.Path),
		)
	}
	if appCtx != nil && appCtx.RequestID != "" {
		fields = append(fields, zap.String("request_id", appCtx.RequestID))
	}
	p.logger.Warn("filesystem operation failed", fields...)
}

// stringParam fetches a required, non-empty string parameter
func stringParam(params map[string]interface{}, name string) (string, error) {
	value, ok := params[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s parameter required", name)
	}
	return value, nil
}

// contentParam fetches a required string parameter that may be empty
func contentParam(params map[string]interface{}, name string) (string, error) {
	value, ok := params[name].(string)
	if !ok {
		return "", fmt.Errorf("%s parameter required", name)
	}
	return value, nil
}

// depthParam fetches an optional non-negative integer parameter
func depthParam(params map[string]interface{}, name string, fallback int) (int, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return fallback, nil
	}

	var depth int
	switch v := raw.(type) {
	case int:
		depth = v
	case int64:
		depth = int(v)
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 {
			return 0, fmt.Errorf("%s must be a non-negative integer", name)
		}
		depth = int(v)
	default:
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}

	if depth < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return depth, nil
}
