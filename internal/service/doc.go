// Package service provides the service registry for tool providers.
//
// The registry maintains a catalog of available service providers and
// handles service discovery, tool execution, and relevance scoring.
//
// Features:
//   - Thread-safe service registration
//   - Category-based filtering
//   - Intent-based discovery with scoring
//   - Tool execution with per-call metrics
//
// Tool IDs take the form "<service>.<tool>"; the prefix selects the provider.
//
// Example Usage:
//
//	registry := service.NewRegistryWithMetrics(metrics)
//	registry.Register(filesystemProvider)
//	services := registry.Discover("read file", 5)
//	result, err := registry.Execute(ctx, "filesystem.read", params, appCtx)
package service
