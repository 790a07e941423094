// Package main is the entry point for the fsops server.
//
// fsops exposes local filesystem operations and a searchable component
// registry as tools over a JSON API.
//
// Configuration comes from environment variables (see internal/infrastructure/config);
// flags override individual values.
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -registry https://example.com/registry.json.gz
//
//	# Development mode (colored logs, debug level)
//	./server -dev -registry ~/registry.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
