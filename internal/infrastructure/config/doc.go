// Package config provides 12-factor configuration management for fsops.
//
// Configuration is loaded from environment variables with defaults.
// CLI flags in cmd/server can override individual values.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Registry: Component registry source and fetch policy
//   - Filesystem: Defaults for filesystem tools
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - REGISTRY_SOURCE, REGISTRY_TIMEOUT, REGISTRY_RETRY_MAX
//   - REGISTRY_BREAKER_THRESHOLD, REGISTRY_BREAKER_COOLDOWN
//   - FS_TREE_DEPTH
package config
