// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Filesystem and registry operations never log on their own. Failures are
// logged once, at the tool boundary, with structured fields (tool, kind,
// path) so the rendered error string stays the only thing a caller sees.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Warn("Tool failed", zap.String("tool", "filesystem.read"), zap.Error(err))
package logging
