/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the
filesystem tool service, tracking HTTP requests, tool calls and the
component registry.

# Features

- HTTP request metrics (latency, throughput, size)
- Service call metrics (duration, errors) per service and tool
- Registry metrics (component count, reload outcomes)
- Uptime

Every Metrics value owns its own Prometheus registry, so several collectors
can coexist in one process (tests build one per server).

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time operations
	timer := monitoring.NewTimer(metrics, "filesystem", "filesystem.read")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
