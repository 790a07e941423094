// Package utils validates inputs arriving over the HTTP API before they
// reach the service registry.
package utils
