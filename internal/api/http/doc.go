// Package http exposes the service registry and the component catalog over
// a JSON API.
//
// Routes (registered by the server package):
//
//	GET  /                     liveness
//	GET  /health               registry and metrics summary
//	GET  /services             list services (?category=)
//	POST /services/discover    rank services against an intent
//	POST /services/execute     run a tool: {"tool_id": "...", "params": {...}}
//	GET  /registry/components  search components (?q=)
//	GET  /registry/lookup      find a component by name or URI (?id=)
//	POST /registry/reload      reload the catalog from its source
//	GET  /metrics/json         metrics snapshot
package http
