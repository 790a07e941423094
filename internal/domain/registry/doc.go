// Package registry provides the component registry: a catalog of
// installable components described by name, description and URI.
//
// Components:
//   - Parse / Search / Find: pure functions over a component slice
//   - Loader: Reads registry documents from files or HTTP(S) URLs
//   - Catalog: Holds the current snapshot and swaps it on reload
//
// Formats:
//   - JSON (default), YAML (.yaml, .yml), TOML (.toml)
//   - Any of the above gzip-compressed with a trailing .gz
//
// Example Usage:
//
//	loader := registry.NewLoader(registry.DefaultLoaderConfig())
//	catalog := registry.NewCatalog(loader, "~/.config/registry.json")
//	if _, err := catalog.Reload(ctx); err != nil { ... }
//	matches := registry.Search(catalog.Components(), &query)
package registry
