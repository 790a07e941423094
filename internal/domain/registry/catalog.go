package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/AgentOS/fsops/internal/infrastructure/resilience"
)

// ErrNoSource is returned by Reload when the catalog has nowhere to load from
var ErrNoSource = errors.New("registry source not configured")

// Snapshot is an immutable view of the registry at one point in time
type Snapshot struct {
	Components []Component
	Source     string
	LoadedAt   time.Time
}

// Catalog holds the current registry snapshot. Readers never block and
// never observe a partially loaded registry.
type Catalog struct {
	loader   *Loader
	source   string
	snapshot atomic.Pointer[Snapshot]
	reloadMu sync.Mutex // serializes reloads

	observersMu sync.RWMutex
	observers   []func(*Snapshot)
	failures    []func(error)
}

// NewCatalog creates an empty catalog bound to source
func NewCatalog(loader *Loader, source string) *Catalog {
	c := &Catalog{loader: loader, source: source}
	c.snapshot.Store(&Snapshot{Components: []Component{}, Source: source})
	return c
}

// Source returns the configured registry location
func (c *Catalog) Source() string {
	return c.source
}

// BreakerState reports whether remote reloads are currently admitted
func (c *Catalog) BreakerState() resilience.State {
	if c.loader == nil {
		return resilience.StateClosed
	}
	return c.loader.BreakerState()
}

// Snapshot returns the current snapshot
func (c *Catalog) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

// Components returns the current components. Callers must not modify the
// returned slice.
func (c *Catalog) Components() []Component {
	return c.snapshot.Load().Components
}

// Search runs Search over the current snapshot
func (c *Catalog) Search(query *string) []Component {
	return Search(c.Components(), query)
}

// Find runs Find over the current snapshot
func (c *Catalog) Find(nameOrURI string) (Component, bool) {
	return Find(c.Components(), nameOrURI)
}

// OnReload registers fn to be called with every newly installed snapshot
func (c *Catalog) OnReload(fn func(*Snapshot)) {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()
	c.observers = append(c.observers, fn)
}

// OnReloadFailure registers fn to be called when a reload from the source fails
func (c *Catalog) OnReloadFailure(fn func(error)) {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()
	c.failures = append(c.failures, fn)
}

// Reload loads the source and installs the result. On failure the previous
// snapshot stays in place.
func (c *Catalog) Reload(ctx context.Context) (*Snapshot, error) {
	if c.source == "" || c.loader == nil {
		return nil, ErrNoSource
	}

	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	components, err := c.loader.Load(ctx, c.source)
	if err != nil {
		c.observersMu.RLock()
		failures := c.failures
		c.observersMu.RUnlock()
		for _, fn := range failures {
			fn(err)
		}
		return nil, err
	}

	return c.install(components), nil
}

// Replace installs components directly, bypassing the loader
func (c *Catalog) Replace(components []Component) *Snapshot {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()
	return c.install(cloneComponents(components))
}

func (c *Catalog) install(components []Component) *Snapshot {
	snap := &Snapshot{
		Components: components,
		Source:     c.source,
		LoadedAt:   time.Now(),
	}
	c.snapshot.Store(snap)

	c.observersMu.RLock()
	observers := c.observers
	c.observersMu.RUnlock()
	for _, fn := range observers {
		fn(snap)
	}
	return snap
}
