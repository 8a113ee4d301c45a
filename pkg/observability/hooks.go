// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about chart builds, bridge traffic, and
// cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetBridgeHooks(&myBridgeHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from the chart build pipeline.
type BuildHooks interface {
	// OnBuildStart records the beginning of a chart build.
	OnBuildStart(chartType, family string)

	// OnBuildComplete records a finished build, successful or not.
	OnBuildComplete(chartType string, err error)
}

// =============================================================================
// Bridge Hooks
// =============================================================================

// BridgeHooks receives events from the live-update bridge.
type BridgeHooks interface {
	// OnBind records a proxy binding to a rendered chart instance.
	OnBind(ctx context.Context, instanceID, chartType string)

	// OnMessage records a message sent across the update boundary.
	OnMessage(ctx context.Context, kind, instanceID string)

	// OnSendError records a transport failure.
	OnSendError(ctx context.Context, kind, instanceID string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(string, string)   {}
func (NoopBuildHooks) OnBuildComplete(string, error) {}

// NoopBridgeHooks is a no-op implementation of BridgeHooks.
type NoopBridgeHooks struct{}

func (NoopBridgeHooks) OnBind(context.Context, string, string)             {}
func (NoopBridgeHooks) OnMessage(context.Context, string, string)          {}
func (NoopBridgeHooks) OnSendError(context.Context, string, string, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks  BuildHooks  = NoopBuildHooks{}
	bridgeHooks BridgeHooks = NoopBridgeHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any builds.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetBridgeHooks registers custom bridge hooks.
// This should be called once at application startup before any bridge use.
func SetBridgeHooks(h BridgeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		bridgeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Bridge returns the registered bridge hooks.
func Bridge() BridgeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return bridgeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	bridgeHooks = NoopBridgeHooks{}
	cacheHooks = NoopCacheHooks{}
}
