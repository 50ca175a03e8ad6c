// Package registry maps the kind labels used in frame files to the Go
// hooks that declare, import and exercise resources of that kind.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/framegraphgo/internal/framegraph"
)

// Module is the interface a package must implement to contribute resource
// kinds to an application instance.
type Module interface {
	Register(r *Registry)
}

// RegisteredKind bundles the Go hooks for one resource kind label.
type RegisteredKind struct {
	// NewDesc returns a pointer to a zero descriptor for HCL decoding.
	NewDesc func() any

	// Declare records the creation of a transient resource on the builder
	// and returns its handle. desc is the pointer NewDesc produced, filled
	// by the loader.
	Declare func(b *framegraph.Builder, name string, desc any) framegraph.NodeID

	// Import registers a caller-backed resource on the graph. handle is
	// the opaque backing identifier from the frame file.
	Import func(g *framegraph.FrameGraph, name string, desc any, handle uint32) framegraph.NodeID

	// Touch exercises a declared resource from inside a pass body; the
	// demo workload calls it for every declared access.
	Touch func(ctx context.Context, res *framegraph.PassResources, id framegraph.NodeID) error
}

// Registry holds the registered kinds for a single application instance.
type Registry struct {
	kinds map[string]*RegisteredKind
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{kinds: make(map[string]*RegisteredKind)}
}

// RegisterKind registers the hooks for a kind label. Registering the same
// label twice is a programmer error and panics.
func (r *Registry) RegisterKind(name string, kind *RegisteredKind) {
	if _, exists := r.kinds[name]; exists {
		panic(fmt.Sprintf("resource kind %q already registered", name))
	}
	slog.Debug("Registering resource kind.", "name", name)
	r.kinds[name] = kind
}

// Kind looks up a registered kind by label.
func (r *Registry) Kind(name string) (*RegisteredKind, error) {
	kind, ok := r.kinds[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource kind %q", name)
	}
	return kind, nil
}

// Len reports how many kinds are registered.
func (r *Registry) Len() int { return len(r.kinds) }
