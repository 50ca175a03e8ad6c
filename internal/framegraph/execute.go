package framegraph

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/ctxlog"
)

// Execute walks the passes in declaration order, skipping culled ones. For
// each surviving pass it realizes the transient resources the pass creates,
// fires the PreRead/PreWrite hooks of the declared accesses, invokes the
// exec closure, and destroys every transient entry whose lifetime ends at
// this pass.
//
// The allocator is opaque to the graph; it is handed to every kind
// Create/Destroy callback untouched.
//
// If a callback fails the walk stops, every transient backing store that
// was realized so far is released best-effort, and the callback's error is
// returned wrapped.
func (g *FrameGraph) Execute(ctx context.Context, allocator any) error {
	if g.phase != phaseCompiled {
		return fmt.Errorf("%w: execute called on a %s graph", ErrWrongPhase, g.phase)
	}
	g.phase = phaseExecuted
	logger := ctxlog.FromContext(ctx)

	for _, p := range g.passes {
		if !p.canExecute() {
			logger.Debug("Skipping culled pass.", "pass", p.name)
			continue
		}
		passLogger := logger.With("pass", p.name)
		passLogger.Debug("Executing pass.")

		for _, cid := range p.creates {
			e := g.entryOf(cid)
			if err := e.create(ctx, allocator); err != nil {
				g.releaseRealized(ctx, allocator)
				return fmt.Errorf("creating %q for pass %q: %w", g.node(cid).name, p.name, err)
			}
			passLogger.Debug("Realized transient resource.", "resource", g.node(cid).name, "desc", e.box.label())
		}

		for _, d := range p.reads {
			g.entryOf(d.id).box.preRead(ctx, d.flags)
		}
		for _, d := range p.writes {
			g.entryOf(d.id).box.preWrite(ctx, d.flags)
		}

		if p.exec != nil {
			res := &PassResources{graph: g, pass: p}
			if err := p.exec(ctx, res); err != nil {
				g.releaseRealized(ctx, allocator)
				return fmt.Errorf("pass %q: %w", p.name, err)
			}
		}

		for _, e := range g.entries {
			if e.last == int32(p.id) && e.isTransient() && e.realized {
				if err := e.destroy(ctx, allocator); err != nil {
					g.releaseRealized(ctx, allocator)
					return fmt.Errorf("destroying entry %d after pass %q: %w", e.id, p.name, err)
				}
				passLogger.Debug("Released transient resource.", "entry", e.id)
			}
		}
	}
	return nil
}

// releaseRealized destroys every transient backing store that still exists.
// It runs when a callback fails mid-walk; destroy errors are logged rather
// than returned so they cannot mask the original failure.
func (g *FrameGraph) releaseRealized(ctx context.Context, allocator any) {
	logger := ctxlog.FromContext(ctx)
	for _, e := range g.entries {
		if e.isTransient() && e.realized {
			if err := e.destroy(ctx, allocator); err != nil {
				logger.Error("Failed to release transient resource during unwind.", "entry", e.id, "error", err)
			}
		}
	}
}
