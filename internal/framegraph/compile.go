package framegraph

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/ctxlog"
)

// Compile turns the declarations into an executable schedule: it seeds
// reference counts, culls passes and resource versions that no
// side-effecting pass ultimately consumes, and computes the producer/last
// lifetime bracket of every entry. The graph moves from open to compiled;
// further declarations are rejected.
func (g *FrameGraph) Compile(ctx context.Context) error {
	if g.phase != phaseOpen {
		return fmt.Errorf("%w: compile called on a %s graph", ErrWrongPhase, g.phase)
	}
	logger := ctxlog.FromContext(ctx)

	// Seed: a pass holds one reference per write, a node one per reader.
	for _, p := range g.passes {
		p.refCount = int32(len(p.writes))
		for _, d := range p.reads {
			g.nodes[d.id].refCount++
		}
		for _, d := range p.writes {
			g.nodes[d.id].producer = int32(p.id)
		}
	}

	// Cull in reverse topological order: start from every node nothing
	// reads and walk producers backwards, releasing their own reads as
	// they die. Side-effecting producers stop the walk.
	var dead []NodeID
	for i := range g.nodes {
		if g.nodes[i].refCount == 0 {
			dead = append(dead, g.nodes[i].id)
		}
	}
	for len(dead) > 0 {
		id := dead[len(dead)-1]
		dead = dead[:len(dead)-1]

		prodIdx := g.nodes[id].producer
		if prodIdx == none {
			continue
		}
		prod := g.passes[prodIdx]
		if prod.hasSideEffect {
			continue
		}
		if prod.refCount < 1 {
			panic(fmt.Sprintf("framegraph: refcount underflow on pass %q", prod.name))
		}
		prod.refCount--
		if prod.refCount == 0 {
			logger.Debug("Culled pass.", "pass", prod.name)
			for _, d := range prod.reads {
				n := &g.nodes[d.id]
				n.refCount--
				if n.refCount == 0 {
					dead = append(dead, d.id)
				}
			}
		}
	}

	// Lifetimes, in declaration order: the earliest surviving pass that
	// creates an entry realizes it, the last one touching any version of
	// it releases it. Later passes overwrite earlier ones, so declaration
	// order is authoritative for the `last` slot.
	for _, p := range g.passes {
		if !p.canExecute() {
			continue
		}
		for _, cid := range p.creates {
			g.entryOf(cid).producer = int32(p.id)
		}
		for _, d := range p.writes {
			g.entryOf(d.id).last = int32(p.id)
		}
		for _, d := range p.reads {
			g.entryOf(d.id).last = int32(p.id)
		}
	}

	g.phase = phaseCompiled
	logger.Debug("Frame graph compiled.",
		"passes", len(g.passes),
		"resource_nodes", len(g.nodes),
		"entries", len(g.entries))
	return nil
}
