package framegraph

import (
	"context"
	"fmt"
)

type phase uint8

const (
	phaseOpen phase = iota
	phaseCompiled
	phaseExecuted
)

func (ph phase) String() string {
	switch ph {
	case phaseOpen:
		return "open"
	case phaseCompiled:
		return "compiled"
	case phaseExecuted:
		return "executed"
	}
	return "unknown"
}

// FrameGraph owns the three tables of the scheduling core: pass nodes,
// resource nodes (handle versions) and resource entries (physical storage).
// A graph is single-use: declare, compile, execute, discard. It must not be
// shared across goroutines.
type FrameGraph struct {
	passes  []*passNode
	nodes   []resourceNode
	entries []*resourceEntry
	phase   phase
}

// New returns an empty graph in the declaration phase.
func New() *FrameGraph {
	return &FrameGraph{}
}

// Reserve pre-sizes the internal tables. Purely a capacity hint.
func (g *FrameGraph) Reserve(numPasses, numResources int) {
	if cap(g.passes) < numPasses {
		g.passes = append(make([]*passNode, 0, numPasses), g.passes...)
	}
	if cap(g.nodes) < numResources {
		g.nodes = append(make([]resourceNode, 0, numResources), g.nodes...)
	}
	if cap(g.entries) < numResources {
		g.entries = append(make([]*resourceEntry, 0, numResources), g.entries...)
	}
}

// IsValid reports whether id still names the current version of its entry.
// A handle held across a later write comes back false.
func (g *FrameGraph) IsValid(id NodeID) bool {
	n := g.node(id)
	return n.version == g.entries[n.resourceID].version
}

// AddPass declares a pass. The setup callback runs synchronously against a
// Builder scoped to the new pass; the exec closure is retained and invoked
// during Execute, after the pass survives culling. The returned *Data is
// stable and stays readable after setup returns.
func AddPass[Data any](g *FrameGraph, name string, setup func(b *Builder, data *Data), exec func(ctx context.Context, data *Data, res *PassResources) error) *Data {
	g.mustBeOpen("add pass")
	data := new(Data)
	p := &passNode{name: name, id: uint32(len(g.passes))}
	if exec != nil {
		p.exec = func(ctx context.Context, res *PassResources) error {
			return exec(ctx, data, res)
		}
	}
	g.passes = append(g.passes, p)

	b := &Builder{graph: g, pass: p}
	if setup != nil {
		setup(b, data)
	}
	b.sealed = true
	return data
}

// Import registers a caller-owned backing resource. The graph will never
// create or destroy it, but passes may read and write it; writing an
// imported resource marks the writing pass as side-effecting.
func Import[R any, D any, PR virtualPtr[R, D]](g *FrameGraph, name string, desc D, resource R) NodeID {
	return g.addEntry(imported, name, newBoxed[R, D, PR](desc, resource))
}

// Descriptor returns the descriptor attached to id's entry.
func Descriptor[D any](g *FrameGraph, id NodeID) (D, error) {
	return descriptorOf[D](g.entryOf(id))
}

func (g *FrameGraph) addEntry(typ entryType, name string, box boxedResource) NodeID {
	g.mustBeOpen("declare resource")
	rid := uint32(len(g.entries))
	g.entries = append(g.entries, &resourceEntry{
		typ:      typ,
		id:       rid,
		version:  initialVersion,
		box:      box,
		producer: none,
		last:     none,
	})
	return g.createResourceNode(name, rid, initialVersion)
}

func (g *FrameGraph) createResourceNode(name string, resourceID, version uint32) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, resourceNode{
		name:       name,
		id:         id,
		resourceID: resourceID,
		version:    version,
		producer:   none,
	})
	return id
}

// clone advances the entry version and returns a node at the new version.
// Every handle minted before the clone is stale from here on.
func (g *FrameGraph) clone(id NodeID) NodeID {
	n := g.node(id)
	e := g.entries[n.resourceID]
	e.version++
	return g.createResourceNode(n.name, n.resourceID, e.version)
}

func (g *FrameGraph) node(id NodeID) *resourceNode {
	if int(id) >= len(g.nodes) {
		panic(fmt.Errorf("%w: unknown node %d", ErrInvalidHandle, id))
	}
	return &g.nodes[id]
}

func (g *FrameGraph) entryOf(id NodeID) *resourceEntry {
	return g.entries[g.node(id).resourceID]
}

func (g *FrameGraph) mustBeOpen(op string) {
	if g.phase != phaseOpen {
		panic(fmt.Errorf("%w: cannot %s, graph is %s", ErrWrongPhase, op, g.phase))
	}
}
