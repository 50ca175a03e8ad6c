package framegraph

import (
	"context"
	"slices"
)

// execFunc is the type-erased deferred execution closure of a pass. AddPass
// wraps the caller's typed closure so the pass table stays homogeneous.
type execFunc func(ctx context.Context, res *PassResources) error

// passNode is one declared pass: its access sets, its side-effect flag and
// its deferred execution closure.
type passNode struct {
	name string
	id   uint32
	exec execFunc

	creates []NodeID
	reads   []accessDecl
	writes  []accessDecl

	hasSideEffect bool

	// refCount is seeded to len(writes) during compile and decremented as
	// writes are culled; a pass at zero without a side effect never runs.
	refCount int32
}

func (p *passNode) hasCreate(id NodeID) bool {
	return slices.Contains(p.creates, id)
}

func (p *passNode) hasRead(id NodeID) bool {
	return slices.ContainsFunc(p.reads, func(d accessDecl) bool { return d.id == id })
}

func (p *passNode) hasWrite(id NodeID) bool {
	return slices.ContainsFunc(p.writes, func(d accessDecl) bool { return d.id == id })
}

// declared reports whether the pass may touch id during execution.
func (p *passNode) declared(id NodeID) bool {
	return p.hasCreate(id) || p.hasRead(id) || p.hasWrite(id)
}

func (p *passNode) canExecute() bool {
	return p.refCount > 0 || p.hasSideEffect
}

// addRead records a read declaration, deduplicated on the (id, flags) pair.
func (p *passNode) addRead(d accessDecl) NodeID {
	if !slices.Contains(p.reads, d) {
		p.reads = append(p.reads, d)
	}
	return d.id
}

// addWrite records a write declaration, deduplicated on the (id, flags) pair.
func (p *passNode) addWrite(d accessDecl) NodeID {
	if !slices.Contains(p.writes, d) {
		p.writes = append(p.writes, d)
	}
	return d.id
}
