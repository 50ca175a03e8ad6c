package framegraph

import "fmt"

// Builder is the declaration interface handed to a pass's setup callback.
// It is scoped to a single pass and only live for the duration of setup;
// retaining it and declaring later panics.
//
// Declaration mistakes are programmer errors, so every precondition breach
// panics rather than returning an error. Stale handles panic with
// ErrInvalidHandle and use outside setup with ErrWrongPhase; reading a node
// the pass already created or wrote panics with a plain error that wraps no
// sentinel.
type Builder struct {
	graph  *FrameGraph
	pass   *passNode
	sealed bool
}

// Create declares a transient resource of kind R produced by this pass. The
// backing object is default-constructed now and realized during Execute,
// just before the first live pass that needs it.
func Create[R any, D any, PR virtualPtr[R, D]](b *Builder, name string, desc D) NodeID {
	b.mustBeLive()
	var zero R
	id := b.graph.addEntry(transient, name, newBoxed[R, D, PR](desc, zero))
	b.pass.creates = append(b.pass.creates, id)
	return id
}

// Read declares that this pass consumes id. Returns id unchanged.
func (b *Builder) Read(id NodeID) NodeID {
	return b.ReadWithFlags(id, FlagsIgnored)
}

// ReadWithFlags is Read with caller-defined access bits that are forwarded
// to the kind's PreRead hook during execution.
func (b *Builder) ReadWithFlags(id NodeID, flags AccessFlags) NodeID {
	b.mustBeLive()
	b.mustBeValid(id)
	if b.pass.hasCreate(id) || b.pass.hasWrite(id) {
		panic(fmt.Errorf("pass %q: node %d is already created or written by this pass and cannot be read", b.pass.name, id))
	}
	return b.pass.addRead(accessDecl{id: id, flags: flags})
}

// Write declares that this pass mutates id.
//
// Writing a node created in the same pass keeps its identity. Writing
// anything else renames the resource: the entry version advances and the
// returned handle replaces id, which is stale from now on. The rename is
// what pins the execution order of competing writers. Writing an imported
// resource additionally marks the pass as side-effecting.
func (b *Builder) Write(id NodeID) NodeID {
	return b.WriteWithFlags(id, FlagsIgnored)
}

// WriteWithFlags is Write with caller-defined access bits that are
// forwarded to the kind's PreWrite hook during execution.
func (b *Builder) WriteWithFlags(id NodeID, flags AccessFlags) NodeID {
	b.mustBeLive()
	b.mustBeValid(id)
	if b.graph.entryOf(id).isImported() {
		b.SetSideEffect()
	}
	if b.pass.hasCreate(id) {
		return b.pass.addWrite(accessDecl{id: id, flags: flags})
	}
	b.pass.addRead(accessDecl{id: id, flags: flags})
	return b.pass.addWrite(accessDecl{id: b.graph.clone(id), flags: flags})
}

// SetSideEffect forces the pass to survive culling. Returns the Builder for
// chaining.
func (b *Builder) SetSideEffect() *Builder {
	b.mustBeLive()
	b.pass.hasSideEffect = true
	return b
}

func (b *Builder) mustBeLive() {
	if b.sealed {
		panic(fmt.Errorf("%w: builder for pass %q used outside its setup callback", ErrWrongPhase, b.pass.name))
	}
}

func (b *Builder) mustBeValid(id NodeID) {
	if !b.graph.IsValid(id) {
		n := b.graph.node(id)
		panic(fmt.Errorf("%w: node %d (%s) holds version %d, entry is at version %d",
			ErrInvalidHandle, id, n.name, n.version, b.graph.entries[n.resourceID].version))
	}
}
