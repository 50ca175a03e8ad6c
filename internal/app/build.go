package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/framegraphgo/internal/config"
	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/hcl"
	"github.com/vk/framegraphgo/internal/registry"
)

// passAccess is one declared access of a harness pass, remembered so the
// exec closure can exercise it.
type passAccess struct {
	kind *registry.RegisteredKind
	name string
	id   framegraph.NodeID
}

// passData is the per-pass payload of harness passes.
type passData struct {
	accesses []passAccess
}

// declaredResource pairs a transient resource declaration with its decoded
// descriptor and registered kind, ready for the producing pass's setup.
type declaredResource struct {
	res  *config.Resource
	kind *registry.RegisteredKind
	desc any
}

// buildGraph turns the validated frame model into a declared frame graph.
// Names resolve to their current handle through the rename chain: writing a
// name replaces its handle, so a later reader picks up the renamed version
// exactly as a hand-written setup callback would.
func (a *App) buildGraph(ctx context.Context) (*framegraph.FrameGraph, error) {
	frame := a.model.Frame
	if err := a.validate(frame); err != nil {
		return nil, fmt.Errorf("invalid frame declaration: %w", err)
	}

	logger := ctxlog.FromContext(ctx)
	g := framegraph.New()
	g.Reserve(len(frame.Passes), len(frame.Resources)+len(frame.Imports))

	handles := make(map[string]framegraph.NodeID)
	kindOf := make(map[string]*registry.RegisteredKind)

	for _, imp := range frame.Imports {
		kind, err := a.registry.Kind(imp.Kind)
		if err != nil {
			return nil, err
		}
		desc := kind.NewDesc()
		if err := hcl.DecodeDescriptor(imp.Body, desc); err != nil {
			return nil, fmt.Errorf("import %q: %w", imp.Name, err)
		}
		handles[imp.Name] = kind.Import(g, imp.Name, desc, imp.Handle)
		kindOf[imp.Name] = kind
		logger.Debug("Imported resource.", "name", imp.Name, "handle", imp.Handle)
	}

	createdBy := make(map[string][]declaredResource)
	for _, r := range frame.Resources {
		kind, err := a.registry.Kind(r.Kind)
		if err != nil {
			return nil, err
		}
		desc := kind.NewDesc()
		if err := hcl.DecodeDescriptor(r.Body, desc); err != nil {
			return nil, fmt.Errorf("resource %q: %w", r.Name, err)
		}
		createdBy[r.Pass] = append(createdBy[r.Pass], declaredResource{res: r, kind: kind, desc: desc})
		kindOf[r.Name] = kind
	}

	for _, pass := range frame.Passes {
		framegraph.AddPass(g, pass.Name,
			a.setupFunc(pass, createdBy[pass.Name], handles, kindOf),
			execPass)
	}

	return g, nil
}

// setupFunc builds the setup callback for one harness pass.
func (a *App) setupFunc(pass *config.Pass, creates []declaredResource, handles map[string]framegraph.NodeID, kindOf map[string]*registry.RegisteredKind) func(*framegraph.Builder, *passData) {
	return func(b *framegraph.Builder, data *passData) {
		for _, c := range creates {
			id := c.kind.Declare(b, c.res.Name, c.desc)
			handles[c.res.Name] = id
			data.accesses = append(data.accesses, passAccess{kind: c.kind, name: c.res.Name, id: id})
		}
		for _, name := range pass.Reads {
			id := b.Read(handles[name])
			data.accesses = append(data.accesses, passAccess{kind: kindOf[name], name: name, id: id})
		}
		for _, name := range pass.Writes {
			id := b.Write(handles[name])
			handles[name] = id
			// A write of a resource created in this pass keeps its id;
			// the access is already recorded.
			if !slices.ContainsFunc(data.accesses, func(x passAccess) bool { return x.id == id }) {
				data.accesses = append(data.accesses, passAccess{kind: kindOf[name], name: name, id: id})
			}
		}
		if pass.SideEffect {
			b.SetSideEffect()
		}
	}
}

// execPass is the deferred body of every harness pass: it exercises each
// declared access through its kind's Touch hook.
func execPass(ctx context.Context, data *passData, res *framegraph.PassResources) error {
	for _, access := range data.accesses {
		if err := access.kind.Touch(ctx, res, access.id); err != nil {
			return fmt.Errorf("touching %q: %w", access.name, err)
		}
	}
	return nil
}
