package buffer

import (
	"context"

	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the "buffer" kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind("buffer", &registry.RegisteredKind{
		NewDesc: func() any { return new(Desc) },
		Declare: func(b *framegraph.Builder, name string, desc any) framegraph.NodeID {
			return framegraph.Create[Buffer](b, name, *desc.(*Desc))
		},
		Import: func(g *framegraph.FrameGraph, name string, desc any, handle uint32) framegraph.NodeID {
			return framegraph.Import(g, name, *desc.(*Desc), Buffer{Handle: handle})
		},
		Touch: func(ctx context.Context, res *framegraph.PassResources, id framegraph.NodeID) error {
			buf, err := framegraph.Get[Buffer](res, id)
			if err != nil {
				return err
			}
			desc, err := framegraph.GetDescriptor[Desc](res, id)
			if err != nil {
				return err
			}
			ctxlog.FromContext(ctx).Info("Touching buffer.", "desc", desc.String(), "handle", buf.Handle)
			return nil
		},
	})
}
