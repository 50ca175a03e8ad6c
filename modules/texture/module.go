package texture

import (
	"context"

	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the "texture" kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind("texture", &registry.RegisteredKind{
		NewDesc: func() any { return new(Desc) },
		Declare: func(b *framegraph.Builder, name string, desc any) framegraph.NodeID {
			return framegraph.Create[Texture](b, name, *desc.(*Desc))
		},
		Import: func(g *framegraph.FrameGraph, name string, desc any, handle uint32) framegraph.NodeID {
			return framegraph.Import(g, name, *desc.(*Desc), Texture{Handle: handle})
		},
		Touch: func(ctx context.Context, res *framegraph.PassResources, id framegraph.NodeID) error {
			tex, err := framegraph.Get[Texture](res, id)
			if err != nil {
				return err
			}
			desc, err := framegraph.GetDescriptor[Desc](res, id)
			if err != nil {
				return err
			}
			ctxlog.FromContext(ctx).Info("Touching texture.", "desc", desc.String(), "handle", tex.Handle)
			return nil
		},
	})
}
